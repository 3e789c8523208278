package api

import "time"

// Member is the public view of a roster member. The password hash never
// leaves the server.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Member *Member `json:"member"`
	Token  string  `json:"token"`
}

type ChangePasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}

type ChangePasswordResponse struct{}

type MeRequest struct{}

type MeResponse struct {
	Member *Member `json:"member"`
}
