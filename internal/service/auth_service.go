package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/internal/auth"
	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/pkg/api"
)

// MemberReader looks up a single member by name.
type MemberReader interface {
	GetMember(ctx context.Context, name string) (*models.Member, error)
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	members       MemberReader
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, members MemberReader, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		members:       members,
		logger:        logger,
	}
}

// Login authenticates a member and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("Login request", "member", name)

	if name == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	member, err := s.authenticator.Authenticate(ctx, name, req.Msg.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "member", name)
		} else {
			s.logger.Error("Login failed", "member", name, "error", err)
		}
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(member)
	if err != nil {
		s.logger.Error("Failed to generate token", "member", member.Name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Member logged in", "member", member.Name, "role", member.Role)
	return connect.NewResponse(&api.LoginResponse{
		Member: memberToAPI(member),
		Token:  token,
	}), nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authenticator.ChangeCredential(ctx, session.Name, req.Msg.Current, req.Msg.Next); err != nil {
		s.logger.Warn("Password change failed", "member", session.Name, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Password changed", "member", session.Name)
	return connect.NewResponse(&api.ChangePasswordResponse{}), nil
}

// Me returns the authenticated member.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	member, err := s.members.GetMember(ctx, session.Name)
	if err != nil {
		s.logger.Error("Failed to load member", "member", session.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MeResponse{Member: memberToAPI(member)}), nil
}
