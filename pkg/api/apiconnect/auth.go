package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "kaskos.v1.AuthService"

const (
	AuthServiceLoginProcedure          = "/kaskos.v1.AuthService/Login"
	AuthServiceChangePasswordProcedure = "/kaskos.v1.AuthService/ChangePassword"
	AuthServiceMeProcedure             = "/kaskos.v1.AuthService/Me"
)

// AuthServiceClient is a client for the kaskos.v1.AuthService service.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceClient constructs a client for the kaskos.v1.AuthService service.
// The URL supplied should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	clientOpts := append([]connect.ClientOption{codecOption()}, opts...)
	return &authServiceClient{
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, clientOpts...),
		changePassword: connect.NewClient[api.ChangePasswordRequest, api.ChangePasswordResponse](httpClient, baseURL+AuthServiceChangePasswordProcedure, clientOpts...),
		me:             connect.NewClient[api.MeRequest, api.MeResponse](httpClient, baseURL+AuthServiceMeProcedure, clientOpts...),
	}
}

type authServiceClient struct {
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	changePassword *connect.Client[api.ChangePasswordRequest, api.ChangePasswordResponse]
	me             *connect.Client[api.MeRequest, api.MeResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) ChangePassword(ctx context.Context, req *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error) {
	return c.changePassword.CallUnary(ctx, req)
}

func (c *authServiceClient) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return c.me.CallUnary(ctx, req)
}

// AuthServiceHandler is an implementation of the kaskos.v1.AuthService service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	ChangePassword(context.Context, *connect.Request[api.ChangePasswordRequest]) (*connect.Response[api.ChangePasswordResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	handlerOpts := append([]connect.HandlerOption{codecOption()}, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, handlerOpts...)
	changePasswordHandler := connect.NewUnaryHandler(AuthServiceChangePasswordProcedure, svc.ChangePassword, handlerOpts...)
	meHandler := connect.NewUnaryHandler(AuthServiceMeProcedure, svc.Me, handlerOpts...)

	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceChangePasswordProcedure:
			changePasswordHandler.ServeHTTP(w, r)
		case AuthServiceMeProcedure:
			meHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
