package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/internal/auth"
	"github.com/mmynk/kaskos/internal/middleware"
	"github.com/mmynk/kaskos/pkg/api/apiconnect"
)

// Route is a Connect service mounted under Path.
type Route struct {
	Path    string
	Handler http.Handler
}

// Routes builds the Connect handlers for both services. Extra interceptors
// run outermost, before authentication. Login is reachable without a
// token; every LedgerService call requires one.
func Routes(authSvc *AuthService, ledgerSvc *LedgerService, jwtManager *auth.JWTManager, interceptors ...connect.Interceptor) []Route {
	chain := func(authInterceptor connect.Interceptor) connect.HandlerOption {
		all := append([]connect.Interceptor{}, interceptors...)
		all = append(all, authInterceptor, middleware.LoggingInterceptor())
		return connect.WithInterceptors(all...)
	}

	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc, chain(middleware.OptionalAuth(jwtManager)))
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(ledgerSvc, chain(middleware.RequireAuth(jwtManager)))

	return []Route{
		{Path: authPath, Handler: authHandler},
		{Path: ledgerPath, Handler: ledgerHandler},
	}
}
