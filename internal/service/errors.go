package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/internal/auth"
	"github.com/mmynk/kaskos/internal/middleware"
	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

var (
	errAdminOnly      = errors.New("only an admin may do this")
	errOwnPaymentOnly = errors.New("members may only record their own payments")
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, models.ErrInvalidRecord), errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicate), errors.Is(err, auth.ErrMemberExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// requireSession returns the caller's session or an Unauthenticated error.
func requireSession(ctx context.Context) (middleware.Session, error) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok || session.Name == "" {
		return middleware.Session{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return session, nil
}
