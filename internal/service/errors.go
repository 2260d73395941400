package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/planbuddy/internal/auth"
	"github.com/mmynk/planbuddy/internal/middleware"
	"github.com/mmynk/planbuddy/internal/planner"
	"github.com/mmynk/planbuddy/internal/session"
	"github.com/mmynk/planbuddy/internal/storage"
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, planner.ErrInvalidGroup),
		errors.Is(err, planner.ErrInvalidRsvp),
		errors.Is(err, auth.ErrMissingName),
		errors.Is(err, auth.ErrInvalidPhone):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, planner.ErrGenerationInFlight),
		errors.Is(err, planner.ErrFinalizationInFlight):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, planner.ErrNoSuggestions),
		errors.Is(err, planner.ErrItineraryUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(msg string) error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

// sessionFrom returns the caller's session set by the auth interceptor.
func sessionFrom(ctx context.Context) (*session.Session, error) {
	s := middleware.GetSession(ctx)
	if s == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return s, nil
}
