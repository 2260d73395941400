package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/planbuddy/internal/auth"
	"github.com/mmynk/planbuddy/internal/geo"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/session"
	"github.com/mmynk/planbuddy/internal/storage"
	"github.com/mmynk/planbuddy/pkg/api"
	"github.com/mmynk/planbuddy/pkg/api/apiconnect"
)

// LoginOptions configures how logins are resolved.
type LoginOptions struct {
	// DefaultLocation is used when the device cannot report a position.
	DefaultLocation models.Coordinates

	// LocateTimeout bounds the location lookup.
	LocateTimeout time.Duration

	// DefaultGroupID, when set, is the group new users join.
	DefaultGroupID string
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	sessions      *session.Manager
	store         storage.Store
	opts          LoginOptions
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	sessions *session.Manager,
	store storage.Store,
	opts LoginOptions,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		sessions:      sessions,
		store:         store,
		opts:          opts,
		logger:        logger,
	}
}

// Login resolves the user, opens a session and returns its token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "name", req.Msg.Name)

	location, err := geo.LocateOrDefault(ctx,
		geo.ReportedLocator{Position: req.Msg.Location, Denied: req.Msg.LocationDenied},
		s.opts.LocateTimeout,
		s.opts.DefaultLocation,
	)
	if err != nil {
		s.logger.Warn("Location unavailable, using default", "name", req.Msg.Name, "error", err)
	}

	user, created, err := s.authenticator.Authenticate(ctx, auth.Credentials{
		Name:     req.Msg.Name,
		Phone:    req.Msg.Phone,
		Location: location,
	})
	if err != nil {
		s.logger.Warn("Login failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	if created {
		s.joinDefaultGroup(ctx, user)
	}

	sess, err := s.sessions.Open(ctx, *user)
	if err != nil {
		s.logger.Error("Failed to open session", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(sess.ID, user.ID)
	if err != nil {
		s.sessions.Close(sess.ID)
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "session_id", sess.ID, "new_user", created)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		User:      *user,
		ExpiresAt: time.Now().Add(s.jwtManager.TokenDuration()).Unix(),
	}), nil
}

func (s *AuthService) joinDefaultGroup(ctx context.Context, user *models.User) {
	if s.opts.DefaultGroupID == "" {
		return
	}
	err := s.store.AddGroupMembers(ctx, s.opts.DefaultGroupID, []models.User{*user})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Warn("Default group does not exist", "group_id", s.opts.DefaultGroupID)
	case err != nil:
		s.logger.Error("Failed to join default group", "group_id", s.opts.DefaultGroupID, "user_id", user.ID, "error", err)
	default:
		s.logger.Info("New user joined default group", "group_id", s.opts.DefaultGroupID, "user_id", user.ID)
	}
}

// Logout tears the caller's session down and cancels its reminders.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[emptypb.Empty], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	s.sessions.Close(sess.ID)
	s.logger.Info("User logged out", "user_id", sess.User.ID, "session_id", sess.ID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}
