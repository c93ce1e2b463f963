package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserCommand contains the data to register a new user.
type RegisterUserCommand struct {
	Email    string
	Username string
	Password string
}

// RegisterUserResult contains the created user and an access token.
type RegisterUserResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// RegisterUserHandler handles the RegisterUserCommand.
type RegisterUserHandler struct {
	store  application.Store
	tokens application.TokenService
	logger *slog.Logger
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(store application.Store, tokens application.TokenService, logger *slog.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{
		store:  store,
		tokens: tokens,
		logger: logger.With("handler", "register_user"),
	}
}

// Handle executes the register user command. Email and username uniqueness
// is enforced by storage constraints, not a pre-check, so concurrent
// registrations cannot slip through.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	u, err := user.New(cmd.Email, cmd.Username, cmd.Password, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := h.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}

	token, expiresAt, err := h.tokens.Issue(u.ID, u.Role.String())
	if err != nil {
		return nil, shared.WrapError("user", "Register", err)
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "username", u.Username)

	return &RegisterUserResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
