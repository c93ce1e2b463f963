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
// AUTHENTICATE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AuthenticateCommand contains login credentials.
type AuthenticateCommand struct {
	Email    string
	Password string
}

// AuthenticateResult contains the authenticated user and an access token.
type AuthenticateResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// AuthenticateHandler handles the AuthenticateCommand.
type AuthenticateHandler struct {
	store  application.Store
	tokens application.TokenService
	logger *slog.Logger
}

// NewAuthenticateHandler creates a new AuthenticateHandler.
func NewAuthenticateHandler(store application.Store, tokens application.TokenService, logger *slog.Logger) *AuthenticateHandler {
	return &AuthenticateHandler{
		store:  store,
		tokens: tokens,
		logger: logger.With("handler", "authenticate"),
	}
}

// Handle executes the authenticate command. A missing user and a wrong
// password both map to ErrBadCredentials so the response does not reveal
// which one it was.
func (h *AuthenticateHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	u, err := h.store.Users().GetByEmail(ctx, user.Email(cmd.Email).Normalize())
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrBadCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, shared.ErrBadCredentials
	}
	if !u.CheckPassword(cmd.Password) {
		h.logger.WarnContext(ctx, "failed login attempt", "user_id", u.ID)
		return nil, shared.ErrBadCredentials
	}

	token, expiresAt, err := h.tokens.Issue(u.ID, u.Role.String())
	if err != nil {
		return nil, shared.WrapError("user", "Authenticate", err)
	}

	h.logger.InfoContext(ctx, "user authenticated", "user_id", u.ID)

	return &AuthenticateResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
