// Package user содержит доменную модель пользователя FitSphere.
// Это ядро бизнес-логики - здесь нет внешних зависимостей, кроме bcrypt.
package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Email представляет адрес электронной почты пользователя.
type Email string

// IsValid проверяет корректность адреса.
func (e Email) IsValid() bool {
	addr, err := mail.ParseAddress(string(e))
	return err == nil && addr.Address == string(e)
}

// String возвращает строковое представление адреса.
func (e Email) String() string {
	return string(e)
}

// Normalize приводит адрес к каноническому виду для хранения.
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Role определяет роль пользователя в системе.
type Role string

const (
	// RoleUser - обычный пользователь платформы.
	RoleUser Role = "user"
	// RoleTrainer - тренер, ведущий подопечных.
	RoleTrainer Role = "trainer"
	// RoleAdmin - администратор платформы.
	RoleAdmin Role = "admin"
)

// IsValid проверяет, что роль корректна.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление роли.
func (r Role) String() string {
	return string(r)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: USER
// ══════════════════════════════════════════════════════════════════════════════

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
)

// User - сущность пользователя платформы.
type User struct {
	// ID - уникальный идентификатор (UUID в строковом формате).
	ID string

	// Email - нормализованный адрес, уникален на уровне хранилища.
	Email Email

	// Username - отображаемое имя, уникально на уровне хранилища.
	Username string

	// PasswordHash - bcrypt-хеш пароля. Никогда не покидает домен.
	PasswordHash string

	// Role - роль пользователя.
	Role Role

	// IsActive - false для деактивированных аккаунтов.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New создаёт нового пользователя с валидацией и хешированием пароля.
func New(email, username, password string, now time.Time) (*User, error) {
	const op = "Register"

	e := Email(email).Normalize()
	if !e.IsValid() {
		return nil, shared.NewDomainError("user", op, shared.ErrInvalidEmail, "invalid email address")
	}

	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return nil, shared.NewDomainError("user", op, shared.ErrValidation, "username must be 3-50 characters")
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.WrapError("user", op, err)
	}

	return &User{
		ID:           uuid.NewString(),
		Email:        e,
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword сверяет пароль с хешем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword устанавливает новый пароль после валидации.
func (u *User) ChangePassword(password string, now time.Time) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.WrapError("user", "ChangePassword", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = now
	return nil
}

// validatePassword требует минимум 8 символов, букву и цифру.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return shared.NewDomainError("user", "Register", shared.ErrWeakPassword, "password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return shared.NewDomainError("user", "Register", shared.ErrWeakPassword, "password must contain a letter and a digit")
	}
	return nil
}
