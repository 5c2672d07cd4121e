package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// AuthRepository is the remote collaborator that owns credential checks.
// Implementations talk to the backend; the session core never inspects
// passwords itself.
type AuthRepository interface {
	Login(ctx context.Context, credentials Credentials) (Session, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, registration Registration) error
	RequestPasswordReset(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, change PasswordChange) error
}

// UserRepository resolves the user behind a session's subject id
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
