package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/appquilar/go-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

// mintToken signs a real HS256 token so decode tests exercise the same
// wire shape the backend produces. Signature validity is irrelevant to the
// codec, which decodes unverified.
func mintToken(t *testing.T, sub string, roles []string, exp *time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{}
	if sub != "" {
		claims["sub"] = sub
	}
	if roles != nil {
		claims["roles"] = roles
	}
	if exp != nil {
		claims["exp"] = jwt.NewNumericDate(*exp)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	return signed
}

type mockAuthRepository struct {
	loginSession auth.Session
	loginErr     error
	logoutErr    error
	registerErr  error
	resetErr     error
	changeErr    error

	loginCalls    int
	logoutCalls   int
	registerCalls int
	lastLogin     auth.Credentials
	lastRegister  auth.Registration
	lastReset     string
}

var _ auth.AuthRepository = (*mockAuthRepository)(nil)

func (m *mockAuthRepository) Login(ctx context.Context, credentials auth.Credentials) (auth.Session, error) {
	m.loginCalls++
	m.lastLogin = credentials
	if m.loginErr != nil {
		return auth.Session{}, m.loginErr
	}
	return m.loginSession, nil
}

func (m *mockAuthRepository) Logout(ctx context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}

func (m *mockAuthRepository) Register(ctx context.Context, registration auth.Registration) error {
	m.registerCalls++
	m.lastRegister = registration
	return m.registerErr
}

func (m *mockAuthRepository) RequestPasswordReset(ctx context.Context, email string) error {
	m.lastReset = email
	return m.resetErr
}

func (m *mockAuthRepository) ChangePassword(ctx context.Context, change auth.PasswordChange) error {
	return m.changeErr
}

type mockUserRepository struct {
	user  *auth.User
	err   error
	calls int
	last  string
}

var _ auth.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*auth.User, error) {
	m.calls++
	m.last = id
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

type failingTokenStore struct {
	writeErr  error
	readErr   error
	deleteErr error
}

var _ auth.TokenStore = (*failingTokenStore)(nil)

func (f *failingTokenStore) Write(token string) error { return f.writeErr }

func (f *failingTokenStore) Read() (string, bool, error) {
	if f.readErr != nil {
		return "", false, f.readErr
	}
	return "", false, nil
}

func (f *failingTokenStore) Delete() error { return f.deleteErr }

type quietLogger struct{}

func (quietLogger) Debug(format string, args ...any) {}
func (quietLogger) Info(format string, args ...any)  {}
func (quietLogger) Warn(format string, args ...any)  {}
func (quietLogger) Error(format string, args ...any) {}

var errBackendDown = errors.New("backend unreachable")
