package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alcyxob/fitness-center/internal/domain"
)

const testSecret = "test-secret"

func newTestAuth(t *testing.T, users *fakeUsers) (AuthService, *AdminSessions) {
	t.Helper()
	sessions := NewAdminSessions(AdminRepositories{Trainers: newFakeTrainers()})
	return NewAuthService(users, sessions, testSecret, time.Hour), sessions
}

func seedAdmin(t *testing.T, users *fakeUsers, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	users.byEmail[email] = domain.User{ID: "admin-1", Email: email, Name: "Admin", PasswordHash: string(hash), Role: domain.RoleAdmin}
}

func parseClaims(t *testing.T, token string) *jwtClaims {
	t.Helper()
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	auth, _ := newTestAuth(t, users)

	u, err := auth.Register(context.Background(), " Jane ", "Jane@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Empty(t, u.PasswordHash)

	token, user, err := auth.Login(context.Background(), "JANE@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)

	claims := parseClaims(t, token)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Empty(t, claims.Session)
	assert.Equal(t, TokenIssuer, claims.Issuer)

	_, _, err = auth.Login(context.Background(), "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = auth.Login(context.Background(), "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRegister_Rejects(t *testing.T) {
	users := newFakeUsers()
	auth, _ := newTestAuth(t, users)

	_, err := auth.Register(context.Background(), "Jane", "not-an-email", "short")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)

	_, err = auth.Register(context.Background(), "Jane", "jane@example.com", "longenough")
	require.NoError(t, err)
	_, err = auth.Register(context.Background(), "Jane", "jane@example.com", "longenough")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Equal(t, 1, users.creates)
}

func TestAdminLoginOpensSession(t *testing.T) {
	users := newFakeUsers()
	seedAdmin(t, users, "admin@example.com", "adminpass")
	auth, sessions := newTestAuth(t, users)

	token, console, err := auth.AdminLogin(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Count())

	claims := parseClaims(t, token)
	assert.Equal(t, console.ID, claims.Session)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	got, err := sessions.Get(console.ID, "admin-1")
	require.NoError(t, err)
	assert.Same(t, console, got)
	_, err = sessions.Get(console.ID, "someone-else")
	assert.ErrorIs(t, err, ErrSessionClosed)

	require.NoError(t, auth.Logout(console.ID))
	assert.Zero(t, sessions.Count())
	assert.ErrorIs(t, auth.Logout(console.ID), ErrSessionClosed)
}

func TestAdminLogin_RequiresAdminRole(t *testing.T) {
	users := newFakeUsers()
	auth, sessions := newTestAuth(t, users)
	_, err := auth.Register(context.Background(), "Member", "member@example.com", "longenough")
	require.NoError(t, err)

	_, _, err = auth.AdminLogin(context.Background(), "member@example.com", "longenough")
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Zero(t, sessions.Count())
}
