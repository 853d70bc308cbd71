package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository/memory"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestDefaultTTLIsThirtyDays(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, NewTokenManager("secret", 0).TTL())
}

func TestParseTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, _, err := tm.GenerateToken("user-1", domain.RoleDonor)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other", time.Hour).ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenManager("secret", time.Hour).WithClock(func() time.Time {
			return time.Now().Add(2 * time.Hour)
		})
		_, err := late.ParseToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = tm.ParseToken(signed)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = tm.ParseToken(signed)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hashed)
	assert.NoError(t, ComparePassword(hashed, "hunter2"))
	assert.Error(t, ComparePassword(hashed, "hunter3"))
}

// newTestApp mounts Protect and ProtectAdmin in front of handlers that echo the caller.
func newTestApp(t *testing.T) (*fiber.App, *TokenManager, *memory.Store) {
	t.Helper()

	store := memory.New()
	tokens := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tokens, store.Users())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message, "code": de.Code})
		},
	})
	whoami := func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": user.ID, "hash": user.PasswordHash})
	}
	app.Get("/me", mw.Protect, whoami)
	app.Get("/admin", mw.Protect, ProtectAdmin(), whoami)
	return app, tokens, store
}

func createUser(t *testing.T, store *memory.Store, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Test", Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestProtect(t *testing.T) {
	app, tokens, store := newTestApp(t)
	donor := createUser(t, store, "donor@example.com", domain.RoleDonor)
	token, _, err := tokens.GenerateToken(donor.ID, donor.Role)
	require.NoError(t, err)

	ghostToken, _, err := tokens.GenerateToken("ghost", domain.RoleDonor)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"unknown user", "Bearer " + ghostToken, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, "/me", tt.header)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestProtectAdmin(t *testing.T) {
	app, tokens, store := newTestApp(t)
	donor := createUser(t, store, "donor@example.com", domain.RoleDonor)
	admin := createUser(t, store, "admin@example.com", domain.RoleAdmin)

	donorToken, _, err := tokens.GenerateToken(donor.ID, donor.Role)
	require.NoError(t, err)
	adminToken, _, err := tokens.GenerateToken(admin.ID, admin.Role)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(t, app, "/admin", "Bearer "+donorToken).StatusCode)
	assert.Equal(t, http.StatusOK, doRequest(t, app, "/admin", "Bearer "+adminToken).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, "/admin", "").StatusCode)
}

func TestProtectAdminUsesStoredRole(t *testing.T) {
	app, tokens, store := newTestApp(t)
	donor := createUser(t, store, "donor@example.com", domain.RoleDonor)

	// A token claiming admin does not elevate a stored donor.
	forged, _, err := tokens.GenerateToken(donor.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(t, app, "/admin", "Bearer "+forged).StatusCode)
}

func TestProtectHidesPasswordHash(t *testing.T) {
	app, tokens, store := newTestApp(t)
	donor := createUser(t, store, "donor@example.com", domain.RoleDonor)
	token, _, err := tokens.GenerateToken(donor.ID, donor.Role)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := store.Users().GetByID(context.Background(), donor.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", stored.PasswordHash)
}
