package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trainermarkt/backend/internal/models"
)

var testSecret = []byte("test-secret")

func mintToken(t *testing.T, subject, role string, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func callWithToken(t *testing.T, header string) (models.Actor, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor models.Actor
	next := func(c echo.Context) error {
		actor = ActorFrom(c)
		return nil
	}
	err := RequireIdentity(testSecret)(next)(c)
	return actor, err
}

func TestRequireIdentity_ValidToken(t *testing.T) {
	token := mintToken(t, "trainer-1", "trainer", testSecret)
	actor, err := callWithToken(t, "Bearer "+token)

	assert.NoError(t, err)
	assert.Equal(t, "trainer-1", actor.UserID)
	assert.Equal(t, models.RoleTrainer, actor.Role)
}

func TestRequireIdentity_MissingHeader(t *testing.T) {
	_, err := callWithToken(t, "")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireIdentity_WrongSecret(t *testing.T) {
	token := mintToken(t, "trainer-1", "trainer", []byte("other-secret"))
	_, err := callWithToken(t, "Bearer "+token)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireIdentity_UnknownRole(t *testing.T) {
	token := mintToken(t, "admin-1", "admin", testSecret)
	_, err := callWithToken(t, "Bearer "+token)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
