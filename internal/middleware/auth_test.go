package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeUsers covers the one lookup the principal resolution needs.
type fakeUsers struct {
	users map[string]*model.User
}

func (f *fakeUsers) FindByID(id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authTestRouter(users *fakeUsers, captured *service.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(users, testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		*captured = PrincipalFrom(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthWithoutTokenIsGuest(t *testing.T) {
	var p service.Principal
	r := authTestRouter(&fakeUsers{users: map[string]*model.User{}}, &p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, p.IsAuth)
	assert.Equal(t, service.Guest().Permissions, p.Permissions)
}

func TestAuthResolvesKnownUser(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{
		"u1": {ID: "u1", Username: "alice", Role: model.RoleUser, State: model.UserStateActive},
	}}
	var p service.Principal
	r := authTestRouter(users, &p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, p.IsAuth)
	assert.Equal(t, "alice", p.Username)
	assert.True(t, p.Permissions.Has(model.PermCreateComment))
}

func TestAuthRejectsBadToken(t *testing.T) {
	var p service.Principal
	r := authTestRouter(&fakeUsers{users: map[string]*model.User{}}, &p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	var p service.Principal
	r := authTestRouter(&fakeUsers{users: map[string]*model.User{}}, &p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "ghost"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
