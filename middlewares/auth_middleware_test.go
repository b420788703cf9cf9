package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bikramkgupta/care-circle-journal/utils"
)

func newProtectedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return r
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newProtectedRouter(secret).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	secret := []byte("test-secret")
	r := newProtectedRouter(secret)

	otherToken, err := utils.GenerateJWT(uuid.New(), []byte("another-secret"), time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc123",
		"garbage token":  "Bearer not-a-token",
		"wrong secret":   "Bearer " + otherToken,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
