package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-relay/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	secret := "test-secret"
	verifier := NewVerifier(secret)
	identity := domain.Identity{UserID: "user-1", DisplayName: "Alice"}

	router := gin.New()
	router.GET("/protected", Middleware(verifier), func(c *gin.Context) {
		got, ok := IdentityFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": got.UserID, "token": TokenFrom(c)})
	})

	t.Run("should reject a request without Authorization header", func(t *testing.T) {
		// Given
		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		// When
		router.ServeHTTP(w, r)

		// Then
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject a non-bearer Authorization header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject an invalid bearer token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should bind identity and raw credential when the token is valid", func(t *testing.T) {
		token, err := GenerateToken(secret, identity, time.Hour)
		req.NoError(err)

		r := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		req.Equal(http.StatusOK, w.Code)
		req.Contains(w.Body.String(), `"userId":"user-1"`)
		req.Contains(w.Body.String(), token)
	})
}
