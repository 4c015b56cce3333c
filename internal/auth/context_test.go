package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// signTestToken подписывает токен с user_id тестовым секретом
func signTestToken(t *testing.T, userID uint, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenString
}

func TestUserIDContext(t *testing.T) {
	t.Run("Round trip through context", func(t *testing.T) {
		ctx := WithUserID(context.Background(), 42)

		id, err := GetUserIDFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("Empty context has no user", func(t *testing.T) {
		_, err := GetUserIDFromContext(context.Background())
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid bearer header", func(t *testing.T) {
		assert.Equal(t, "abc123", extractTokenFromHeader("Bearer abc123"))
	})

	t.Run("Missing prefix", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("abc123"))
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("Basic abc123"))
	})

	t.Run("Empty header", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader(""))
	})
}

func TestMiddleware(t *testing.T) {
	// next запоминает, с каким userID до него дошел запрос
	var gotID uint
	var gotErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid token populates the context", func(t *testing.T) {
		gotID, gotErr = 0, nil

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, "test-secret"))
		rec := httptest.NewRecorder()

		Middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, gotErr)
		assert.Equal(t, uint(7), gotID)
	})

	t.Run("Missing token passes through unauthorized", func(t *testing.T) {
		gotID, gotErr = 0, nil

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rec := httptest.NewRecorder()

		Middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Error(t, gotErr)
	})

	t.Run("Token with wrong signature passes through unauthorized", func(t *testing.T) {
		gotID, gotErr = 0, nil

		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, "other-secret"))
		rec := httptest.NewRecorder()

		Middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Error(t, gotErr)
	})
}

func TestRequireAuth(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("Valid token reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, "test-secret"))
		rec := httptest.NewRecorder()

		RequireAuth(next)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing token gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		rec := httptest.NewRecorder()

		RequireAuth(next)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
	})

	t.Run("Expired token gets 401", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 7,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()

		RequireAuth(next)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
