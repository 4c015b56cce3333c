// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return id, nil
}

// Для извлечения userID из JWT и помещения в context.
// Невалидный или отсутствующий токен не является ошибкой - запрос идет дальше
// неавторизованным, а решение принимает сам обработчик (или RequireAuth).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r) // неавторизованный доступ — пропускаем
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth - строгий вариант для защищенных маршрутов: без валидного
// токена отвечает 401 и до обработчика не доходит.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func userIDFromRequest(r *http.Request) (uint, error) {
	tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
	if tokenStr == "" {
		return 0, errors.New("no bearer token")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id claim missing")
	}

	return uint(idFloat), nil
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
