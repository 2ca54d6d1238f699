package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Auth verifies the bearer credential on each request and injects the
// resolved user id into the request context. A missing credential and an
// invalid one are rejected with distinct messages.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAuthError(w, "You need to log in")
				return
			}

			// The Bearer prefix is optional; a raw token is accepted too.
			tokenStr := header
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				tokenStr = strings.TrimLeft(after, " \t")
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, "Token expired or invalid, log out and log in again")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeAuthError(w, "Token expired or invalid, log out and log in again")
				return
			}

			sub, _ := claims["id"].(string)
			userID, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				writeAuthError(w, "Token expired or invalid, log out and log in again")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(ctx context.Context) primitive.ObjectID {
	return ctx.Value(UserIDKey).(primitive.ObjectID)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"errors":["` + message + `"]}`))
}
