package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authProbe() (http.Handler, *primitive.ObjectID) {
	var seen primitive.ObjectID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Auth(testSecret)(next), &seen
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	handler, _ := authProbe()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "log in")
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	handler, _ := authProbe()

	for name, header := range map[string]string{
		"garbage":      "Bearer not.a.jwt",
		"wrong secret": "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"id": primitive.NewObjectID().Hex(), "exp": time.Now().Add(time.Hour).Unix()}),
		"expired":      "Bearer " + signToken(t, testSecret, jwt.MapClaims{"id": primitive.NewObjectID().Hex(), "exp": time.Now().Add(-time.Hour).Unix()}),
		"bad subject":  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"id": "not-hex", "exp": time.Now().Add(time.Hour).Unix()}),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid")
		})
	}
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	// The Bearer prefix is optional, and whitespace after it is trimmed.
	for name, header := range map[string]string{
		"bearer prefix":    "Bearer " + token,
		"raw token":        token,
		"padded after cut": "Bearer   " + token,
	} {
		t.Run(name, func(t *testing.T) {
			handler, seen := authProbe()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, userID, *seen)
		})
	}
}
