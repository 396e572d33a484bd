package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// issuer is the JWT "iss" claim, matching tunaq/server/token.go's "tqs" for
// this service.
const issuer = "pbesynth"

// generateJWT issues a bearer token for a successful login, following
// tunaq/server/token.go's generateJWTForUser: HS512, a one-hour expiry, and
// a signing key derived from the server secret concatenated with the
// hashed API key, so rotating the key invalidates every outstanding token.
func (s *Server) generateJWT() (string, error) {
	claims := &jwt.MapClaims{
		"iss":        issuer,
		"exp":        time.Now().Add(time.Hour).Unix(),
		"sub":        "api-key",
		"authorized": true,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signKey := append(append([]byte{}, s.secret...), s.apiKeyHash...)
	return tok.SignedString(signKey)
}

func (s *Server) verifyJWT(tok string) error {
	signKey := append(append([]byte{}, s.secret...), s.apiKeyHash...)

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	return err
}

// checkAPIKey reports whether key matches the server's configured,
// bcrypt-hashed API key, the same bcrypt.CompareHashAndPassword call
// tunaq/server/server.go uses for user passwords.
func (s *Server) checkAPIKey(key string) bool {
	err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(key))
	return err == nil
}

// HashAPIKey hashes an API key for use as a Config.APIKeyHash value, the
// same bcrypt.GenerateFromPassword(..., 20) call
// tunaq/server/server.go's CreateUser uses for new account passwords.
func HashAPIKey(key string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(key), 20)
}

// requireAuth wraps next so that it only runs once the request carries a
// valid bearer token, following the Authorization-header parsing of
// tunaq/server/token.go's getJWT.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, err := bearerToken(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		if err := s.verifyJWT(tok); err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(strings.TrimSpace(parts[0])) != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}
