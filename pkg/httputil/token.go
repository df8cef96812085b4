package httputil

import (
	"errors"
	"net/http"
	"strings"
)

// GetTokenFromRequest reads a bearer token from the Authorization header, or
// from the "token" query parameter since browsers cannot set headers on a
// websocket upgrade.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			return strings.TrimSpace(authHeader[7:]), nil
		}
		return "", errors.New("authorization header must use the Bearer scheme")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errors.New("no auth token found in header or query")
}
