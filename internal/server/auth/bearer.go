package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// TokenFromHeader extracts the token from an Authorization value of the form
// "Bearer <token>". The scheme is matched case-insensitively.
func TokenFromHeader(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
