package utils

import (
	"net/http"
	"strings"
)

// GetIPAddress gets the real client IP from a request, honoring proxy
// headers. Used as the identity key for the contact-form rate gate.
func GetIPAddress(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return strings.Split(r.RemoteAddr, ":")[0]
}
