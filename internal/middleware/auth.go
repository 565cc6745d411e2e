// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"coffeesmile/internal/api"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// privilegedKey marks a request as coming from a privileged editorial
// caller.
const privilegedKey contextKey = "privileged"

// Privileged checks the Authorization header against the configured
// editorial token and, when it matches, marks the request context as
// privileged. It does not reject anything on its own; combine with
// RequirePrivileged on editorial routes. How the caller obtained the
// token is outside this service: the middleware only answers "is this
// caller privileged".
func Privileged(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && matchesBearer(r.Header.Get("Authorization"), token) {
				r = r.WithContext(context.WithValue(r.Context(), privilegedKey, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePrivileged rejects requests whose context was not marked
// privileged. Must be applied after Privileged in the chain.
func RequirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsPrivileged(r.Context()) {
			api.WriteError(w, api.Unauthorized("Não autorizado."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsPrivileged reports whether the request context carries the
// privileged-caller marker.
func IsPrivileged(ctx context.Context) bool {
	v, _ := ctx.Value(privilegedKey).(bool)
	return v
}

// matchesBearer compares an Authorization header against the expected
// token in constant time.
func matchesBearer(header, token string) bool {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	presented := header[len(prefix):]
	return subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1
}
