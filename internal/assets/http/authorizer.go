// Package http provides HTTP handlers for asset URL signing and the asset
// redirect boundary.
package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Authorizer decides whether an inbound request may obtain signed asset
// access. Deployments plug in their own policy; the signing core performs no
// authorization of its own.
type Authorizer func(r *http.Request) bool

// AllowAllAuthorizer permits every request. Intended for deployments that
// terminate authentication upstream.
func AllowAllAuthorizer() Authorizer {
	return func(r *http.Request) bool {
		return true
	}
}

// StaticTokenAuthorizer permits requests carrying the expected bearer token
// in the Authorization header. Comparison is constant-time.
func StaticTokenAuthorizer(expectedToken string) Authorizer {
	return func(r *http.Request) bool {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) == 1
	}
}
