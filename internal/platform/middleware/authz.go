// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/ctxutil"
	"github.com/taibuivan/anicat/internal/platform/respond"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

// TokenVerifier resolves a bearer token into the caller identity.
//
// Implementations must fail closed: a bad signature, an expired token or a
// subject that no longer exists all return an error.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No 'Authorization' header: the request proceeds as anonymous.
//  2. A header that is not 'Bearer <token>', or a token rejected by the
//     [TokenVerifier]: the request proceeds as anonymous with the reason
//     recorded, so public reads keep working and [RequireAuth] or
//     [RequireRole] answer 401 with that reason.
//  3. Verifier failures of 5xx class are returned as is.
//  4. Otherwise [*sec.AuthClaims] are injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(writer, rejected(request, "Not authorized, invalid authorization header"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(request.Context(), parts[1])
			if err != nil {
				if ae := apperr.As(err); ae != nil && ae.HTTPStatus >= http.StatusInternalServerError {
					respond.Error(writer, request, err)
					return
				}
				next.ServeHTTP(writer, rejected(request, "Not authorized, token failed"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			recordIdentity(request.Context(), claims.UserID)
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func rejected(request *http.Request, reason string) *http.Request {
	return request.WithContext(ctxutil.WithAuthFailure(request.Context(), reason))
}

// unauthenticated is the 401 for a request without claims, carrying the
// token rejection reason when there was one.
func unauthenticated(request *http.Request) error {
	if reason := ctxutil.GetAuthFailure(request.Context()); reason != "" {
		return apperr.Unauthorized(reason)
	}
	return apperr.Unauthorized("Not authorized, no token")
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, unauthenticated(request))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// It implies [RequireAuth]: anonymous callers get 401, authenticated callers
// with an insufficient role get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, unauthenticated(request))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("User role "+claims.Role+" is not authorized to access this route"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
