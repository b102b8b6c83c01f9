// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/identity"
)

const (
	SubjectIDKey contextKey = "subject_id"
	UserRoleKey  contextKey = "user_role"
)

type SessionVerifier interface {
	VerifySessionToken(
		ctx context.Context,
		token string,
	) (*identity.Subject, error)
}

// RoleResolver looks up the persisted user row for a subject. A miss means
// the caller is authenticated but has not completed role selection.
type RoleResolver interface {
	ResolveRole(ctx context.Context, subjectID string) (string, error)
}

// Authenticator resolves the session credential to a subject. Any missing
// or invalid credential yields 401 before role lookup.
func Authenticator(
	verifier SessionVerifier,
	sessionCookie string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, sessionCookie)

			if token == "" {
				core.Unauthorized(w, "")
				return
			}

			subject, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				core.Unauthorized(w, "")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectIDKey, subject.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveRole loads the subject's user_type from the server row, the single
// source of truth for role state. A missing row leaves the role empty so
// the gate can deny with a role-selection reason; only storage failures
// abort the request.
func ResolveRole(resolver RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subjectID := GetSubjectID(r.Context())

			role, err := resolver.ResolveRole(r.Context(), subjectID)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				core.InternalServerError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize gates an operation class through the central policy table.
// Ownership-scoped decisions that need resource hints happen in services;
// this covers the collection-level classes.
func Authorize(
	gate *authz.Gate,
	op authz.Operation,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r.Context())

			if err := gate.Authorize(caller, op, authz.Resource{}); err != nil {
				WriteAuthzError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request, sessionCookie string) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if sessionCookie != "" {
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			return cookie.Value
		}
	}

	return ""
}

func WriteAuthzError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	default:
		core.InternalServerError(w, err)
	}
}

func CallerFromContext(ctx context.Context) authz.Caller {
	return authz.Caller{
		ID:   GetSubjectID(ctx),
		Role: GetUserRole(ctx),
	}
}

func GetSubjectID(ctx context.Context) string {
	if id, ok := ctx.Value(SubjectIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetSubjectID(ctx) != ""
}
