package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "rentpilot/pkg/errors"
	httputil "rentpilot/pkg/http"
	"rentpilot/pkg/logger"
)

const (
	TenantIDKey         contextKey = "tenant_id"
	DefaultTenantHeader            = "X-Tenant-ID"
)

// Tenant resolves the calling tenant from header and stores it in the
// request context. defaultTenant, when set, is used for requests without
// the header; otherwise they are rejected.
func Tenant(header, defaultTenant string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(header))
			if tenantID == "" {
				tenantID = defaultTenant
			}

			if tenantID == "" {
				log.Warn("Request without tenant",
					"request_id", RequestIDFromContext(r.Context()),
					"header", header,
					"path", r.URL.Path,
				)
				if writeErr := httputil.WriteError(w, apperrors.MissingTenant(header)); writeErr != nil {
					log.Error("failed to write error response", "error", writeErr)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenantID)))
		})
	}
}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

func TenantFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(TenantIDKey).(string); ok {
		return id
	}
	return ""
}

// RequireTenant returns the tenant stored by Tenant, or a MISSING_TENANT
// error when the request did not pass through it.
func RequireTenant(ctx context.Context) (string, error) {
	if id := TenantFromContext(ctx); id != "" {
		return id, nil
	}
	return "", apperrors.MissingTenant(DefaultTenantHeader)
}
