package middleware

import (
	"context"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the caller is not admin.
// Call it from handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
