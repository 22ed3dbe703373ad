package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject carries the authenticated username decoded from the
	// bearer token. There is no role model; presence means full access.
	CtxKeySubject ctxKey = "subject"
)

// SubjectFromContext returns the acting identity set by AuthnMiddleware,
// or the empty string on unguarded routes.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
