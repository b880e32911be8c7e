package obscontext

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	mcNumberKey  contextKey = "mc_number"
	loadIDKey    contextKey = "load_id"
)

// WithRequestID stores the request correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request correlation id, if any.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// WithMCNumber stores the carrier MC number the request acts on.
func WithMCNumber(ctx context.Context, mcNumber string) context.Context {
	return context.WithValue(ctx, mcNumberKey, mcNumber)
}

// MCNumberFromContext returns the carrier MC number, if any.
func MCNumberFromContext(ctx context.Context) string {
	return stringValue(ctx, mcNumberKey)
}

// WithLoadID stores the load id the request acts on.
func WithLoadID(ctx context.Context, loadID string) context.Context {
	return context.WithValue(ctx, loadIDKey, loadID)
}

// LoadIDFromContext returns the load id, if any.
func LoadIDFromContext(ctx context.Context) string {
	return stringValue(ctx, loadIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
