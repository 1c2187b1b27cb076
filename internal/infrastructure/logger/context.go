package logger

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	UsernameKey  contextKey = "username"
	UserIDKey    contextKey = "user_id"
)

// WithContext attaches l to ctx
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

// FromContext returns the logger attached to ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// For returns the request logger attached to ctx, falling back to base for
// work that did not start from an HTTP request (jobs, event handlers).
// The current trace and span ids are added when ctx carries a sampled span.
func For(ctx context.Context, base *zap.Logger) *zap.Logger {
	l, ok := ctx.Value(LoggerKey).(*zap.Logger)
	if !ok {
		l = base
	}
	if l == nil {
		l = zap.NewNop()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return l
}

func withValue(ctx context.Context, l *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	l = l.With(zap.String(string(key), value))
	return WithContext(ctx, l), l
}

// WithRequestID stores the request id and tags l with it
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withValue(ctx, l, RequestIDKey, requestID)
}

// WithUsername stores the authenticated username and tags l with it
func WithUsername(ctx context.Context, l *zap.Logger, username string) (context.Context, *zap.Logger) {
	return withValue(ctx, l, UsernameKey, username)
}

// WithUserID stores the authenticated user id (the landlord for owner
// scoped requests) and tags l with it
func WithUserID(ctx context.Context, l *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withValue(ctx, l, UserIDKey, userID)
}

// WithUnit tags l with the unit a tenancy operation binds or frees
func WithUnit(ctx context.Context, l *zap.Logger, propertyID uuid.UUID, unitNumber string) (context.Context, *zap.Logger) {
	l = l.With(PropertyID(propertyID), zap.String("unit_number", unitNumber))
	return WithContext(ctx, l), l
}

// WithTenant tags l with the tenant being acted on
func WithTenant(ctx context.Context, l *zap.Logger, tenantID uuid.UUID) (context.Context, *zap.Logger) {
	l = l.With(TenantID(tenantID))
	return WithContext(ctx, l), l
}

func PropertyID(id uuid.UUID) zap.Field { return zap.Stringer("property_id", id) }

func TenantID(id uuid.UUID) zap.Field { return zap.Stringer("tenant_id", id) }

func OwnerID(id uuid.UUID) zap.Field { return zap.Stringer("owner_id", id) }

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
