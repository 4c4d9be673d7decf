package logging

import (
	"context"
	"strings"
)

// Redacted replaces values of sensitive keys in log output.
const Redacted = "[REDACTED]"

// sensitive keys are matched as substrings of the lowercased key, so
// "refresh_token" and "AccessTokenSecret" are both caught.
var sensitiveKeys = []string{"password", "token", "secret", "authorization", "hash"}

// RedactingLogger wraps a Logger and masks values of sensitive keys.
// Every logger handed to the service goes through this wrapper; redaction
// is structural, not ad hoc string filtering at call sites.
type RedactingLogger struct {
	inner Logger
}

// NewRedactingLogger wraps the given logger with redaction
func NewRedactingLogger(inner Logger) *RedactingLogger {
	return &RedactingLogger{inner: inner}
}

func (r *RedactingLogger) Info(ctx context.Context, msg string, args ...any) {
	r.inner.Info(ctx, msg, redactArgs(args)...)
}

func (r *RedactingLogger) Warn(ctx context.Context, msg string, args ...any) {
	r.inner.Warn(ctx, msg, redactArgs(args)...)
}

func (r *RedactingLogger) Error(ctx context.Context, msg string, args ...any) {
	r.inner.Error(ctx, msg, redactArgs(args)...)
}

func (r *RedactingLogger) With(args ...any) Logger {
	return &RedactingLogger{inner: r.inner.With(redactArgs(args)...)}
}

func redactArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)

	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if isSensitive(key) {
			out[i+1] = Redacted
		}
	}

	return out
}

func isSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
