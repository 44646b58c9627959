package outbound

import "context"

// Logger is the structured diagnostics sink used across usecases.
// Implementations must never propagate a failure back into the caller.
type Logger interface {
	Debug(ctx context.Context, message string, fields map[string]interface{})
	Info(ctx context.Context, message string, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})

	// Critical marks states that require manual operational
	// reconciliation, such as a failed compensating update.
	Critical(ctx context.Context, message string, fields map[string]interface{})
}

// Alert is one operational alert published on the best-effort side channel.
type Alert struct {
	Kind    string                 `json:"kind"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// AlertSink is a fire-and-forget ops side channel. Emit must never
// block the caller and must never fail the primary return path.
type AlertSink interface {
	Emit(ctx context.Context, alert Alert)
}
