package llm

import "context"

type purposeKey struct{}

// PurposeUnknown labels calls made without WithPurpose.
const PurposeUnknown = "unknown"

// WithPurpose labels every LLM call made with ctx, so the event log can
// attribute token spend. An empty purpose leaves ctx unchanged.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return PurposeUnknown
}
