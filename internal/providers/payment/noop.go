package payment

import "context"

type noopProvider struct{}

// NewNoop is used when no processor credentials are configured. Price
// resolution then depends entirely on stored totals and snapshots.
func NewNoop() Provider {
	return &noopProvider{}
}

func (noopProvider) SubscriptionPrice(ctx context.Context, processorSubscriptionID string) (Price, error) {
	return Price{}, ErrNotConfigured
}
