package payment

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

type stripeProvider struct {
	client *client.API
	log    *zap.Logger
}

func NewStripe(apiKey string, log *zap.Logger) Provider {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &stripeProvider{
		client: api,
		log:    log.Named("payment.stripe"),
	}
}

func (p *stripeProvider) SubscriptionPrice(ctx context.Context, processorSubscriptionID string) (Price, error) {
	var sub *stripe.Subscription

	op := func() error {
		var err error
		sub, err = p.client.Subscriptions.Get(processorSubscriptionID, &stripe.SubscriptionParams{
			Params: stripe.Params{Context: ctx},
		})
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		p.log.Warn("subscription price lookup failed",
			zap.String("processor_subscription_id", processorSubscriptionID),
			zap.Error(err),
		)
		return Price{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if sub == nil || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return Price{}, fmt.Errorf("%w: subscription %s has no price item", ErrLookupFailed, processorSubscriptionID)
	}

	item := sub.Items.Data[0].Price
	return Price{
		UnitAmountCents: item.UnitAmount,
		IntervalDays:    intervalDays(item.Recurring),
	}, nil
}

func intervalDays(r *stripe.PriceRecurring) int {
	if r == nil {
		return 14
	}
	count := int(r.IntervalCount)
	if count <= 0 {
		count = 1
	}
	switch r.Interval {
	case stripe.PriceRecurringIntervalDay:
		return count
	case stripe.PriceRecurringIntervalWeek:
		return count * 7
	case stripe.PriceRecurringIntervalMonth:
		return count * 30
	case stripe.PriceRecurringIntervalYear:
		return count * 365
	default:
		return 14
	}
}
