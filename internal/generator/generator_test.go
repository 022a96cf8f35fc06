package generator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	"github.com/freshbowl/freshbowl/internal/nutrition"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	orderrepository "github.com/freshbowl/freshbowl/internal/order/repository"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	planrepository "github.com/freshbowl/freshbowl/internal/plan/repository"
	"github.com/freshbowl/freshbowl/internal/providers/email"
	subscriptiondomain "github.com/freshbowl/freshbowl/internal/subscription/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubNotifier struct {
	sent []email.OrderNotification
}

func (s *stubNotifier) OrderCreated(ctx context.Context, n email.OrderNotification) error {
	s.sent = append(s.sent, n)
	return nil
}

type fixture struct {
	db       *gorm.DB
	gen      *Generator
	node     *snowflake.Node
	clock    *clock.FakeClock
	notifier *stubNotifier
}

func setup(t *testing.T, cfg Config) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&plandomain.Plan{},
		&plandomain.PlanItem{},
		&subscriptiondomain.Subscription{},
		&orderdomain.Order{},
		&orderdomain.TrackingEvent{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	notifier := &stubNotifier{}

	gen, err := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		OrderRepo: orderrepository.Provide(),
		PlanRepo:  planrepository.Provide(),
		Notifier:  notifier,
		Config:    cfg,
	})
	require.NoError(t, err)

	return &fixture{db: db, gen: gen, node: node, clock: fake, notifier: notifier}
}

func (f *fixture) seedPlan(t *testing.T, totalCents int64, recipes []plandomain.SnapshotRecipe) *plandomain.Plan {
	plan := &plandomain.Plan{
		ID:         f.node.Generate(),
		CustomerID: f.node.Generate(),
		DogID:      f.node.Generate(),
		PlanType:   nutrition.PlanTypeFull,
		TotalCents: totalCents,
		Snapshot: datatypes.NewJSONType(plandomain.Snapshot{
			Recipes:     recipes,
			TotalCents:  totalCents,
			CadenceDays: nutrition.CycleDays,
		}),
	}
	require.NoError(t, f.db.Create(plan).Error)
	return plan
}

func (f *fixture) seedSubscription(t *testing.T, plan *plandomain.Plan, status subscriptiondomain.SubscriptionStatus, periodEnd time.Time) *subscriptiondomain.Subscription {
	customerID := plan.CustomerID
	if customerID == 0 {
		customerID = f.node.Generate()
	}
	sub := &subscriptiondomain.Subscription{
		ID:               f.node.Generate(),
		CustomerID:       customerID,
		PlanID:           plan.ID,
		Status:           status,
		CurrentPeriodEnd: periodEnd,
		IntervalDays:     nutrition.CycleDays,
	}
	require.NoError(t, f.db.Create(sub).Error)
	return sub
}

func (f *fixture) orderCount(t *testing.T) int64 {
	var count int64
	require.NoError(t, f.db.Model(&orderdomain.Order{}).Count(&count).Error)
	return count
}

var turkeyLine = []plandomain.SnapshotRecipe{
	{Name: "Turkey & Brown Rice", Quantity: 1, PortionGrams: 5200, UnitPriceCents: 2100},
}

func TestRunCreatesOrderFromSnapshot(t *testing.T) {
	f := setup(t, Config{})
	due := f.clock.Now().Add(-time.Hour)
	plan := f.seedPlan(t, 2100, turkeyLine)
	sub := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, due)

	delivery := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	res, err := f.gen.Run(context.Background(), delivery)
	require.NoError(t, err)
	require.Equal(t, Result{Created: 1}, res)

	var order orderdomain.Order
	require.NoError(t, f.db.First(&order, "subscription_id = ?", sub.ID).Error)
	require.True(t, strings.HasPrefix(order.OrderNumber, "FB-"))
	require.True(t, order.IsSubscriptionOrder)
	require.Equal(t, int64(2100), order.TotalCents)
	require.Equal(t, orderdomain.StageLookingForDriver, order.FulfillmentStatus)
	require.WithinDuration(t, delivery, order.EstimatedDeliveryDate, time.Second)

	lines := order.Recipes.Data()
	require.Len(t, lines, 1)
	require.Equal(t, "Turkey & Brown Rice", lines[0].Name)
	require.Equal(t, int64(2100), lines[0].UnitPriceCents)

	var events []orderdomain.TrackingEvent
	require.NoError(t, f.db.Find(&events, "order_id = ?", order.ID).Error)
	require.Len(t, events, 1)
	require.Equal(t, string(orderdomain.StageLookingForDriver), events[0].EventType)

	require.Len(t, f.notifier.sent, 1)
	require.Equal(t, order.OrderNumber, f.notifier.sent[0].OrderNumber)
}

func TestRunIsIdempotent(t *testing.T) {
	f := setup(t, Config{})
	due := f.clock.Now().Add(-time.Hour)
	plan := f.seedPlan(t, 2100, turkeyLine)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, due)

	delivery := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	res, err := f.gen.Run(context.Background(), delivery)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	res, err = f.gen.Run(context.Background(), delivery)
	require.NoError(t, err)
	require.Zero(t, res.Created)
	require.Zero(t, res.Failed)
	require.EqualValues(t, 1, f.orderCount(t))

	// A different delivery date is a different cycle.
	res, err = f.gen.Run(context.Background(), delivery.AddDate(0, 0, nutrition.CycleDays))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
	require.EqualValues(t, 2, f.orderCount(t))
}

func TestRunIsolatesFailures(t *testing.T) {
	f := setup(t, Config{BatchSize: 4})
	due := f.clock.Now().Add(-time.Hour)

	var badSub *subscriptiondomain.Subscription
	for i := 0; i < 10; i++ {
		if i == 3 {
			// Dangling plan reference.
			orphan := &plandomain.Plan{ID: f.node.Generate(), CustomerID: f.node.Generate(), DogID: f.node.Generate()}
			badSub = f.seedSubscription(t, orphan, subscriptiondomain.SubscriptionStatusActive, due)
			continue
		}
		plan := f.seedPlan(t, 2100, turkeyLine)
		f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, due)
	}

	res, err := f.gen.Run(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 9, res.Created)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], fmt.Sprintf("subscription %d", badSub.ID))
	require.EqualValues(t, 9, f.orderCount(t))
}

func TestRunSkipsNonBillableAndNotDue(t *testing.T) {
	f := setup(t, Config{})
	due := f.clock.Now().Add(-time.Hour)
	future := f.clock.Now().Add(72 * time.Hour)

	plan := f.seedPlan(t, 2100, turkeyLine)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusPaused, due)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusCanceled, due)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusPastDue, due)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusTrialing, due)
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, future)

	res, err := f.gen.Run(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
	require.Zero(t, f.orderCount(t))
}

func TestRunReachesSubscriptionsBeyondFailingBatch(t *testing.T) {
	f := setup(t, Config{BatchSize: 2})
	due := f.clock.Now().Add(-time.Hour)

	// Two dangling plan references claim the whole first batch.
	for i := 0; i < 2; i++ {
		orphan := &plandomain.Plan{ID: f.node.Generate(), CustomerID: f.node.Generate(), DogID: f.node.Generate()}
		f.seedSubscription(t, orphan, subscriptiondomain.SubscriptionStatusActive, due)
	}
	plan := f.seedPlan(t, 2100, turkeyLine)
	healthy := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, due)

	res, err := f.gen.Run(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
	require.Equal(t, 2, res.Failed)

	var order orderdomain.Order
	require.NoError(t, f.db.First(&order, "subscription_id = ?", healthy.ID).Error)
}

func TestRunDuenessFollowsTargetDate(t *testing.T) {
	f := setup(t, Config{})
	plan := f.seedPlan(t, 2100, turkeyLine)
	// Became due this morning, after the start of the backdated target day.
	f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, f.clock.Now().Add(-time.Hour))

	res, err := f.gen.Run(context.Background(), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Result{}, res)

	res, err = f.gen.Run(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
}

func TestRunFallsBackToDefaultTotal(t *testing.T) {
	f := setup(t, Config{})
	plan := f.seedPlan(t, 0, nil)
	sub := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, f.clock.Now().Add(-time.Hour))

	res, err := f.gen.Run(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var order orderdomain.Order
	require.NoError(t, f.db.First(&order, "subscription_id = ?", sub.ID).Error)
	require.Equal(t, DefaultConfig().DefaultTotalCents, order.TotalCents)
	require.Empty(t, order.Recipes.Data())
}

func TestRunDefaultsDeliveryDateToRunDay(t *testing.T) {
	f := setup(t, Config{})
	plan := f.seedPlan(t, 2100, turkeyLine)
	sub := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, f.clock.Now().Add(-24*time.Hour))

	res, err := f.gen.Run(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var order orderdomain.Order
	require.NoError(t, f.db.First(&order, "subscription_id = ?", sub.ID).Error)
	require.WithinDuration(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), order.EstimatedDeliveryDate, time.Second)
}

func TestRunAppliesDeliveryLeadTime(t *testing.T) {
	f := setup(t, Config{DeliveryLeadDays: 2})
	plan := f.seedPlan(t, 2100, turkeyLine)
	sub := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, f.clock.Now().Add(-time.Hour))

	res, err := f.gen.Run(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var order orderdomain.Order
	require.NoError(t, f.db.First(&order, "subscription_id = ?", sub.ID).Error)
	require.WithinDuration(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), order.EstimatedDeliveryDate, time.Second)
}

func TestUniqueIndexClosesInsertRace(t *testing.T) {
	f := setup(t, Config{})
	plan := f.seedPlan(t, 2100, turkeyLine)
	sub := f.seedSubscription(t, plan, subscriptiondomain.SubscriptionStatusActive, f.clock.Now().Add(-time.Hour))

	delivery := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	res, err := f.gen.Run(context.Background(), delivery)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	// A second insert for the same (subscription, delivery date) must be
	// rejected by the schema, not just the existence check.
	dup := &orderdomain.Order{
		ID:                    f.node.Generate(),
		OrderNumber:           "FB-DUP",
		CustomerID:            sub.CustomerID,
		SubscriptionID:        sub.ID,
		IsSubscriptionOrder:   true,
		EstimatedDeliveryDate: delivery,
		TotalCents:            2100,
	}
	err = f.db.Create(dup).Error
	require.Error(t, err)
}
