package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	orderrepository "github.com/freshbowl/freshbowl/internal/order/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderdomain.Order{}, &orderdomain.TrackingEvent{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) (orderdomain.Service, *snowflake.Node, *clock.FakeClock) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  orderrepository.Provide(),
	})
	return svc, node, fake
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node) *orderdomain.Order {
	order := &orderdomain.Order{
		ID:                    node.Generate(),
		OrderNumber:           "FB-TEST1",
		CustomerID:            node.Generate(),
		SubscriptionID:        node.Generate(),
		IsSubscriptionOrder:   true,
		EstimatedDeliveryDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalCents:            2100,
		Recipes: datatypes.NewJSONType([]orderdomain.OrderRecipe{
			{Name: "Turkey & Brown Rice", Quantity: 1, UnitPriceCents: 2100},
		}),
		FulfillmentStatus: orderdomain.StageLookingForDriver,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestAddTrackingEventAdvancesStatus(t *testing.T) {
	db := setupTestDB(t)
	svc, node, fake := newTestService(t, db)
	ctx := context.Background()
	order := seedOrder(t, db, node)

	ev, err := svc.AddTrackingEvent(ctx, orderdomain.AddTrackingEventRequest{
		OrderID:     order.ID,
		EventType:   "driver_assigned",
		Description: "Maya is on the way to pick up the box",
	})
	require.NoError(t, err)
	require.Equal(t, fake.Now(), ev.CreatedAt)

	var stored orderdomain.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, orderdomain.StageDriverAssigned, stored.FulfillmentStatus)
}

func TestAddTrackingEventUnknownTypeKeepsStatus(t *testing.T) {
	db := setupTestDB(t)
	svc, node, _ := newTestService(t, db)
	ctx := context.Background()
	order := seedOrder(t, db, node)

	_, err := svc.AddTrackingEvent(ctx, orderdomain.AddTrackingEventRequest{
		OrderID:   order.ID,
		EventType: "customer_note",
		Metadata:  map[string]interface{}{"note": "leave by the gate"},
	})
	require.NoError(t, err)

	var stored orderdomain.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, orderdomain.StageLookingForDriver, stored.FulfillmentStatus)

	timeline, err := svc.GetTimeline(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, timeline.Updates, 1)
	require.Equal(t, orderdomain.StageLookingForDriver, timeline.Status)
}

func TestGetTimelineProgress(t *testing.T) {
	db := setupTestDB(t)
	svc, node, fake := newTestService(t, db)
	ctx := context.Background()
	order := seedOrder(t, db, node)

	for _, stage := range []string{"driver_assigned", "preparing", "out_for_delivery"} {
		_, err := svc.AddTrackingEvent(ctx, orderdomain.AddTrackingEventRequest{OrderID: order.ID, EventType: stage})
		require.NoError(t, err)
		fake.Advance(30 * time.Minute)
	}

	timeline, err := svc.GetTimeline(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, orderdomain.StageOutForDelivery, timeline.Status)
	require.Equal(t, "FB-TEST1", timeline.OrderNumber)
	require.True(t, timeline.Stages[3].Current)
	require.True(t, timeline.Stages[2].Completed)
}

func TestTrackingValidation(t *testing.T) {
	db := setupTestDB(t)
	svc, node, _ := newTestService(t, db)
	ctx := context.Background()
	order := seedOrder(t, db, node)

	_, err := svc.AddTrackingEvent(ctx, orderdomain.AddTrackingEventRequest{OrderID: order.ID, EventType: "   "})
	require.ErrorIs(t, err, orderdomain.ErrInvalidEvent)

	_, err = svc.AddTrackingEvent(ctx, orderdomain.AddTrackingEventRequest{OrderID: node.Generate(), EventType: "preparing"})
	require.ErrorIs(t, err, orderdomain.ErrNotFound)

	_, err = svc.GetTimeline(ctx, node.Generate())
	require.ErrorIs(t, err, orderdomain.ErrNotFound)
}
