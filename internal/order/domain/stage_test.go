package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	require.Equal(t, StagePreparing, ParseStage("preparing"))
	require.Equal(t, StageCancelled, ParseStage("cancelled"))
	require.Equal(t, StageOther, ParseStage("driver_waved_at_dog"))
	require.Equal(t, StageOther, ParseStage(""))
}

func newTimelineOrder() *Order {
	return &Order{
		OrderNumber:           "FB-TEST1",
		FulfillmentStatus:     StageLookingForDriver,
		EstimatedDeliveryDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		UpdatedAt:             time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func event(eventType string, at time.Time) TrackingEvent {
	return TrackingEvent{EventType: eventType, CreatedAt: at}
}

func TestBuildTimelineNoEvents(t *testing.T) {
	timeline := BuildTimeline(newTimelineOrder(), nil)

	require.Equal(t, StageLookingForDriver, timeline.Status)
	require.Len(t, timeline.Stages, 5)
	require.True(t, timeline.Stages[0].Current)
	require.False(t, timeline.Stages[0].Completed)
	for _, s := range timeline.Stages[1:] {
		require.False(t, s.Current)
		require.False(t, s.Completed)
	}
	require.Empty(t, timeline.Updates)
}

func TestBuildTimelineProgress(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []TrackingEvent{
		event("driver_assigned", base),
		event("preparing", base.Add(time.Hour)),
	}

	timeline := BuildTimeline(newTimelineOrder(), events)

	require.Equal(t, StagePreparing, timeline.Status)
	require.True(t, timeline.Stages[0].Completed)
	require.True(t, timeline.Stages[1].Completed)
	require.True(t, timeline.Stages[2].Current)
	require.False(t, timeline.Stages[2].Completed)
	require.NotNil(t, timeline.Stages[1].ReachedAt)
	require.Equal(t, base, *timeline.Stages[1].ReachedAt)
	require.Nil(t, timeline.Stages[3].ReachedAt)
}

func TestBuildTimelineOutOfOrderEvents(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []TrackingEvent{
		event("out_for_delivery", base.Add(2*time.Hour)),
		event("driver_assigned", base),
	}

	timeline := BuildTimeline(newTimelineOrder(), events)

	require.Equal(t, StageOutForDelivery, timeline.Status)
	require.True(t, timeline.Stages[3].Current)
}

func TestBuildTimelineDelivered(t *testing.T) {
	events := []TrackingEvent{
		event("delivered", time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)),
	}

	timeline := BuildTimeline(newTimelineOrder(), events)

	require.Equal(t, StageDelivered, timeline.Status)
	for _, s := range timeline.Stages {
		require.True(t, s.Completed)
	}
}

func TestBuildTimelineCancelled(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []TrackingEvent{
		event("preparing", base),
		event("cancelled", base.Add(time.Hour)),
	}

	timeline := BuildTimeline(newTimelineOrder(), events)

	require.Equal(t, StageCancelled, timeline.Status)
	for _, s := range timeline.Stages {
		require.False(t, s.Current)
	}
}

func TestBuildTimelineUnknownEventsPreserved(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := []TrackingEvent{
		event("driver_assigned", base),
		event("left_at_front_door_photo", base.Add(time.Hour)),
	}

	timeline := BuildTimeline(newTimelineOrder(), events)

	require.Equal(t, StageDriverAssigned, timeline.Status)
	require.Len(t, timeline.Updates, 1)
	require.Equal(t, "left_at_front_door_photo", timeline.Updates[0].EventType)
}

func TestBuildTimelineUsesOrderStatusAsSignal(t *testing.T) {
	order := newTimelineOrder()
	order.FulfillmentStatus = StagePreparing

	timeline := BuildTimeline(order, nil)

	require.Equal(t, StagePreparing, timeline.Status)
	require.True(t, timeline.Stages[2].Current)
}
