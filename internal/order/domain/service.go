package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidEvent = errors.New("invalid_tracking_event")

type AddTrackingEventRequest struct {
	OrderID     snowflake.ID
	EventType   string
	Description string
	Metadata    map[string]interface{}
}

type Service interface {
	GetTimeline(ctx context.Context, orderID snowflake.ID) (*Timeline, error)
	AddTrackingEvent(ctx context.Context, req AddTrackingEventRequest) (*TrackingEvent, error)
}
