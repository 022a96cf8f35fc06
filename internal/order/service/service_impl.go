package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  orderdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  orderdomain.Repository
}

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// GetTimeline implements domain.Service.
func (s *Service) GetTimeline(ctx context.Context, orderID snowflake.ID) (*orderdomain.Timeline, error) {
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}

	events, err := s.repo.ListTrackingEvents(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}

	timeline := orderdomain.BuildTimeline(order, events)
	return &timeline, nil
}

// AddTrackingEvent implements domain.Service. Known stage types also move
// the order's fulfillment status; unknown types are stored as-is.
func (s *Service) AddTrackingEvent(ctx context.Context, req orderdomain.AddTrackingEventRequest) (*orderdomain.TrackingEvent, error) {
	eventType := strings.TrimSpace(req.EventType)
	if eventType == "" {
		return nil, orderdomain.ErrInvalidEvent
	}

	order, err := s.repo.FindByID(ctx, s.db, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}

	now := s.clock.Now()
	event := &orderdomain.TrackingEvent{
		ID:          s.genID.Generate(),
		OrderID:     order.ID,
		EventType:   eventType,
		Description: strings.TrimSpace(req.Description),
		Metadata:    req.Metadata,
		CreatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertTrackingEvent(ctx, tx, event); err != nil {
			return err
		}
		if stage := orderdomain.ParseStage(eventType); stage != orderdomain.StageOther {
			return s.repo.UpdateFulfillmentStatus(ctx, tx, order.ID, stage, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tracking event recorded",
		zap.Int64("order_id", int64(order.ID)),
		zap.String("event_type", eventType),
	)
	return event, nil
}
