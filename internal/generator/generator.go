// Package generator turns due subscriptions into fulfillment orders. Each
// run is idempotent: the existence check catches the common case and the
// unique (subscription, delivery date) index on orders catches concurrent
// runs racing past it.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	obsmetrics "github.com/freshbowl/freshbowl/internal/observability/metrics"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	"github.com/freshbowl/freshbowl/internal/providers/email"
	"github.com/freshbowl/freshbowl/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("generator_invalid_config")

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	OrderRepo orderdomain.Repository
	PlanRepo  plandomain.Repository
	Notifier  email.Provider `optional:"true"`
	Config    Config         `optional:"true"`
}

type Generator struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   Config
	genID *snowflake.Node
	clock clock.Clock

	orders   orderdomain.Repository
	plans    plandomain.Repository
	notifier email.Provider
}

// Result is the aggregate outcome of one run. A run succeeds even when
// individual subscriptions fail; their errors are collected here.
type Result struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

func New(p Params) (*Generator, error) {
	if p.DB == nil || p.Log == nil || p.GenID == nil || p.Clock == nil || p.OrderRepo == nil || p.PlanRepo == nil {
		return nil, ErrInvalidConfig
	}
	return &Generator{
		db:       p.DB,
		log:      p.Log.Named("generator").With(zap.String("component", "order_generator")),
		cfg:      p.Config.withDefaults(),
		genID:    p.GenID,
		clock:    p.Clock,
		orders:   p.OrderRepo,
		plans:    p.PlanRepo,
		notifier: p.Notifier,
	}, nil
}

// Run cuts at most one order per due subscription for the given delivery
// date. A zero deliveryDate targets the run day, shifted by the configured
// lead time.
func (g *Generator) Run(parent context.Context, deliveryDate time.Time) (Result, error) {
	start := g.clock.Now()
	ctx, cancel := context.WithTimeout(parent, g.cfg.RunTimeout)
	defer cancel()

	if deliveryDate.IsZero() {
		deliveryDate = start.AddDate(0, 0, g.cfg.DeliveryLeadDays)
	}
	target := startOfDay(deliveryDate)

	var res Result
	var cursor snowflake.ID

	for {
		subs, err := g.claimDueSubscriptions(ctx, target, cursor, g.cfg.BatchSize)
		if err != nil {
			g.observe(start, res)
			return res, fmt.Errorf("claim due subscriptions: %w", err)
		}
		if len(subs) == 0 {
			break
		}

		for _, sub := range subs {
			if err := ctx.Err(); err != nil {
				g.log.Warn("run deadline reached, stopping early", zap.Error(err))
				g.observe(start, res)
				return res, nil
			}

			created, err := g.generateOrder(ctx, sub, target)
			switch {
			case err != nil:
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("subscription %d: %v", sub.ID, err))
				g.log.Error("order generation failed",
					zap.Int64("subscription_id", int64(sub.ID)),
					zap.Error(err),
				)
			case created:
				res.Created++
			default:
				res.Skipped++
			}
			cursor = sub.ID
		}

		if len(subs) < g.cfg.BatchSize {
			break
		}
	}

	g.observe(start, res)
	g.log.Info("generator run finished",
		zap.Time("delivery_date", target),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

func (g *Generator) observe(start time.Time, res Result) {
	obsmetrics.Generator().ObserveRun(g.clock.Now().Sub(start), res.Created, res.Skipped, res.Failed)
}

func (g *Generator) generateOrder(ctx context.Context, sub dueSubscription, deliveryDate time.Time) (bool, error) {
	existing, err := g.orders.FindBySubscriptionAndDate(ctx, g.db, sub.ID, deliveryDate)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	plan, err := g.plans.FindByID(ctx, g.db, sub.PlanID)
	if err != nil {
		return false, err
	}
	if plan == nil {
		return false, fmt.Errorf("plan %d not found", sub.PlanID)
	}

	snapshot := plan.Snapshot.Data()
	total := snapshot.TotalCents
	if total <= 0 {
		total = plan.TotalCents
	}
	if total <= 0 {
		total = g.cfg.DefaultTotalCents
		g.log.Warn("plan has no resolvable total, using default",
			zap.Int64("plan_id", int64(plan.ID)),
			zap.Int64("default_total_cents", total),
		)
	}

	recipes := make([]orderdomain.OrderRecipe, 0, len(snapshot.Recipes))
	for _, line := range snapshot.Recipes {
		quantity := line.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		recipes = append(recipes, orderdomain.OrderRecipe{
			RecipeID:       line.RecipeID,
			Name:           line.Name,
			Quantity:       quantity,
			PortionGrams:   line.PortionGrams,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	now := g.clock.Now()
	orderID := g.genID.Generate()
	order := &orderdomain.Order{
		ID:                    orderID,
		OrderNumber:           orderNumber(orderID),
		CustomerID:            sub.CustomerID,
		SubscriptionID:        sub.ID,
		IsSubscriptionOrder:   true,
		EstimatedDeliveryDate: deliveryDate,
		TotalCents:            total,
		Recipes:               datatypes.NewJSONType(recipes),
		FulfillmentStatus:     orderdomain.StageLookingForDriver,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err = g.db.Transaction(func(tx *gorm.DB) error {
		if err := g.orders.Insert(ctx, tx, order); err != nil {
			return err
		}
		return g.orders.InsertTrackingEvent(ctx, tx, &orderdomain.TrackingEvent{
			ID:          g.genID.Generate(),
			OrderID:     order.ID,
			EventType:   string(orderdomain.StageLookingForDriver),
			Description: "We're looking for a driver for your delivery",
			Metadata: map[string]interface{}{
				"subscription_id": sub.ID.String(),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Another run won the race; the order exists.
			return false, nil
		}
		return false, err
	}

	g.notify(ctx, order, recipes)
	return true, nil
}

func (g *Generator) notify(ctx context.Context, order *orderdomain.Order, recipes []orderdomain.OrderRecipe) {
	if g.notifier == nil {
		return
	}
	names := make([]string, 0, len(recipes))
	for _, line := range recipes {
		names = append(names, line.Name)
	}
	err := g.notifier.OrderCreated(ctx, email.OrderNotification{
		OrderNumber:  order.OrderNumber,
		RecipeNames:  names,
		DeliveryDate: order.EstimatedDeliveryDate,
		TotalCents:   order.TotalCents,
	})
	if err != nil {
		g.log.Warn("order notification failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
}

func orderNumber(id snowflake.ID) string {
	return "FB-" + strings.ToUpper(id.Base36())
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
