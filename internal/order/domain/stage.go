package domain

import "time"

// Stage is a fulfillment stage. The pipeline stages form the delivery
// timeline in order; cancelled and failed are terminal side exits. Any
// event type outside the known set is StageOther and shows up as an
// additional update rather than breaking the timeline.
type Stage string

const (
	StageLookingForDriver Stage = "looking_for_driver"
	StageDriverAssigned   Stage = "driver_assigned"
	StagePreparing        Stage = "preparing"
	StageOutForDelivery   Stage = "out_for_delivery"
	StageDelivered        Stage = "delivered"

	StageCancelled Stage = "cancelled"
	StageFailed    Stage = "failed"
	StageOther     Stage = "other"
)

// PipelineStages is the happy-path delivery sequence.
var PipelineStages = []Stage{
	StageLookingForDriver,
	StageDriverAssigned,
	StagePreparing,
	StageOutForDelivery,
	StageDelivered,
}

func ParseStage(s string) Stage {
	switch Stage(s) {
	case StageLookingForDriver, StageDriverAssigned, StagePreparing,
		StageOutForDelivery, StageDelivered, StageCancelled, StageFailed:
		return Stage(s)
	default:
		return StageOther
	}
}

func (s Stage) Terminal() bool {
	return s == StageDelivered || s == StageCancelled || s == StageFailed
}

func (s Stage) Label() string {
	switch s {
	case StageLookingForDriver:
		return "Looking for a driver"
	case StageDriverAssigned:
		return "Driver assigned"
	case StagePreparing:
		return "Preparing your order"
	case StageOutForDelivery:
		return "Out for delivery"
	case StageDelivered:
		return "Delivered"
	case StageCancelled:
		return "Cancelled"
	case StageFailed:
		return "Delivery failed"
	default:
		return "Update"
	}
}

func pipelineIndex(s Stage) int {
	for i, stage := range PipelineStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// TimelineStage is one rendered step of the delivery pipeline.
type TimelineStage struct {
	Stage     Stage      `json:"stage"`
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	Current   bool       `json:"current"`
	ReachedAt *time.Time `json:"reached_at,omitempty"`
}

// Timeline is the customer-facing view of an order's fulfillment.
type Timeline struct {
	OrderNumber           string          `json:"order_number"`
	Status                Stage           `json:"status"`
	EstimatedDeliveryDate time.Time       `json:"estimated_delivery_date"`
	Stages                []TimelineStage `json:"stages"`
	Updates               []TrackingEvent `json:"updates"`
}

// BuildTimeline infers the current stage from the event history plus the
// order's own status. Inference is lenient: the furthest pipeline stage
// mentioned anywhere wins, events may arrive out of order, and unknown
// event types are preserved as updates instead of rejected.
func BuildTimeline(order *Order, events []TrackingEvent) Timeline {
	furthest := 0
	terminal := Stage("")
	reachedAt := make(map[Stage]*time.Time)
	var updates []TrackingEvent

	note := func(s Stage, at time.Time) {
		if idx := pipelineIndex(s); idx >= 0 {
			if idx > furthest {
				furthest = idx
			}
			if reachedAt[s] == nil {
				t := at
				reachedAt[s] = &t
			}
			return
		}
		if s == StageCancelled || s == StageFailed {
			terminal = s
		}
	}

	for _, ev := range events {
		stage := ParseStage(ev.EventType)
		if stage == StageOther {
			updates = append(updates, ev)
			continue
		}
		note(stage, ev.CreatedAt)
	}
	note(ParseStage(string(order.FulfillmentStatus)), order.UpdatedAt)

	status := PipelineStages[furthest]
	if terminal != "" {
		status = terminal
	}

	stages := make([]TimelineStage, 0, len(PipelineStages))
	for i, stage := range PipelineStages {
		stages = append(stages, TimelineStage{
			Stage:     stage,
			Label:     stage.Label(),
			Completed: i < furthest || (i == furthest && stage == StageDelivered),
			Current:   i == furthest && terminal == "",
			ReachedAt: reachedAt[stage],
		})
	}

	return Timeline{
		OrderNumber:           order.OrderNumber,
		Status:                status,
		EstimatedDeliveryDate: order.EstimatedDeliveryDate,
		Stages:                stages,
		Updates:               updates,
	}
}
