package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// ComposeRequest selects the recipes for a plan. Order matters: line items
// and the snapshot preserve the caller's ordering.
type ComposeRequest struct {
	PlanID    snowflake.ID
	RecipeIDs []snowflake.ID
}

type PlanDetail struct {
	Plan  Plan       `json:"plan"`
	Items []PlanItem `json:"items"`
}

type Service interface {
	Compose(ctx context.Context, req ComposeRequest) (*PlanDetail, error)
	Get(ctx context.Context, id snowflake.ID) (*PlanDetail, error)
}
