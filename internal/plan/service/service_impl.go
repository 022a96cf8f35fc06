package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	dogdomain "github.com/freshbowl/freshbowl/internal/dog/domain"
	"github.com/freshbowl/freshbowl/internal/nutrition"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	"github.com/freshbowl/freshbowl/internal/pricing"
	recipedomain "github.com/freshbowl/freshbowl/internal/recipe/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock

	planRepo   plandomain.Repository
	dogRepo    dogdomain.Repository
	recipeRepo recipedomain.Repository

	pricing *pricing.Reconciler
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	PlanRepo   plandomain.Repository
	DogRepo    dogdomain.Repository
	RecipeRepo recipedomain.Repository

	Pricing *pricing.Reconciler
}

func NewService(p ServiceParam) plandomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("plan.service"),

		genID: p.GenID,
		clock: p.Clock,

		planRepo:   p.PlanRepo,
		dogRepo:    p.DogRepo,
		recipeRepo: p.RecipeRepo,

		pricing: p.Pricing,
	}
}

// Compose implements domain.Service. It recomputes portions and pricing for
// the selected recipes, then replaces the plan's line items and snapshot in
// a single transaction. Reads that can hit the network happen before the
// transaction opens.
func (s *Service) Compose(ctx context.Context, req plandomain.ComposeRequest) (*plandomain.PlanDetail, error) {
	if len(req.RecipeIDs) == 0 {
		return nil, plandomain.ErrNoRecipes
	}

	plan, err := s.planRepo.FindByID(ctx, s.db, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}

	dog, err := s.dogRepo.FindByID(ctx, s.db, plan.DogID)
	if err != nil {
		return nil, err
	}
	if dog == nil {
		return nil, plandomain.ErrDogNotFound
	}

	recipes, err := s.resolveRecipes(ctx, req.RecipeIDs)
	if err != nil {
		return nil, err
	}

	snapshot := plan.Snapshot.Data()
	total, err := s.pricing.ResolveTotal(ctx, plan.TotalCents, snapshot.TotalCents, plan.ProcessorSubscriptionID)
	if err != nil {
		return nil, err
	}
	unitPrice := pricing.UnitPrice(total, len(recipes))

	energies := make([]nutrition.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		energies = append(energies, nutrition.Recipe{KcalPer100g: recipe.KcalPer100g})
	}
	portions, err := nutrition.CyclePortions(dog.Biometrics(), plan.PlanType, plan.TopperPercent, energies)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	items := make([]plandomain.PlanItem, 0, len(recipes))
	snapshotRecipes := make([]plandomain.SnapshotRecipe, 0, len(recipes))
	for i, recipe := range recipes {
		items = append(items, plandomain.PlanItem{
			ID:             s.genID.Generate(),
			PlanID:         plan.ID,
			RecipeID:       recipe.ID,
			Quantity:       1,
			PortionGrams:   portions[i].CycleGrams,
			UnitPriceCents: unitPrice,
			IntervalDays:   nutrition.CycleDays,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		snapshotRecipes = append(snapshotRecipes, plandomain.SnapshotRecipe{
			RecipeID:       recipe.ID,
			Name:           recipe.Name,
			Quantity:       1,
			PortionGrams:   portions[i].CycleGrams,
			UnitPriceCents: unitPrice,
		})
	}

	plan.TotalCents = total
	plan.Snapshot = datatypes.NewJSONType(plandomain.Snapshot{
		Recipes:     snapshotRecipes,
		TotalCents:  total,
		CadenceDays: nutrition.CycleDays,
		ComposedAt:  now,
	})
	plan.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.planRepo.FindByIDForUpdate(ctx, tx, plan.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return plandomain.ErrNotFound
		}
		if err := s.planRepo.ReplaceItems(ctx, tx, plan.ID, items); err != nil {
			return err
		}
		return s.planRepo.UpdateComposed(ctx, tx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("plan composed",
		zap.Int64("plan_id", int64(plan.ID)),
		zap.Int("recipes", len(items)),
		zap.Int64("total_cents", total),
	)
	return &plandomain.PlanDetail{Plan: *plan, Items: items}, nil
}

// Get implements domain.Service.
func (s *Service) Get(ctx context.Context, id snowflake.ID) (*plandomain.PlanDetail, error) {
	plan, err := s.planRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}

	items, err := s.planRepo.ListItems(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &plandomain.PlanDetail{Plan: *plan, Items: items}, nil
}

// resolveRecipes fetches the selected recipes and reorders them to match the
// request. Duplicate selections produce duplicate line items.
func (s *Service) resolveRecipes(ctx context.Context, ids []snowflake.ID) ([]recipedomain.Recipe, error) {
	found, err := s.recipeRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[snowflake.ID]recipedomain.Recipe, len(found))
	for _, recipe := range found {
		byID[recipe.ID] = recipe
	}

	ordered := make([]recipedomain.Recipe, 0, len(ids))
	for _, id := range ids {
		recipe, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", plandomain.ErrRecipeNotFound, id)
		}
		ordered = append(ordered, recipe)
	}
	return ordered, nil
}
