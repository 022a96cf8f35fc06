// Package migration creates the schema on startup so local and self-hosted
// deployments work out of the box.
package migration

import (
	dogdomain "github.com/freshbowl/freshbowl/internal/dog/domain"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	recipedomain "github.com/freshbowl/freshbowl/internal/recipe/domain"
	subscriptiondomain "github.com/freshbowl/freshbowl/internal/subscription/domain"
	"gorm.io/gorm"
)

func Run(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&dogdomain.Dog{},
		&recipedomain.Recipe{},
		&plandomain.Plan{},
		&plandomain.PlanItem{},
		&subscriptiondomain.Subscription{},
		&orderdomain.Order{},
		&orderdomain.TrackingEvent{},
	)
}
