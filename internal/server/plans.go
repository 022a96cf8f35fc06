package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) getPlan(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	detail, err := s.plansvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type composePlanRequest struct {
	RecipeIDs []string `json:"recipe_ids"`
}

func (s *Server) composePlan(c *gin.Context) {
	planID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req composePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	recipeIDs := make([]snowflake.ID, 0, len(req.RecipeIDs))
	for _, raw := range req.RecipeIDs {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		recipeIDs = append(recipeIDs, id)
	}

	detail, err := s.plansvc.Compose(c.Request.Context(), plandomain.ComposeRequest{
		PlanID:    planID,
		RecipeIDs: recipeIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
