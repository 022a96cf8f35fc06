package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) getOrderTracking(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	timeline, err := s.ordersvc.GetTimeline(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

type addTrackingEventRequest struct {
	EventType   string                 `json:"event_type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func (s *Server) addOrderTracking(c *gin.Context) {
	orderID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req addTrackingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	event, err := s.ordersvc.AddTrackingEvent(c.Request.Context(), orderdomain.AddTrackingEventRequest{
		OrderID:     orderID,
		EventType:   req.EventType,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type generateOrdersRequest struct {
	TargetDate string `json:"target_date"`
}

// generateOrders triggers one generator run. Intended for operators; the
// scheduled loop calls the same code path.
func (s *Server) generateOrders(c *gin.Context) {
	var req generateOrdersRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	var targetDate time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		targetDate = parsed
	}

	result, err := s.gen.Run(c.Request.Context(), targetDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
