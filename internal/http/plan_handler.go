package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/middleware"
	"github.com/guttosm/meal-planner-service/internal/service"
)

// PlanHandler serves planning requests.
type PlanHandler struct {
	planner service.MealPlanner
	limits  dto.PlanLimits
}

// NewPlanHandler creates a PlanHandler that rejects preferences outside limits.
func NewPlanHandler(planner service.MealPlanner, limits dto.PlanLimits) *PlanHandler {
	return &PlanHandler{planner: planner, limits: limits}
}

// Plan handles POST /api/plan requests.
//
// @Summary      Plan meals
// @Description  Chooses the requested number of distinct recipes and the packages to buy, maximizing the nutrition score within the budget. Without a catalog in the body the active stored catalog is used. Infeasible and timed-out searches return 200 with the matching status. Supports idempotency via Idempotency-Key header.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PlanRequest true "Catalog and preferences"
// @Success      200 {object} dto.SuccessResponse{data=dto.PlanResponse} "Plan computed"
// @Failure      400 {object} dto.ErrorResponse "Invalid preferences or catalog"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "No catalog in the body and none stored"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal error or plan verification failure"
// @Failure      503 {object} dto.ErrorResponse "Catalog storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/plan [post]
func (h *PlanHandler) Plan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.PlanRequest](c)
	if err != nil {
		builder.FailBinding(err)
		return
	}
	if err := req.Validate(h.limits); err != nil {
		builder.Fail(err)
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), service.PlanRequest{
		RequestID:   middleware.GetRequestID(c),
		Catalog:     req.Catalog,
		Preferences: req.Preferences,
	})
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(dto.PlanResponse{
		Solution:       result.Solution,
		CatalogVersion: result.CatalogVersion,
		Fingerprint:    result.Fingerprint,
		Cached:         result.Cached,
	})
}
