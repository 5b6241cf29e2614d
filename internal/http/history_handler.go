package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/service"
)

// HistoryHandler serves recorded plan runs.
type HistoryHandler struct {
	history service.PlanHistory
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(history service.PlanHistory) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ListRuns handles GET /api/plans.
//
// @Summary      List recent plan runs
// @Tags         Plans
// @Produce      json
// @Param        limit      query int    false "Maximum runs to return (1-100)" default(20)
// @Param        skip       query int    false "Runs to skip"
// @Param        status     query string false "Filter by status" Enums(optimal, best_effort, infeasible, timeout)
// @Param        request_id query string false "Filter by request id"
// @Param        since      query string false "Only runs created at or after this RFC 3339 time"
// @Success      200 {object} dto.SuccessResponse{data=dto.PlanRunsResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      503 {object} dto.ErrorResponse "History storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/plans [get]
func (h *HistoryHandler) ListRuns(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := runQuery(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	var (
		runs  []model.PlanRun
		total int64
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		runs, err = h.history.Recent(ctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.history.Count(ctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		builder.Fail(err)
		return
	}

	if runs == nil {
		runs = []model.PlanRun{}
	}
	builder.SuccessOK(dto.PlanRunsResponse{Runs: runs, Total: total})
}

func runQuery(c *gin.Context) (model.PlanRunQuery, error) {
	q := model.PlanRunQuery{
		RequestID: c.Query("request_id"),
		Status:    model.Status(c.Query("status")),
		Limit:     queryLimit(c),
	}

	switch q.Status {
	case "", model.StatusOptimal, model.StatusBestEffort, model.StatusInfeasible, model.StatusTimeout:
	default:
		return q, &dto.ValidationError{Field: "status", Message: "unknown status"}
	}

	if skip := c.Query("skip"); skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			return q, &dto.ValidationError{Field: "skip", Message: "must be a non-negative integer"}
		}
		q.Skip = n
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return q, &dto.ValidationError{Field: "since", Message: "must be an RFC 3339 time"}
		}
		q.Since = &t
	}
	return q, nil
}
