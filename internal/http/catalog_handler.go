package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/middleware"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/guttosm/meal-planner-service/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CatalogHandler manages stored catalog versions.
type CatalogHandler struct {
	catalogs service.CatalogService
	planner  service.MealPlanner
}

// NewCatalogHandler creates a CatalogHandler. When planner is set its cache
// is cleared after a new catalog becomes active.
func NewCatalogHandler(catalogs service.CatalogService, planner service.MealPlanner) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, planner: planner}
}

// GetActive handles GET /api/catalogs/active.
//
// @Summary      Get the active catalog
// @Tags         Catalogs
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse}
// @Failure      404 {object} dto.ErrorResponse "No catalog stored"
// @Failure      503 {object} dto.ErrorResponse "Catalog storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalogs/active [get]
func (h *CatalogHandler) GetActive(c *gin.Context) {
	builder := NewResponseBuilder(c)

	doc, err := h.catalogs.GetActive(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	resp := toCatalogResponse(doc)
	resp.Catalog = &doc.Catalog
	builder.SuccessOK(resp)
}

// Store handles PUT /api/catalogs.
//
// @Summary      Store a catalog version
// @Description  Validates the catalog and stores it as the new active version. Compilation warnings (defaulted prices or proportions) are returned with the stored version.
// @Tags         Catalogs
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.StoreCatalogRequest true "Catalog document"
// @Success      201 {object} dto.SuccessResponse{data=dto.CatalogResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid catalog"
// @Failure      403 {object} dto.ErrorResponse "Missing catalogs:write scope"
// @Failure      409 {object} dto.ErrorResponse "Concurrent store"
// @Failure      503 {object} dto.ErrorResponse "Catalog storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalogs [put]
func (h *CatalogHandler) Store(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.StoreCatalogRequest](c)
	if err != nil {
		builder.FailBinding(err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Fail(err)
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = middleware.GetSubject(c)
	}

	doc, warnings, err := h.catalogs.Store(c.Request.Context(), req.Name, req.Catalog, createdBy)
	if err != nil {
		builder.Fail(err)
		return
	}
	if h.planner != nil {
		h.planner.InvalidateCache()
	}

	resp := toCatalogResponse(doc)
	resp.Warnings = warnings
	builder.SuccessCreated(resp)
}

// History handles GET /api/catalogs/history.
//
// @Summary      List catalog versions
// @Tags         Catalogs
// @Produce      json
// @Param        limit query int false "Maximum versions to return (1-100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.CatalogResponse}
// @Failure      503 {object} dto.ErrorResponse "Catalog storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalogs/history [get]
func (h *CatalogHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	docs, err := h.catalogs.History(c.Request.Context(), queryLimit(c))
	if err != nil {
		builder.Fail(err)
		return
	}

	out := make([]dto.CatalogResponse, len(docs))
	for i := range docs {
		out[i] = toCatalogResponse(&docs[i])
	}
	builder.SuccessOK(out)
}

func toCatalogResponse(doc *repository.CatalogDocument) dto.CatalogResponse {
	return dto.CatalogResponse{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Version:     doc.Version,
		Active:      doc.Active,
		RecipeCount: doc.Recipes,
		CreatedAt:   doc.CreatedAt,
		CreatedBy:   doc.CreatedBy,
	}
}

// queryLimit reads ?limit, clamped to [1, maxListLimit].
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
