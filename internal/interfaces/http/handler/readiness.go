package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
)

// ReadinessHandler serves the marketing-readiness checklist for the
// authenticated tenant
type ReadinessHandler struct {
	BaseHandler
	service *checklistapp.Service
}

// NewReadinessHandler creates a new ReadinessHandler
func NewReadinessHandler(service *checklistapp.Service) *ReadinessHandler {
	return &ReadinessHandler{service: service}
}

// CategoryQuery filters the catalog listing
// @Description Query parameters for listing categories
type CategoryQuery struct {
	Type       string `form:"type" binding:"omitempty,oneof=foundational ongoing"`
	WithStatus bool   `form:"with_status"`
}

// ProgressQuery filters the progress listing
type ProgressQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=foundational ongoing"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ListCategories returns the ordered catalog. With with_status=true every
// item carries the tenant's status and every category its progress.
//
// @Summary      List checklist categories
// @Description  Ordered catalog of categories and items. with_status=true adds the tenant's item statuses and category progress.
// @Tags         readiness
// @Produce      json
// @Param        type        query string false "Category type" Enums(foundational, ongoing)
// @Param        with_status query bool   false "Include tenant status and progress"
// @Success      200 {object} dto.Response{data=[]checklistapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/categories [get]
func (h *ReadinessHandler) ListCategories(c *gin.Context) {
	var q CategoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	var tenant *uuid.UUID
	if q.WithStatus {
		id, ok := h.tenantID(c)
		if !ok {
			return
		}
		tenant = &id
	}

	categories, err := h.service.ListCategoriesWithItems(c.Request.Context(), optional(q.Type), tenant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListCategoryItems returns one category's items in order
//
// @Summary      List category items
// @Tags         readiness
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response{data=[]checklistapp.ItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/categories/{id}/items [get]
func (h *ReadinessHandler) ListCategoryItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetItemStatus returns the tenant's status for one item
//
// @Summary      Get item status
// @Description  Items the tenant never touched report pending with no timestamp.
// @Tags         readiness
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=checklistapp.StatusResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/items/{id}/status [get]
func (h *ReadinessHandler) GetItemStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	status, err := h.service.GetStatus(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// SetItemStatus records the tenant's status and notes for one item
//
// @Summary      Set item status
// @Description  Full overwrite of status and notes. Any transition is allowed; writing the same value twice is a no-op for scoring.
// @Tags         readiness
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Item ID"
// @Param        request body checklistapp.SetStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=checklistapp.StatusResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/items/{id}/status [put]
func (h *ReadinessHandler) SetItemStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req checklistapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	status, err := h.service.SetStatus(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// ResetItemStatus puts the item back to pending
//
// @Summary      Reset item status
// @Tags         readiness
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=checklistapp.StatusResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/items/{id}/status [delete]
func (h *ReadinessHandler) ResetItemStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	status, err := h.service.ResetStatus(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// ListStatuses returns every status the tenant has recorded
//
// @Summary      List recorded statuses
// @Tags         readiness
// @Produce      json
// @Success      200 {object} dto.Response{data=[]checklistapp.StatusListEntry}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/statuses [get]
func (h *ReadinessHandler) ListStatuses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	entries, err := h.service.ListStatuses(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// GetProgress returns per-type progress
//
// @Summary      Get progress by category type
// @Tags         readiness
// @Produce      json
// @Param        type query string false "Category type" Enums(foundational, ongoing)
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/progress [get]
func (h *ReadinessHandler) GetProgress(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q ProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), tenantID, optional(q.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, progress)
}

// GetScore returns the overall health score
//
// @Summary      Get health score
// @Description  Overall 0-100 score weighted 70% foundational and 30% ongoing. Critical items carry a 10% share of the foundational score.
// @Tags         readiness
// @Produce      json
// @Success      200 {object} dto.Response{data=checklistapp.ScoreResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/score [get]
func (h *ReadinessHandler) GetScore(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	score, err := h.service.GetScore(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, score)
}

// GetRevenue returns the weekly revenue estimate
//
// @Summary      Get revenue impact
// @Tags         readiness
// @Produce      json
// @Success      200 {object} dto.Response{data=object}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/revenue [get]
func (h *ReadinessHandler) GetRevenue(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	revenue, err := h.service.GetRevenueImpact(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenue)
}

// GetDashboard returns score, progress, revenue and next steps in one call
//
// @Summary      Get readiness dashboard
// @Tags         readiness
// @Produce      json
// @Success      200 {object} dto.Response{data=checklistapp.DashboardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /readiness/dashboard [get]
func (h *ReadinessHandler) GetDashboard(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	dashboard, err := h.service.GetDashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
