package parent

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/handler"
	"github.com/medikids/clinic-api/internal/model"
	parentService "github.com/medikids/clinic-api/internal/service/parent"
	"github.com/medikids/clinic-api/pkg/dateparse"
)

type Handler struct {
	service parentService.ParentServicer
}

func NewHandler(service parentService.ParentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	parents := r.Group("/parents")
	{
		parents.POST("", h.CreateParent)
		parents.GET("/search", h.SearchParents)
		parents.GET("/:id", h.GetParent)
		parents.PUT("/:id", h.UpdateParent)
		parents.POST("/:id/soft-delete", h.SoftDeleteParent)
		parents.POST("/:id/restore", h.RestoreParent)
	}
}

type createParentRequest struct {
	Phone        string  `json:"phone" binding:"required,phone"`
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Note         *string `json:"note"`
	LastVisit    string  `json:"last_visit"`
	ExpectedDate string  `json:"expected_date"`
}

type updateParentRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Note         *string `json:"note"`
	LastVisit    *string `json:"last_visit"`
	ExpectedDate *string `json:"expected_date"`
}

func (h *Handler) CreateParent(c *gin.Context) {
	var req createParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	lastVisit, err := dateparse.Flexible(req.LastVisit)
	if err != nil {
		handler.Error(c, err)
		return
	}
	expectedDate, err := dateparse.Flexible(req.ExpectedDate)
	if err != nil {
		handler.Error(c, err)
		return
	}

	parent, err := h.service.Create(c.Request.Context(), req.Phone, model.ParentFields{
		Name:         req.Name,
		Address:      req.Address,
		Note:         req.Note,
		LastVisit:    lastVisit,
		ExpectedDate: expectedDate,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(parent))
}

func (h *Handler) GetParent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	parent, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(parent))
}

func (h *Handler) UpdateParent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patch := &model.UpdateParentPatch{
		Name:    req.Name,
		Address: req.Address,
		Note:    req.Note,
	}
	if req.LastVisit != nil {
		t, err := dateparse.Flexible(*req.LastVisit)
		if err != nil {
			handler.Error(c, err)
			return
		}
		patch.LastVisit = t
	}
	if req.ExpectedDate != nil {
		t, err := dateparse.Flexible(*req.ExpectedDate)
		if err != nil {
			handler.Error(c, err)
			return
		}
		patch.ExpectedDate = t
	}

	parent, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(parent))
}

func (h *Handler) SearchParents(c *gin.Context) {
	var filter model.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	parents, err := h.service.Search(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(parents))
}

func (h *Handler) SoftDeleteParent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"ok": true}))
}

func (h *Handler) RestoreParent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	parent, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(parent))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid parent ID"))
		return 0, false
	}
	return id, true
}
