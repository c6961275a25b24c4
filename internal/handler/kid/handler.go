package kid

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/handler"
	"github.com/medikids/clinic-api/internal/model"
	kidService "github.com/medikids/clinic-api/internal/service/kid"
	"github.com/medikids/clinic-api/pkg/dateparse"
)

type Handler struct {
	service kidService.KidServicer
}

func NewHandler(service kidService.KidServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	kids := r.Group("/kids")
	{
		kids.POST("", h.CreateKid)
		kids.GET("/:id", h.GetKid)
		kids.PUT("/:id", h.UpdateKid)
		kids.POST("/:id/soft-delete", h.SoftDeleteKid)
		kids.POST("/:id/restore", h.RestoreKid)
	}
}

type createKidRequest struct {
	Name     string  `json:"name" binding:"required"`
	Birthday string  `json:"birthday"`
	ParentID *int64  `json:"parent_id"`
	Note     *string `json:"note"`
}

type updateKidRequest struct {
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
	ParentID *int64  `json:"parent_id"`
	Note     *string `json:"note"`
}

func (h *Handler) CreateKid(c *gin.Context) {
	var req createKidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	birthday, err := dateparse.Flexible(req.Birthday)
	if err != nil {
		handler.Error(c, err)
		return
	}

	kid, err := h.service.Create(c.Request.Context(),
		model.KidKey{Name: req.Name, Birthday: birthday},
		model.KidFields{ParentID: req.ParentID, Note: req.Note})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(kid))
}

func (h *Handler) GetKid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	kid, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(kid))
}

func (h *Handler) UpdateKid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateKidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patch := &model.UpdateKidPatch{
		Name:     req.Name,
		ParentID: req.ParentID,
		Note:     req.Note,
	}
	if req.Birthday != nil {
		t, err := dateparse.Flexible(*req.Birthday)
		if err != nil {
			handler.Error(c, err)
			return
		}
		patch.Birthday = t
	}

	kid, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(kid))
}

func (h *Handler) SoftDeleteKid(c *gin.Context) {
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

func (h *Handler) RestoreKid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	kid, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(kid))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid kid ID"))
		return 0, false
	}
	return id, true
}
