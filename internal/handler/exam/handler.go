package exam

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/handler"
	"github.com/medikids/clinic-api/internal/model"
	examService "github.com/medikids/clinic-api/internal/service/exam"
	"github.com/medikids/clinic-api/pkg/dateparse"
)

type Handler struct {
	service examService.ExamServicer
}

func NewHandler(service examService.ExamServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	exams := r.Group("/exams")
	{
		exams.POST("", h.CreateExam)
		exams.GET("", h.ListExams)
		exams.GET("/:id", h.GetExam)
		exams.PUT("/:id", h.UpdateExam)
		exams.POST("/:id/soft-delete", h.SoftDeleteExam)
		exams.POST("/:id/restore", h.RestoreExam)
		exams.POST("/:id/images", h.AddImage)
		exams.GET("/:id/images", h.ListImages)
	}
}

type createExamRequest struct {
	ParentID   int64                  `json:"parent_id" binding:"required"`
	KidID      *int64                 `json:"kid_id"`
	ExamTime   string                 `json:"exam_time"`
	Weight     *float64               `json:"weight"`
	Height     *float64               `json:"height"`
	History    *string                `json:"history"`
	Drugs      model.PrescriptionList `json:"drugs"`
	ReexamDate string                 `json:"reexam_date"`
	Paid       bool                   `json:"paid"`
	Note       *string                `json:"note"`
}

type updateExamRequest struct {
	KidID      *int64                 `json:"kid_id"`
	ExamTime   *string                `json:"exam_time"`
	Weight     *float64               `json:"weight"`
	Height     *float64               `json:"height"`
	History    *string                `json:"history"`
	Drugs      model.PrescriptionList `json:"drugs"`
	ReexamDate *string                `json:"reexam_date"`
	Paid       *bool                  `json:"paid"`
	Note       *string                `json:"note"`
}

type addImageRequest struct {
	Filename    string  `json:"filename" binding:"required"`
	StoragePath string  `json:"storage_path" binding:"required"`
	URL         *string `json:"url"`
	Mimetype    *string `json:"mimetype"`
	Size        *int64  `json:"size"`
	Position    *int    `json:"position"`
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req createExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fields := model.ExamFields{
		KidID:   req.KidID,
		Weight:  req.Weight,
		Height:  req.Height,
		History: req.History,
		Drugs:   req.Drugs,
		Paid:    req.Paid,
		Note:    req.Note,
	}
	examTime, err := dateparse.Flexible(req.ExamTime)
	if err != nil {
		handler.Error(c, err)
		return
	}
	if examTime != nil {
		fields.ExamTime = *examTime
	} else {
		fields.ExamTime = time.Now()
	}
	reexamDate, err := dateparse.Flexible(req.ReexamDate)
	if err != nil {
		handler.Error(c, err)
		return
	}
	fields.ReexamDate = reexamDate

	exam, err := h.service.Create(c.Request.Context(), req.ParentID, fields)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(exam))
}

func (h *Handler) GetExam(c *gin.Context) {
	exam, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(exam))
}

func (h *Handler) UpdateExam(c *gin.Context) {
	var req updateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patch := &model.UpdateExamPatch{
		KidID:   req.KidID,
		Weight:  req.Weight,
		Height:  req.Height,
		History: req.History,
		Drugs:   req.Drugs,
		Paid:    req.Paid,
		Note:    req.Note,
	}
	if req.ExamTime != nil {
		t, err := dateparse.Flexible(*req.ExamTime)
		if err != nil {
			handler.Error(c, err)
			return
		}
		patch.ExamTime = t
	}
	if req.ReexamDate != nil {
		t, err := dateparse.Flexible(*req.ReexamDate)
		if err != nil {
			handler.Error(c, err)
			return
		}
		patch.ReexamDate = t
	}

	exam, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(exam))
}

func (h *Handler) SoftDeleteExam(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"ok": true}))
}

func (h *Handler) RestoreExam(c *gin.Context) {
	exam, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(exam))
}

func (h *Handler) ListExams(c *gin.Context) {
	parentID, err := strconv.ParseInt(c.Query("parent_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid parent_id"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	exams, err := h.service.ListByParent(c.Request.Context(), parentID, limit)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func (h *Handler) AddImage(c *gin.Context) {
	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	image, err := h.service.AddImage(c.Request.Context(), c.Param("id"), &model.ExamImage{
		Filename:    req.Filename,
		StoragePath: req.StoragePath,
		URL:         req.URL,
		Mimetype:    req.Mimetype,
		Size:        req.Size,
		Position:    req.Position,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(image))
}

func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.service.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(images))
}
