package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/handler"
	"github.com/medikids/clinic-api/internal/model"
	kidService "github.com/medikids/clinic-api/internal/service/kid"
	parentService "github.com/medikids/clinic-api/internal/service/parent"
)

// dashboardLimit caps the records shown on the landing dashboard.
const dashboardLimit = 100

type Handler struct {
	parents parentService.ParentServicer
	kids    kidService.KidServicer
}

func NewHandler(parents parentService.ParentServicer, kids kidService.KidServicer) *Handler {
	return &Handler{parents: parents, kids: kids}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/parents", h.DashboardParents)
		dashboard.GET("/kids", h.DashboardKids)
	}
}

// RegisterPages mounts the server-rendered dashboard page.
func (h *Handler) RegisterPages(r *gin.Engine) {
	r.GET("/dashboard", h.DashboardPage)
}

func (h *Handler) DashboardParents(c *gin.Context) {
	parents, err := h.parents.Search(c.Request.Context(), &model.SearchFilter{Limit: dashboardLimit})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(parents))
}

func (h *Handler) DashboardKids(c *gin.Context) {
	kids, err := h.kids.ListWithParent(c.Request.Context(), &model.SearchFilter{Limit: dashboardLimit})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(kids))
}

func (h *Handler) DashboardPage(c *gin.Context) {
	parents, err := h.parents.Search(c.Request.Context(), &model.SearchFilter{Limit: dashboardLimit})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}
	kids, err := h.kids.ListWithParent(c.Request.Context(), &model.SearchFilter{Limit: dashboardLimit})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"parents": parents,
		"kids":    kids,
	})
}
