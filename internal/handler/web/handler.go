package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/model"
	drugService "github.com/medikids/clinic-api/internal/service/drug"
	kidService "github.com/medikids/clinic-api/internal/service/kid"
	"github.com/medikids/clinic-api/pkg/dateparse"
	"github.com/medikids/clinic-api/pkg/errors"
)

// Handler serves the server-rendered HTML pages. Form posts follow the
// POST-redirect-GET pattern with a 303 back to the listing page.
type Handler struct {
	drugs drugService.DrugServicer
	kids  kidService.KidServicer
}

func NewHandler(drugs drugService.DrugServicer, kids kidService.KidServicer) *Handler {
	return &Handler{drugs: drugs, kids: kids}
}

func (h *Handler) RegisterPages(r *gin.Engine) {
	r.GET("/", h.HomePage)
	r.GET("/drugs_list", h.DrugsPage)
	r.POST("/drugs_list", h.AddDrugForm)
	r.GET("/drugs_purchase", h.PurchasesPage)
	r.POST("/drugs_purchase", h.AddPurchaseForm)
	r.GET("/kids/edit/:id", h.EditKidPage)
	r.POST("/kids/edit/:id", h.EditKidForm)
}

func (h *Handler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

func (h *Handler) DrugsPage(c *gin.Context) {
	drugs, err := h.drugs.List(c.Request.Context(), &model.SearchFilter{})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "drugs_list.html", gin.H{"drugs": drugs})
}

type drugForm struct {
	SKU           string  `form:"drug_sku"`
	Name          string  `form:"drug_name" binding:"required"`
	SellPrice     float64 `form:"drug_sell_price"`
	PurchasePrice float64 `form:"drug_purchase_price"`
	Stock         int     `form:"drug_stock"`
}

func (h *Handler) AddDrugForm(c *gin.Context) {
	var form drugForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": err.Error()})
		return
	}

	_, err := h.drugs.Create(c.Request.Context(), form.Name, model.DrugFields{
		SKU:           form.SKU,
		SellPrice:     form.SellPrice,
		PurchasePrice: form.PurchasePrice,
		Stock:         form.Stock,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsAlreadyExists(err) {
			status = http.StatusConflict
		}
		c.HTML(status, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/drugs_list")
}

func (h *Handler) PurchasesPage(c *gin.Context) {
	drugs, err := h.drugs.List(c.Request.Context(), &model.SearchFilter{})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}
	purchases, err := h.drugs.ListPurchases(c.Request.Context(), 0)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "drugs_purchase.html", gin.H{
		"drugs":     drugs,
		"purchases": purchases,
	})
}

type purchaseForm struct {
	DrugID   int64 `form:"drug_id" binding:"required"`
	Quantity int   `form:"drug_purchase_quantities" binding:"required"`
	Subcost  int64 `form:"drug_purchase_subcost"`
}

func (h *Handler) AddPurchaseForm(c *gin.Context) {
	var form purchaseForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": err.Error()})
		return
	}

	_, err := h.drugs.CreatePurchase(c.Request.Context(), &model.Purchase{
		DrugID:   form.DrugID,
		Quantity: form.Quantity,
		Subcost:  form.Subcost,
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/drugs_purchase")
}

func (h *Handler) EditKidPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	kid, err := h.kids.Get(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "edit_kid.html", gin.H{"kid": kid})
}

type kidForm struct {
	Name     string `form:"name" binding:"required"`
	Birthday string `form:"birthday"`
	ParentID *int64 `form:"parent_id"`
	Note     string `form:"note"`
}

func (h *Handler) EditKidForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	var form kidForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": err.Error()})
		return
	}

	birthday, err := dateparse.Flexible(form.Birthday)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": err.Error()})
		return
	}

	patch := &model.UpdateKidPatch{
		Name:     &form.Name,
		Birthday: birthday,
		ParentID: form.ParentID,
	}
	if form.Note != "" {
		patch.Note = &form.Note
	}

	if _, err := h.kids.Update(c.Request.Context(), id, patch); err != nil {
		if errors.IsNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}
