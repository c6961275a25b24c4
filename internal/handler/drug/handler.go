package drug

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/internal/handler"
	"github.com/medikids/clinic-api/internal/model"
	drugService "github.com/medikids/clinic-api/internal/service/drug"
	"github.com/medikids/clinic-api/pkg/dateparse"
)

type Handler struct {
	service drugService.DrugServicer
}

func NewHandler(service drugService.DrugServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	drugs := r.Group("/drugs")
	{
		drugs.POST("", h.CreateDrug)
		drugs.GET("", h.ListDrugs)
		drugs.POST("/import", h.ImportDrugs)
		drugs.GET("/:id", h.GetDrug)
		drugs.PUT("/:id", h.UpdateDrug)
		drugs.POST("/:id/soft-delete", h.SoftDeleteDrug)
		drugs.POST("/:id/restore", h.RestoreDrug)
	}

	purchases := r.Group("/purchases")
	{
		purchases.POST("", h.CreatePurchase)
		purchases.GET("", h.ListPurchases)
	}
}

type createDrugRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku"`
	SellPrice     float64 `json:"sell_price" binding:"gte=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
	Stock         int     `json:"stock" binding:"gte=0"`
}

type updateDrugRequest struct {
	SKU           *string  `json:"sku"`
	SellPrice     *float64 `json:"sell_price"`
	PurchasePrice *float64 `json:"purchase_price"`
	Stock         *int     `json:"stock"`
}

type createPurchaseRequest struct {
	DrugID    int64   `json:"drug_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Subcost   int64   `json:"subcost" binding:"gte=0"`
	OrderDate string  `json:"order_date"`
	Paid      bool    `json:"paid"`
	PaidDate  string  `json:"paid_date"`
	Note      *string `json:"note"`
}

func (h *Handler) CreateDrug(c *gin.Context) {
	var req createDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	drug, err := h.service.Create(c.Request.Context(), req.Name, model.DrugFields{
		SKU:           req.SKU,
		SellPrice:     req.SellPrice,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(drug))
}

func (h *Handler) GetDrug(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	drug, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(drug))
}

func (h *Handler) UpdateDrug(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	drug, err := h.service.Update(c.Request.Context(), id, &model.UpdateDrugPatch{
		SKU:           req.SKU,
		SellPrice:     req.SellPrice,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
	})
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(drug))
}

func (h *Handler) ListDrugs(c *gin.Context) {
	var filter model.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	drugs, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(drugs))
}

func (h *Handler) ImportDrugs(c *gin.Context) {
	var items []model.DrugImport
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.Import(c.Request.Context(), items)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) SoftDeleteDrug(c *gin.Context) {
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

func (h *Handler) RestoreDrug(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	drug, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(drug))
}

func (h *Handler) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	purchase := &model.Purchase{
		DrugID:   req.DrugID,
		Quantity: req.Quantity,
		Subcost:  req.Subcost,
		Paid:     req.Paid,
		Note:     req.Note,
	}
	if orderDate, err := dateparse.Flexible(req.OrderDate); err != nil {
		handler.Error(c, err)
		return
	} else if orderDate != nil {
		purchase.OrderDate = *orderDate
	}
	paidDate, err := dateparse.Flexible(req.PaidDate)
	if err != nil {
		handler.Error(c, err)
		return
	}
	purchase.PaidDate = paidDate

	created, err := h.service.CreatePurchase(c.Request.Context(), purchase)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListPurchases(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	purchases, err := h.service.ListPurchases(c.Request.Context(), limit)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(purchases))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid drug ID"))
		return 0, false
	}
	return id, true
}
