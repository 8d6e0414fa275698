package handler

import (
	"github.com/lichwu/iapush/internal/pkg/response"
	"github.com/lichwu/iapush/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchases *service.PurchaseService
}

func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

type QueryPurchaseRequest struct {
	PackageName   string `json:"package_name" binding:"required"`
	ProductID     string `json:"product_id" binding:"required"`
	PurchaseToken string `json:"purchase_token" binding:"required"`
}

type AcknowledgePurchaseRequest struct {
	PackageName      string `json:"package_name" binding:"required"`
	ProductID        string `json:"product_id" binding:"required"`
	PurchaseToken    string `json:"purchase_token" binding:"required"`
	DeveloperPayload string `json:"developer_payload"`
}

// Query looks up one purchases.products resource.
// POST /api/v1/purchases/query
func (h *PurchaseHandler) Query(c *gin.Context) {
	var req QueryPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.purchases.GetOrderInfo(c.Request.Context(), req.PackageName, req.ProductID, req.PurchaseToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeAPIResult(c, result)
}

// Acknowledge confirms a settled purchase.
// POST /api/v1/purchases/acknowledge
func (h *PurchaseHandler) Acknowledge(c *gin.Context) {
	var req AcknowledgePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.purchases.AcknowledgeOrder(c.Request.Context(), req.PackageName, req.ProductID, req.PurchaseToken, req.DeveloperPayload)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeAPIResult(c, result)
}
