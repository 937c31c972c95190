package handler

import (
	"github.com/crm/backend/internal/application/reconciliation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler exposes billing ledger sync and linking endpoints
type ReconciliationHandler struct {
	BaseHandler
	syncService   *reconciliation.SyncService
	statusService *reconciliation.StatusService
	linkService   *reconciliation.LinkService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(
	syncService *reconciliation.SyncService,
	statusService *reconciliation.StatusService,
	linkService *reconciliation.LinkService,
) *ReconciliationHandler {
	return &ReconciliationHandler{
		syncService:   syncService,
		statusService: statusService,
		linkService:   linkService,
	}
}

// RegisterRoutes registers ledger reconciliation routes on the given group
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/sync", h.RunSync)
		ledger.GET("/sync/status", h.SyncStatus)
		ledger.GET("/connection", h.TestConnection)
		ledger.GET("/customers/unmatched", h.UnmatchedCustomers)
		ledger.POST("/customers/link", h.LinkCustomer)
		ledger.PATCH("/invoices/:id/link", h.LinkInvoice)
	}
}

// RunSync imports all invoices from the billing ledger. Only one run may
// be active at a time; concurrent attempts get a 409.
func (h *ReconciliationHandler) RunSync(c *gin.Context) {
	outcome, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outcome)
}

// SyncStatus returns the current invoice sync state
func (h *ReconciliationHandler) SyncStatus(c *gin.Context) {
	status, err := h.statusService.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// TestConnection verifies billing ledger credentials
func (h *ReconciliationHandler) TestConnection(c *gin.Context) {
	check, err := h.statusService.TestConnection(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, check)
}

// UnmatchedCustomers lists ledger customers whose invoices have no local match
func (h *ReconciliationHandler) UnmatchedCustomers(c *gin.Context) {
	unmatched, err := h.linkService.UnmatchedCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unmatched)
}

// LinkCustomerRequest represents a request to link a ledger customer manually
type LinkCustomerRequest struct {
	LedgerCustomerID int64  `json:"ledger_customer_id" binding:"required,gt=0"`
	CustomerID       string `json:"customer_id" binding:"required,uuid"`
}

// LinkCustomer links a ledger customer to a local customer and claims
// all of its mirrored invoices
func (h *ReconciliationHandler) LinkCustomer(c *gin.Context) {
	var req LinkCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	result, err := h.linkService.LinkCustomer(c.Request.Context(), req.LedgerCustomerID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// LinkInvoiceRequest represents a request to assign a single invoice
type LinkInvoiceRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
}

// LinkInvoice assigns a single mirrored invoice to a local customer
func (h *ReconciliationHandler) LinkInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req LinkInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	invoice, err := h.linkService.LinkInvoice(c.Request.Context(), invoiceID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
