package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"projectdesk/internal/clock"
	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/export"
	"projectdesk/internal/finance"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/schedule"
	"projectdesk/internal/services"
)

// PaymentHandler handles payment-related requests
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
	clock          clock.Clock
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer, clk clock.Clock) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		auditService:   auditService,
		clock:          clk,
	}
}

// PaymentResponse is a payment with its signed financial total.
type PaymentResponse struct {
	models.Payment
	Total decimal.Decimal `json:"total"`
}

func paymentView(p *models.Payment) PaymentResponse {
	return PaymentResponse{Payment: *p, Total: finance.ComputeTotal(finance.FromPayment(p))}
}

func paymentPage(p *pagination.PageResponse[models.Payment]) *pagination.PageResponse[PaymentResponse] {
	data := make([]PaymentResponse, 0, len(p.Data))
	for i := range p.Data {
		data = append(data, paymentView(&p.Data[i]))
	}
	return &pagination.PageResponse[PaymentResponse]{
		Data:       data,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// CreatePaymentRequest represents the request payload for recording a payment
type CreatePaymentRequest struct {
	ProjectID   *string              `json:"project_id" binding:"omitempty,uuid"`
	Description string               `json:"description" binding:"max=255"`
	Amount      decimal.Decimal      `json:"amount"`
	HostingCost decimal.Decimal      `json:"hosting_cost"`
	DomainCost  decimal.Decimal      `json:"domain_cost"`
	OtherCost   decimal.Decimal      `json:"other_cost"`
	Type        models.EntryType     `json:"type" binding:"omitempty,entry_type"`
	Status      models.PaymentStatus `json:"status" binding:"omitempty,payment_status"`
	PaymentDate string               `json:"payment_date" binding:"required,iso_date"`
	Notes       string               `json:"notes"`
}

// UpdatePaymentStatusRequest represents the request payload for a status change
type UpdatePaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required,payment_status"`
}

// ReasonRequest carries the reason for a cancellation or deletion
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// PaymentQuery holds the optional list filters
type PaymentQuery struct {
	FromDate  string `form:"from_date" binding:"omitempty,iso_date"`
	ToDate    string `form:"to_date" binding:"omitempty,iso_date"`
	Status    string `form:"status" binding:"omitempty,payment_status"`
	Type      string `form:"type" binding:"omitempty,entry_type"`
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
}

func (q PaymentQuery) filter() (services.PaymentFilter, error) {
	var f services.PaymentFilter
	if q.FromDate != "" {
		d, err := schedule.ParseDate(q.FromDate)
		if err != nil {
			return f, err
		}
		f.FromDate = &d
	}
	if q.ToDate != "" {
		d, err := schedule.ParseDate(q.ToDate)
		if err != nil {
			return f, err
		}
		f.ToDate = &d
	}
	if q.Status != "" {
		s := models.PaymentStatus(q.Status)
		f.Status = &s
	}
	if q.Type != "" {
		t := models.EntryType(q.Type)
		f.Type = &t
	}
	if q.ProjectID != "" {
		f.ProjectID = &q.ProjectID
	}
	return f, nil
}

func bindPaymentFilter(c *gin.Context) (services.PaymentFilter, error) {
	var q PaymentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return services.PaymentFilter{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return q.filter()
}

// CreatePayment handles recording a payment
// @Summary     Record a payment
// @Description Record an income or expense payment, optionally attached to a project
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePaymentRequest true "Payment details"
// @Success     201 {object} PaymentResponse "Payment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	paymentDate, err := schedule.ParseDate(req.PaymentDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), userID, services.PaymentInput{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Amount:      req.Amount,
		HostingCost: req.HostingCost,
		DomainCost:  req.DomainCost,
		OtherCost:   req.OtherCost,
		Type:        req.Type,
		Status:      req.Status,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CREATE_PAYMENT", models.AuditResourcePayment, payment.ID, c.ClientIP(),
		map[string]interface{}{"amount": payment.Amount.String(), "type": payment.EntryType()})

	c.JSON(http.StatusCreated, gin.H{"payment": paymentView(payment)})
}

// ListPayments handles listing payments
// @Summary     List payments
// @Description Paginated payments, newest first, excluding soft-deleted ones
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       from_date  query string false "Earliest payment date (YYYY-MM-DD)"
// @Param       to_date    query string false "Latest payment date (YYYY-MM-DD)"
// @Param       status     query string false "pending, paid, overdue or cancelled"
// @Param       type       query string false "income or expense"
// @Param       project_id query string false "Project ID"
// @Success     200 {object} pagination.PageResponse[PaymentResponse] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	filter, err := bindPaymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, paymentPage(result))
}

// ListDeletedPayments handles the soft-deleted payments view
// @Summary     List deleted payments
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[PaymentResponse] "Paginated deleted payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/deleted [get]
func (h *PaymentHandler) ListDeletedPayments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.ListDeletedPayments(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, paymentPage(result))
}

// GetSummary handles the income/expense aggregate
// @Summary     Payment summary
// @Description Income, expense and net totals over the filtered payments
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       from_date  query string false "Earliest payment date (YYYY-MM-DD)"
// @Param       to_date    query string false "Latest payment date (YYYY-MM-DD)"
// @Param       project_id query string false "Project ID"
// @Success     200 {object} finance.Summary "Totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/summary [get]
func (h *PaymentHandler) GetSummary(c *gin.Context) {
	filter, err := bindPaymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ExportPayments streams the filtered payments as XLSX
// @Summary     Export payments
// @Tags        payments
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       from_date  query string false "Earliest payment date (YYYY-MM-DD)"
// @Param       to_date    query string false "Latest payment date (YYYY-MM-DD)"
// @Success     200 {file} file "XLSX workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/export [get]
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	filter, err := bindPaymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payments, err := h.paymentService.ListAllPayments(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Payments(&buf, payments); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", schedule.FormatISO(h.clock.Now()))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetPayment handles retrieving a single payment
// @Summary     Get payment by ID
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} PaymentResponse "Payment details"
// @Failure     400 {object} ErrorResponse "Invalid payment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": paymentView(payment)})
}

// UpdatePaymentStatus handles a settlement status change
// @Summary     Update payment status
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Payment ID"
// @Param       request body UpdatePaymentStatusRequest true "New status"
// @Success     200 {object} PaymentResponse "Updated payment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id}/status [put]
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.paymentService.UpdatePaymentStatus(c.Request.Context(), paymentID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "UPDATE_PAYMENT_STATUS", models.AuditResourcePayment, payment.ID, c.ClientIP(),
		map[string]interface{}{"status": payment.Status})

	c.JSON(http.StatusOK, gin.H{"payment": paymentView(payment)})
}

// CancelPayment handles cancelling a payment
// @Summary     Cancel payment
// @Description Sets the status to cancelled and records the reason in the notes
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Payment ID"
// @Param       request body ReasonRequest true "Cancellation reason"
// @Success     200 {object} PaymentResponse "Cancelled payment"
// @Failure     400 {object} ErrorResponse "Missing reason"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id}/cancel [post]
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CANCEL_PAYMENT", models.AuditResourcePayment, payment.ID, c.ClientIP(),
		map[string]interface{}{"reason": req.Reason})

	c.JSON(http.StatusOK, gin.H{"payment": paymentView(payment)})
}

// DeletePayment handles soft-deleting a payment
// @Summary     Delete payment
// @Description Soft-deletes the payment; it can be restored from the deleted view
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true  "Payment ID"
// @Param       request body ReasonRequest false "Deletion reason"
// @Success     200 {object} map[string]string "Payment deleted"
// @Failure     400 {object} ErrorResponse "Invalid payment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The body is optional for DELETE.
	var req ReasonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	if err := h.paymentService.SoftDeletePayment(c.Request.Context(), userID, paymentID, req.Reason); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "DELETE_PAYMENT", models.AuditResourcePayment, paymentID, c.ClientIP(),
		map[string]interface{}{"reason": req.Reason, "deleted_at": h.clock.Now().Format(time.RFC3339)})

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// RestorePayment handles undoing a soft delete
// @Summary     Restore deleted payment
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} PaymentResponse "Restored payment"
// @Failure     400 {object} ErrorResponse "Invalid payment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment is not deleted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id}/restore [post]
func (h *PaymentHandler) RestorePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.RestorePayment(c.Request.Context(), paymentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "RESTORE_PAYMENT", models.AuditResourcePayment, payment.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"payment": paymentView(payment)})
}

// PurgePayment handles permanently deleting a soft-deleted payment
// @Summary     Permanently delete payment
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} map[string]string "Payment purged"
// @Failure     400 {object} ErrorResponse "Invalid payment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment must be deleted first"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id}/purge [delete]
func (h *PaymentHandler) PurgePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentService.PurgePayment(c.Request.Context(), paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "PURGE_PAYMENT", models.AuditResourcePayment, paymentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payment permanently deleted"})
}
