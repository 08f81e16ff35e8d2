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

// RecurringChargeHandler handles recurring charge requests.
type RecurringChargeHandler struct {
	chargeService       services.RecurringChargeServicer
	auditService        services.AuditServicer
	clock               clock.Clock
	reminderWindowDays  int
	dashboardWindowDays int
}

// NewRecurringChargeHandler creates a new RecurringChargeHandler. The window
// sizes are the defaults for the due-soon list and the dashboard count.
func NewRecurringChargeHandler(
	chargeService services.RecurringChargeServicer,
	auditService services.AuditServicer,
	clk clock.Clock,
	reminderWindowDays, dashboardWindowDays int,
) *RecurringChargeHandler {
	return &RecurringChargeHandler{
		chargeService:       chargeService,
		auditService:        auditService,
		clock:               clk,
		reminderWindowDays:  reminderWindowDays,
		dashboardWindowDays: dashboardWindowDays,
	}
}

// ChargeResponse is a charge with its derived values.
type ChargeResponse struct {
	models.RecurringCharge
	Total        decimal.Decimal `json:"total"`
	DaysUntilDue int             `json:"days_until_due"`
	DueLabel     string          `json:"due_label"`
}

func (h *RecurringChargeHandler) view(c *models.RecurringCharge) ChargeResponse {
	days := schedule.DaysUntil(c.NextDueDate, h.clock.Now())
	return ChargeResponse{
		RecurringCharge: *c,
		Total:           finance.ComputeTotal(finance.FromCharge(c)),
		DaysUntilDue:    days,
		DueLabel:        schedule.Humanize(days),
	}
}

func (h *RecurringChargeHandler) views(charges []models.RecurringCharge) []ChargeResponse {
	out := make([]ChargeResponse, 0, len(charges))
	for i := range charges {
		out = append(out, h.view(&charges[i]))
	}
	return out
}

func (h *RecurringChargeHandler) page(p *pagination.PageResponse[models.RecurringCharge]) *pagination.PageResponse[ChargeResponse] {
	return &pagination.PageResponse[ChargeResponse]{
		Data:       h.views(p.Data),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// CreateChargeRequest represents the request payload for creating a recurring charge.
type CreateChargeRequest struct {
	Description      string              `json:"description" binding:"required,max=255"`
	Amount           decimal.Decimal     `json:"amount"`
	Type             models.EntryType    `json:"type" binding:"omitempty,entry_type"`
	Period           models.ChargePeriod `json:"period" binding:"required,charge_period"`
	CustomPeriodDays *int                `json:"custom_period_days"`
	StartDate        string              `json:"start_date" binding:"required,iso_date"`
	NextDueDate      *string             `json:"next_due_date" binding:"omitempty,iso_date"`
	ProjectID        *string             `json:"project_id" binding:"omitempty,uuid"`
}

// UpdateChargeRequest represents the request payload for updating a recurring charge.
type UpdateChargeRequest struct {
	Description      *string              `json:"description" binding:"omitempty,min=1,max=255"`
	Amount           *decimal.Decimal     `json:"amount"`
	Type             *models.EntryType    `json:"type" binding:"omitempty,entry_type"`
	Period           *models.ChargePeriod `json:"period" binding:"omitempty,charge_period"`
	CustomPeriodDays *int                 `json:"custom_period_days"`
	NextDueDate      *string              `json:"next_due_date" binding:"omitempty,iso_date"`
	ProjectID        *string              `json:"project_id" binding:"omitempty,uuid"`
	IsActive         *bool                `json:"is_active"`
}

// CancelChargeRequest represents the request payload for cancelling a charge.
type CancelChargeRequest struct {
	Reason string `json:"reason"`
}

// CreateCharge handles the creation of a recurring charge.
// @Summary     Create a recurring charge
// @Description Create a recurring income or expense charge
// @Tags        recurring-charges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateChargeRequest true "Charge details"
// @Success     201 {object} ChargeResponse "Charge created"
// @Failure     400 {object} ErrorResponse "Invalid input or period configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges [post]
func (h *RecurringChargeHandler) CreateCharge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var nextDue *time.Time
	if req.NextDueDate != nil {
		d, err := schedule.ParseDate(*req.NextDueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		nextDue = &d
	}

	charge, err := h.chargeService.CreateCharge(c.Request.Context(), userID, services.ChargeInput{
		Description:      req.Description,
		Amount:           req.Amount,
		Type:             req.Type,
		Period:           req.Period,
		CustomPeriodDays: req.CustomPeriodDays,
		StartDate:        startDate,
		NextDueDate:      nextDue,
		ProjectID:        req.ProjectID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CREATE_CHARGE", models.AuditResourceCharge, charge.ID, c.ClientIP(),
		map[string]interface{}{"description": charge.Description, "amount": charge.Amount.String(), "period": charge.Period})

	c.JSON(http.StatusCreated, gin.H{"charge": h.view(charge)})
}

// ListCharges handles listing active (not cancelled) charges.
// @Summary     List active recurring charges
// @Description Get a paginated list of charges that are not cancelled, soonest due first
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[ChargeResponse] "Paginated charges"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges [get]
func (h *RecurringChargeHandler) ListCharges(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.chargeService.ListActiveCharges(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.page(result))
}

// ListCancelledCharges handles the cancelled/history view.
// @Summary     List cancelled recurring charges
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[ChargeResponse] "Paginated cancelled charges"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/cancelled [get]
func (h *RecurringChargeHandler) ListCancelledCharges(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.chargeService.ListCancelledCharges(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.page(result))
}

// ListDueSoon handles the due-soon list used by badges and banners.
// @Summary     List charges due soon
// @Description Active charges whose next due date is within window_days of today (default 7)
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       window_days query int false "Lookahead window in days"
// @Success     200 {object} map[string]interface{} "Due-soon charges"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/due-soon [get]
func (h *RecurringChargeHandler) ListDueSoon(c *gin.Context) {
	window, err := parseWindowDays(c, h.reminderWindowDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	charges, err := h.chargeService.ListDueSoon(c.Request.Context(), window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"charges": h.views(charges), "window_days": window})
}

// CountDueSoon handles the dashboard due-soon aggregate.
// @Summary     Count charges due soon
// @Description Number of active charges due within window_days of today (default 30)
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       window_days query int false "Lookahead window in days"
// @Success     200 {object} map[string]interface{} "Count and window"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/due-soon/count [get]
func (h *RecurringChargeHandler) CountDueSoon(c *gin.Context) {
	window, err := parseWindowDays(c, h.dashboardWindowDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.chargeService.CountDueSoon(c.Request.Context(), window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "window_days": window})
}

// GetProjection normalizes active charges to expected monthly income and spend.
// @Summary     Projected monthly totals
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Projected monthly income, expense and net"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/projection [get]
func (h *RecurringChargeHandler) GetProjection(c *gin.Context) {
	charges, err := h.chargeService.ListAllCharges(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": finance.ProjectedMonthly(charges)})
}

// ExportCharges streams every charge, cancelled ones included, as XLSX.
// @Summary     Export recurring charges
// @Tags        recurring-charges
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} file "XLSX workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/export [get]
func (h *RecurringChargeHandler) ExportCharges(c *gin.Context) {
	charges, err := h.chargeService.ListAllCharges(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Charges(&buf, charges); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("recurring-charges-%s.xlsx", schedule.FormatISO(h.clock.Now()))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetCharge handles retrieving a single charge.
// @Summary     Get recurring charge by ID
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Charge ID"
// @Success     200 {object} ChargeResponse "Charge details"
// @Failure     400 {object} ErrorResponse "Invalid charge ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id} [get]
func (h *RecurringChargeHandler) GetCharge(c *gin.Context) {
	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	charge, err := h.chargeService.GetCharge(c.Request.Context(), chargeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"charge": h.view(charge)})
}

// GetChargeHistory returns the audit trail of a charge, purged ones included.
// @Summary     Recurring charge history
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Charge ID"
// @Success     200 {object} map[string]interface{} "Audit entries, oldest first"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id}/history [get]
func (h *RecurringChargeHandler) GetChargeHistory(c *gin.Context) {
	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.auditService.ListForResource(c.Request.Context(), models.AuditResourceCharge, chargeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// UpdateCharge handles editing a charge.
// @Summary     Update recurring charge
// @Tags        recurring-charges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Charge ID"
// @Param       request body UpdateChargeRequest true "Fields to change"
// @Success     200 {object} ChargeResponse "Updated charge"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     409 {object} ErrorResponse "Charge is cancelled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id} [put]
func (h *RecurringChargeHandler) UpdateCharge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.ChargeUpdate{
		Description:      req.Description,
		Amount:           req.Amount,
		Type:             req.Type,
		Period:           req.Period,
		CustomPeriodDays: req.CustomPeriodDays,
		ProjectID:        req.ProjectID,
		IsActive:         req.IsActive,
	}
	if req.NextDueDate != nil {
		d, err := schedule.ParseDate(*req.NextDueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.NextDueDate = &d
	}

	charge, err := h.chargeService.UpdateCharge(c.Request.Context(), chargeID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "UPDATE_CHARGE", models.AuditResourceCharge, charge.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"charge": h.view(charge)})
}

// MarkPaid handles acknowledging a payment for a charge.
// @Summary     Mark recurring charge as paid
// @Description Sets last_payment_date to today and rolls next_due_date forward one period from the previous due date
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Charge ID"
// @Success     200 {object} ChargeResponse "Updated charge"
// @Failure     400 {object} ErrorResponse "Invalid charge ID or period configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     409 {object} ErrorResponse "Charge is cancelled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id}/pay [post]
func (h *RecurringChargeHandler) MarkPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	charge, err := h.chargeService.MarkPaid(c.Request.Context(), chargeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "PAY_CHARGE", models.AuditResourceCharge, charge.ID, c.ClientIP(),
		map[string]interface{}{"next_due_date": schedule.FormatISO(charge.NextDueDate)})

	c.JSON(http.StatusOK, gin.H{"charge": h.view(charge)})
}

// CancelCharge handles moving a charge to the cancelled view.
// @Summary     Cancel recurring charge
// @Tags        recurring-charges
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Charge ID"
// @Param       request body CancelChargeRequest true "Cancellation reason"
// @Success     200 {object} ChargeResponse "Cancelled charge"
// @Failure     400 {object} ErrorResponse "Missing reason"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     409 {object} ErrorResponse "Charge already cancelled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id}/cancel [post]
func (h *RecurringChargeHandler) CancelCharge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CancelChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	charge, err := h.chargeService.Cancel(c.Request.Context(), userID, chargeID, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CANCEL_CHARGE", models.AuditResourceCharge, charge.ID, c.ClientIP(),
		map[string]interface{}{"reason": *charge.CancelledReason})

	c.JSON(http.StatusOK, gin.H{"charge": h.view(charge)})
}

// RestoreCharge handles un-cancelling a charge.
// @Summary     Restore cancelled recurring charge
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Charge ID"
// @Success     200 {object} ChargeResponse "Restored charge"
// @Failure     400 {object} ErrorResponse "Invalid charge ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     409 {object} ErrorResponse "Charge is not cancelled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id}/restore [post]
func (h *RecurringChargeHandler) RestoreCharge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	charge, err := h.chargeService.Restore(c.Request.Context(), chargeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "RESTORE_CHARGE", models.AuditResourceCharge, charge.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"charge": h.view(charge)})
}

// PurgeCharge handles permanently deleting a cancelled charge.
// @Summary     Permanently delete recurring charge
// @Description Only cancelled charges can be purged
// @Tags        recurring-charges
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Charge ID"
// @Success     200 {object} map[string]string "Charge purged"
// @Failure     400 {object} ErrorResponse "Invalid charge ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Charge not found"
// @Failure     409 {object} ErrorResponse "Charge must be cancelled first"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-charges/{id} [delete]
func (h *RecurringChargeHandler) PurgeCharge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chargeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.chargeService.Purge(c.Request.Context(), chargeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "PURGE_CHARGE", models.AuditResourceCharge, chargeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring charge permanently deleted"})
}
