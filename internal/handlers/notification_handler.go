package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/middleware"
	"projectdesk/internal/models"
	"projectdesk/internal/pagination"
	"projectdesk/internal/reminder"
	"projectdesk/internal/services"
)

// ReminderEvaluator runs a reminder pass for one user.
type ReminderEvaluator interface {
	EvaluateFor(ctx context.Context, userID string) (*reminder.Result, error)
}

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	notificationService services.NotificationServicer
	userService         services.UserServicer
	evaluator           ReminderEvaluator
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notificationService services.NotificationServicer,
	userService services.UserServicer,
	evaluator ReminderEvaluator,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
		evaluator:           evaluator,
	}
}

// NotificationQuery holds the list parameters
type NotificationQuery struct {
	pagination.PageRequest
	UnreadOnly bool `form:"unread_only"`
}

// ListNotifications handles listing the current user's notifications
// @Summary     List notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int  false "Page number (default 1)"
// @Param       page_size   query int  false "Items per page (default 20, max 100)"
// @Param       unread_only query bool false "Only unread notifications"
// @Success     200 {object} pagination.PageResponse[models.Notification] "Paginated notifications"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q NotificationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.notificationService.ListForUser(c.Request.Context(), userID, q.UnreadOnly, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UnreadCount handles the notification badge count
// @Summary     Count unread notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Unread count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead handles marking one notification as read
// @Summary     Mark notification read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Notification ID"
// @Success     200 {object} map[string]string "Marked read"
// @Failure     400 {object} ErrorResponse "Invalid notification ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead handles clearing the current user's unread notifications
// @Summary     Mark all notifications read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Number of notifications updated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Evaluate runs a due-soon reminder pass for the current user. Users without
// a financial role get an empty result rather than an error so clients can
// call this on every session start.
// @Summary     Evaluate due-soon reminders
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reminder.Result "Notifications emitted by this pass"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/evaluate [post]
func (h *NotificationHandler) Evaluate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !h.userService.HasFinancialRole(c.GetString(middleware.RoleKey)) {
		c.JSON(http.StatusOK, reminder.Result{Emitted: []models.Notification{}})
		return
	}

	result, err := h.evaluator.EvaluateFor(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, result)
}
