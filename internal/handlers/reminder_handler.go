package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/logger"
	"projectdesk/internal/middleware"
	"projectdesk/internal/reminder"
)

// ReminderRunner runs a reminder pass for every financial recipient.
type ReminderRunner interface {
	RunOnce(ctx context.Context) (*reminder.Result, error)
}

// ReminderHandler exposes the reminder pass to the scheduler pipeline
type ReminderHandler struct {
	runner ReminderRunner
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(runner ReminderRunner) *ReminderHandler {
	return &ReminderHandler{runner: runner}
}

// RunReminders handles a scheduled reminder pass
// @Summary     Run reminder pass
// @Description Evaluates due-soon charges for every financial recipient. Authenticated with the pipeline API key.
// @Tags        internal
// @Produce     json
// @Param       X-API-Key header string true "Pipeline API key"
// @Success     200 {object} reminder.Result "Pass result"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /internal/reminders/run [post]
func (h *ReminderHandler) RunReminders(c *gin.Context) {
	result, err := h.runner.RunOnce(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	logger.Get().Infow("reminder pass completed",
		"pipeline", c.GetBool(middleware.PipelineCallerKey),
		"emitted", len(result.Emitted),
		"existing", result.Existing,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	c.JSON(http.StatusOK, result)
}
