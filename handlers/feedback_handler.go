package handlers

import (
	"net/http"
	"time"

	"github.com/bakedbyann/bakery-backend/config"
	apperrors "github.com/bakedbyann/bakery-backend/errors"
	"github.com/bakedbyann/bakery-backend/services"
	"github.com/bakedbyann/bakery-backend/types"
	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles class feedback submissions.
type FeedbackHandler struct {
	emailCfg *config.EmailConfig
	mailer   services.Mailer
	now      func() time.Time
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(emailCfg *config.EmailConfig, mailer services.Mailer) *FeedbackHandler {
	return &FeedbackHandler{emailCfg: emailCfg, mailer: mailer, now: time.Now}
}

// SubmitFeedback godoc
// @Summary      Submit class feedback
// @Description  Validates anonymous class feedback and emails it to the bakery
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackRequest  true  "Feedback payload"
// @Success      200   {object}  types.SuccessResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := services.BuildFeedbackEmail(h.emailCfg, &req, h.now())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render feedback notification"))
		return
	}

	if err := h.mailer.Send(c.Request.Context(), msg); err != nil {
		_ = c.Error(apperrors.DispatchFailed("Failed to send feedback. Please try again.", err))
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true, Message: "Feedback sent successfully"})
}
