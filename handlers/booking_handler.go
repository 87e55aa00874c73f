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

// BookingHandler handles workshop booking requests.
type BookingHandler struct {
	emailCfg *config.EmailConfig
	mailer   services.Mailer
	now      func() time.Time
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(emailCfg *config.EmailConfig, mailer services.Mailer) *BookingHandler {
	return &BookingHandler{emailCfg: emailCfg, mailer: mailer, now: time.Now}
}

// SubmitBooking godoc
// @Summary      Submit a workshop booking request
// @Description  Validates a booking request from the workshops page and emails it to the bakery
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      types.BookingRequest  true  "Booking payload"
// @Success      200   {object}  types.SuccessResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/workshops [post]
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req types.BookingRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := services.BuildBookingEmail(h.emailCfg, &req, h.now())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render booking notification"))
		return
	}

	if err := h.mailer.Send(c.Request.Context(), msg); err != nil {
		_ = c.Error(apperrors.DispatchFailed("Failed to send email. Please try again.", err))
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true, Message: "Email sent successfully"})
}
