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

// EnquiryHandler handles wedding cake enquiry submissions.
type EnquiryHandler struct {
	emailCfg *config.EmailConfig
	mailer   services.Mailer
	now      func() time.Time
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(emailCfg *config.EmailConfig, mailer services.Mailer) *EnquiryHandler {
	return &EnquiryHandler{emailCfg: emailCfg, mailer: mailer, now: time.Now}
}

// SubmitEnquiry godoc
// @Summary      Submit a wedding enquiry
// @Description  Validates an enquiry from the home page form and emails it to the bakery
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body  body      types.EnquiryRequest  true  "Enquiry payload"
// @Success      200   {object}  types.SuccessResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/contact [post]
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	var req types.EnquiryRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := services.BuildEnquiryEmail(h.emailCfg, &req, h.now())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render enquiry notification"))
		return
	}

	if err := h.mailer.Send(c.Request.Context(), msg); err != nil {
		_ = c.Error(apperrors.DispatchFailed("Failed to send email. Please try again.", err))
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true, Message: "Email sent successfully"})
}
