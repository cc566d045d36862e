package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mpass/internal/middleware"
	"mpass/internal/service"
)

// AutofillHandler handles the autofill bridge endpoints.
type AutofillHandler struct {
	autofillService service.AutofillService
}

// NewAutofillHandler creates a new AutofillHandler.
func NewAutofillHandler(autofillService service.AutofillService) *AutofillHandler {
	return &AutofillHandler{autofillService: autofillService}
}

// Fill handles POST /api/v1/autofill/fill
func (h *AutofillHandler) Fill(c *gin.Context) {
	var input service.FillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.RequestID = middleware.GetRequestID(c)

	resp, err := h.autofillService.Fill(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// Save handles POST /api/v1/autofill/save
func (h *AutofillHandler) Save(c *gin.Context) {
	var input service.SaveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.autofillService.Save(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, output)
}

// Authorize handles POST /api/v1/autofill/authorize
func (h *AutofillHandler) Authorize(c *gin.Context) {
	var input service.AuthorizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.autofillService.Authorize(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, output)
}

// Classify handles POST /api/v1/autofill/classify
func (h *AutofillHandler) Classify(c *gin.Context) {
	var input service.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.autofillService.Classify(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, output)
}
