package handler

import (
	"net/http"

	"tapcard/internal/delivery/http/middleware"
	"tapcard/internal/delivery/http/response"
	"tapcard/internal/domain/entity"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AnalyticsHandler holds dependencies for visit and lead handlers.
type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// RecordVisit appends a public visit event. The fingerprint is taken from the
// request, never from the payload.
func (h *AnalyticsHandler) RecordVisit(c echo.Context) error {
	var input usecase.VisitInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid visit input")
	}

	fp := &entity.Fingerprint{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	visit, err := h.uc.RecordVisit(c.Request().Context(), &input, fp)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, visit, "Visit recorded successfully")
}

// SubmitLead stores a public visitor's contact request.
func (h *AnalyticsHandler) SubmitLead(c echo.Context) error {
	var input usecase.LeadInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lead input")
	}

	lead, err := h.uc.SubmitLead(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, lead, "Lead submitted successfully")
}

// ListLeads returns the owner's leads for a card, newest first.
func (h *AnalyticsHandler) ListLeads(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	leads, err := h.uc.ListLeads(c.Request().Context(), ownerID, cardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, leads, "")
}

// MarkLeadRead flags one lead as read.
func (h *AnalyticsHandler) MarkLeadRead(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lead ID")
	}

	if err := h.uc.MarkLeadRead(c.Request().Context(), ownerID, leadID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Lead marked as read")
}

// GetSummary returns the owner's visit analytics for a card.
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	summary, err := h.uc.GetSummary(c.Request().Context(), ownerID, cardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}
