// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"tapcard/internal/delivery/http/middleware"
	"tapcard/internal/delivery/http/response"
	"tapcard/internal/domain/entity"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CardHandler holds dependencies for card-related handlers.
type CardHandler struct {
	cardUC      usecase.CardUsecase
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewCardHandler is the constructor for CardHandler, injected by Fx.
func NewCardHandler(cardUC usecase.CardUsecase, analyticsUC usecase.AnalyticsUsecase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardUC:      cardUC,
		analyticsUC: analyticsUC,
		logger:      logger,
	}
}

// CreateCard handles the card creation request, JSON or multipart.
func (h *CardHandler) CreateCard(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	input, err := decodeCardInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	card, err := h.cardUC.CreateCard(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, card, "Card created successfully")
}

// UpdateCard handles the full aggregate replacement request.
func (h *CardHandler) UpdateCard(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	input, err := decodeCardInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	card, err := h.cardUC.UpdateCard(c.Request().Context(), ownerID, cardID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "Card updated successfully")
}

// DeleteCard handles card deletion; child rows cascade.
func (h *CardHandler) DeleteCard(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	if err := h.cardUC.DeleteCard(c.Request().Context(), ownerID, cardID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Card deleted successfully")
}

// GetOwnCard returns the authenticated owner's card with all collections.
func (h *CardHandler) GetOwnCard(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	card, err := h.cardUC.GetOwnCard(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "")
}

// GetCardBySlug serves the public card page data and records a view visit.
// Recording is best effort; a failed append never blocks the page.
func (h *CardHandler) GetCardBySlug(c echo.Context) error {
	slug := c.Param("slug")

	card, err := h.cardUC.GetCardBySlug(c.Request().Context(), slug)
	if err != nil {
		return errors.WithStack(err)
	}

	visit := &usecase.VisitInput{
		CardID: card.ID,
		Type:   "view",
	}
	fp := &entity.Fingerprint{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if _, err := h.analyticsUC.RecordVisit(c.Request().Context(), visit, fp); err != nil {
		h.logger.Warn("Failed to record card view",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
	}

	return response.Success(c, http.StatusOK, card, "")
}

// GetShareQR renders the card's share QR code as a PNG.
func (h *CardHandler) GetShareQR(c echo.Context) error {
	slug := c.Param("slug")

	png, err := h.cardUC.GenerateShareQR(c.Request().Context(), slug)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
