package handler

import (
	"net/http"

	"tapcard/internal/delivery/http/middleware"
	"tapcard/internal/delivery/http/response"
	"tapcard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChildHandler holds dependencies for the narrow per-resource child endpoints.
type ChildHandler struct {
	uc usecase.ChildUsecase
}

// NewChildHandler is the constructor for ChildHandler, injected by Fx.
func NewChildHandler(uc usecase.ChildUsecase) *ChildHandler {
	return &ChildHandler{uc: uc}
}

// AddSocialLink handles adding one social link to the owner's card.
func (h *ChildHandler) AddSocialLink(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	var input usecase.SocialLinkInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid social link input")
	}

	link, err := h.uc.AddSocialLink(c.Request().Context(), ownerID, cardID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, link, "Social link added successfully")
}

// UpdateSocialLink handles updating one social link by ID.
func (h *ChildHandler) UpdateSocialLink(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid social link ID")
	}

	var input usecase.SocialLinkInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid social link input")
	}

	link, err := h.uc.UpdateSocialLink(c.Request().Context(), ownerID, linkID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, link, "Social link updated successfully")
}

// DeleteSocialLink handles removing one social link by ID.
func (h *ChildHandler) DeleteSocialLink(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid social link ID")
	}

	if err := h.uc.DeleteSocialLink(c.Request().Context(), ownerID, linkID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Social link deleted successfully")
}

// ListProducts returns a card's products.
func (h *ChildHandler) ListProducts(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	products, err := h.uc.ListProducts(c.Request().Context(), cardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// AddProduct handles adding one product, optionally with an image upload.
func (h *ChildHandler) AddProduct(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	input, err := decodeProductInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	product, err := h.uc.AddProduct(c.Request().Context(), ownerID, cardID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product added successfully")
}

// UpdateProduct handles updating one product by ID.
func (h *ChildHandler) UpdateProduct(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	input, err := decodeProductInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), ownerID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct handles removing one product by ID.
func (h *ChildHandler) DeleteProduct(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), ownerID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// ListProprietors returns a card's proprietors.
func (h *ChildHandler) ListProprietors(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	proprietors, err := h.uc.ListProprietors(c.Request().Context(), cardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, proprietors, "")
}

// AddProprietor handles adding one proprietor, optionally with a photo upload.
func (h *ChildHandler) AddProprietor(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid card ID")
	}

	input, err := decodeProprietorInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	proprietor, err := h.uc.AddProprietor(c.Request().Context(), ownerID, cardID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, proprietor, "Proprietor added successfully")
}

// UpdateProprietor handles updating one proprietor by ID.
func (h *ChildHandler) UpdateProprietor(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	proprietorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid proprietor ID")
	}

	input, err := decodeProprietorInput(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", err.Error())
	}

	proprietor, err := h.uc.UpdateProprietor(c.Request().Context(), ownerID, proprietorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, proprietor, "Proprietor updated successfully")
}

// DeleteProprietor handles removing one proprietor by ID.
func (h *ChildHandler) DeleteProprietor(c echo.Context) error {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	proprietorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid proprietor ID")
	}

	if err := h.uc.DeleteProprietor(c.Request().Context(), ownerID, proprietorID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Proprietor deleted successfully")
}
