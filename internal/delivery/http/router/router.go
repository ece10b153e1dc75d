// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tapcard/internal/delivery/http/middleware"
	"tapcard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CardHandler      *handler.CardHandler
	ChildHandler     *handler.ChildHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cardHandler      *handler.CardHandler
	childHandler     *handler.ChildHandler
	analyticsHandler *handler.AnalyticsHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cardHandler:      params.CardHandler,
		childHandler:     params.ChildHandler,
		analyticsHandler: params.AnalyticsHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public routes, no authentication. The slug route doubles as the view
	// counter for the public card page.
	e.GET("/cards/:slug", r.cardHandler.GetCardBySlug)
	e.GET("/cards/:slug/qr", r.cardHandler.GetShareQR)
	e.POST("/leads", r.analyticsHandler.SubmitLead)
	e.POST("/analytics", r.analyticsHandler.RecordVisit)

	// Owner routes that require authentication
	ownerGroup := e.Group("/api")
	ownerGroup.Use(r.authMiddleware.Authenticate)
	{
		ownerGroup.GET("/cards", r.cardHandler.GetOwnCard)
		ownerGroup.POST("/cards", r.cardHandler.CreateCard)
		ownerGroup.PUT("/cards/:id", r.cardHandler.UpdateCard)
		ownerGroup.DELETE("/cards/:id", r.cardHandler.DeleteCard)

		ownerGroup.POST("/cards/:id/social-links", r.childHandler.AddSocialLink)
		ownerGroup.PUT("/social-links/:id", r.childHandler.UpdateSocialLink)
		ownerGroup.DELETE("/social-links/:id", r.childHandler.DeleteSocialLink)

		ownerGroup.GET("/cards/:id/products", r.childHandler.ListProducts)
		ownerGroup.POST("/cards/:id/products", r.childHandler.AddProduct)
		ownerGroup.PUT("/products/:id", r.childHandler.UpdateProduct)
		ownerGroup.DELETE("/products/:id", r.childHandler.DeleteProduct)

		ownerGroup.GET("/cards/:id/proprietors", r.childHandler.ListProprietors)
		ownerGroup.POST("/cards/:id/proprietors", r.childHandler.AddProprietor)
		ownerGroup.PUT("/proprietors/:id", r.childHandler.UpdateProprietor)
		ownerGroup.DELETE("/proprietors/:id", r.childHandler.DeleteProprietor)

		ownerGroup.GET("/cards/:id/leads", r.analyticsHandler.ListLeads)
		ownerGroup.PUT("/leads/:id/read", r.analyticsHandler.MarkLeadRead)
		ownerGroup.GET("/cards/:id/analytics", r.analyticsHandler.GetSummary)
	}
}
