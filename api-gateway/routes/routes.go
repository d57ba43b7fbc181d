package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/seydina/distriops/api-gateway/config"
	"github.com/seydina/distriops/api-gateway/health"
	"github.com/seydina/distriops/api-gateway/middleware"
	"github.com/seydina/distriops/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes
	{
		Prefix:      "/auth",
		ServiceName: "server",
		Description: "Vendor authentication (login, register)",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/products",
		ServiceName: "server",
		Description: "Product catalog and variants",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/variants",
		ServiceName: "server",
		Description: "Variant updates",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/stock-movements",
		ServiceName: "server",
		Description: "Stock movements",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/orders",
		ServiceName: "server",
		Description: "Orders and their items",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/order-items",
		ServiceName: "server",
		Description: "Order item updates",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/reports",
		ServiceName: "server",
		Description: "Daily sales and stock reports",
		RequireAuth: false,
	},

	// Vendor routes (token required)
	{
		Prefix:      "/api/vendors",
		ServiceName: "server",
		Description: "Vendor accounts and stats",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/activities",
		ServiceName: "server",
		Description: "Vendor activities and allocations",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/sales",
		ServiceName: "server",
		Description: "Sale execution",
		RequireAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAllServices(ctx))
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DistriOps API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
