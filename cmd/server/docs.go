package main

// @title DistriOps API
// @version 1.0
// @description Retail operations backend with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/seydina/distriops
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/seydina/distriops/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Product catalog and variant endpoints

// @tag.name Stock
// @tag.description Stock movement endpoints

// @tag.name Orders
// @tag.description Order and order item endpoints

// @tag.name Vendors
// @tag.description Vendor account endpoints

// @tag.name Activities
// @tag.description Vendor activity and allocation endpoints

// @tag.name Sales
// @tag.description Sale execution endpoints

// @tag.name Reports
// @tag.description Daily report endpoints

// @tag.name Health
// @tag.description Health check endpoints
