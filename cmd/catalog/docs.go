package main

// @title Retail Dashboard API
// @version 1.0
// @description Retail sales dashboard: catalog management, derived sales metrics, sessions and checkout
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @tag.name Auth
// @tag.description Registration, login and logout

// @tag.name Session
// @tag.description Navigation state of the signed-in client

// @tag.name Products
// @tag.description Catalog rows

// @tag.name Dashboard
// @tag.description Sales aggregates

// @tag.name Catalog
// @tag.description Bulk push, pull, import and export (Admin only)

// @tag.name Orders
// @tag.description Checkout and purchase history

// @tag.name Health
// @tag.description Health check endpoints
