// Package main is the entry point for the inventory allocation service.
//
// @title           Inventory Allocation API
// @version         1.0.0
// @description     API for shipping orders from the fewest warehouses possible.
//
//	Orders are split across a cost-ordered warehouse list; ties go to the cheaper warehouses.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/inventory-allocator
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer access token issued by POST /api/auth/token.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key in client:secret form. Required if authentication is enabled.
//
// @tag.name        Allocation
// @tag.description Order allocation operations
//
// @tag.name        Warehouses
// @tag.description Warehouse catalog management
//
// @tag.name        Audit
// @tag.description Audit log queries
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

//go:generate swag init --dir ../ --generalInfo cmd/main.go --output ../docs --outputTypes go

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/inventory-allocator/docs" // swagger docs

	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := server.Run(ctx)
	stop()

	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
