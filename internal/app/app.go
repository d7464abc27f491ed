// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/config"
	"github.com/guttosm/inventory-allocator/internal/http"
)

// Application is the wired HTTP router together with the resources it owns.
type Application struct {
	Router *gin.Engine

	services *ServiceComponents
	database *DatabaseComponents
	routes   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *Application {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// MongoDB is optional: without it the catalog and audit endpoints stay disabled
	dbComponents := InitializeDatabase(cfg.Database, cfg.Catalog)

	serviceComponents := InitializeServices(cfg, dbComponents)

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &Application{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		services: serviceComponents,
		database: dbComponents,
		routes:   routerComponents,
	}
}

// Close flushes pending audit entries and releases the cache janitor and the
// database connection, in that order.
func (a *Application) Close(ctx context.Context) error {
	if a.routes != nil && a.routes.AsyncLogger != nil {
		a.routes.AsyncLogger.Stop()
	}
	if a.services != nil && a.services.Allocator != nil {
		a.services.Allocator.Stop()
	}

	var errs []error
	if a.database != nil {
		errs = append(errs, a.database.Close(ctx))
	}
	return errors.Join(errs...)
}
