// Package app wires the storefront's pieces into one runnable application.
// cmd/furnimart builds an Application, attaches the route table and the GORM
// models, and hands it to the cobra commands:
//
//	func newApp() *app.Application {
//	    return app.New().
//	        Routes(routes.Register).
//	        AutoMigrate(&models.User{}, &models.Product{}, ...)
//	}
//
//	newApp().Serve()   // furnimart serve
//	app.Migrate()      // furnimart migrate
package app

import (
	"github.com/thanhvudev/furnimart/pkg/router"
)

// Application collects the route callbacks and models the commands need.
// Build one with New.
type Application struct {
	routesFns []func(*router.Router)
	models    []interface{}
}

// New creates an empty Application.
func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback. It may be called more than
// once; the HTTP kernel runs all callbacks in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// AutoMigrate adds GORM model pointers that Serve migrates on start.
func (a *Application) AutoMigrate(models ...interface{}) *Application {
	a.models = append(a.models, models...)
	return a
}
