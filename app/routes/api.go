// Package routes assembles the HTTP surface: repositories, services and
// controllers are built once, then mounted on the router. Admin endpoints sit
// behind the auth middleware plus an admin role check.
package routes

import (
	"sync"

	"github.com/thanhvudev/furnimart/app/controllers"
	appgraphql "github.com/thanhvudev/furnimart/app/graphql"
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/middleware"
	"github.com/thanhvudev/furnimart/pkg/orm"
	"github.com/thanhvudev/furnimart/pkg/rbac"
	"github.com/thanhvudev/furnimart/pkg/router"
	"github.com/thanhvudev/furnimart/pkg/storage"
	"github.com/thanhvudev/furnimart/pkg/ws"
)

// OrderFeed carries order activity to connected admin dashboards. The server
// runs its loop; listeners broadcast into it.
var OrderFeed = ws.NewHub()

var (
	buildOnce sync.Once
	c         container
)

// container holds the one instance of each controller.
type container struct {
	auth      *controllers.AuthController
	catalog   *controllers.CatalogController
	cart      *controllers.CartController
	orders    *controllers.OrderController
	feedback  *controllers.FeedbackController
	adminOrd  *controllers.AdminOrderController
	adminCat  *controllers.AdminCategoryController
	adminProd *controllers.AdminProductController
	adminUser *controllers.AdminUserController
	adminFb   *controllers.AdminFeedbackController
	adminDash *controllers.AdminDashboardController
	graphqlFn func(r *router.Router)
}

func build() {
	storage.Connect()
	disk := storage.Use("local")

	categoryRepo := repositories.NewCategoryRepository(disk)
	productRepo := repositories.NewProductRepository(disk)
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()
	feedbackRepo := repositories.NewFeedbackRepository()

	uow := orm.NewUnitOfWork()
	shipping := services.NewShippingService()
	checkout := services.NewCheckoutService(productRepo, orderRepo, shipping, uow)
	status := services.NewOrderStatusService(orderRepo, uow)
	cart := services.NewCartService(productRepo, shipping)
	users := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo)
	feedback := services.NewFeedbackService(feedbackRepo, productRepo)
	dashboard := services.NewDashboardService(orderRepo, productRepo, categoryRepo, feedbackRepo, userRepo)

	c.auth = controllers.NewAuthController(authSvc, users)
	c.catalog = controllers.NewCatalogController(productRepo, categoryRepo, feedback, shipping)
	c.cart = controllers.NewCartController(cart, checkout, users)
	c.orders = controllers.NewOrderController(orderRepo, status)
	c.feedback = controllers.NewFeedbackController(feedback)
	c.adminOrd = controllers.NewAdminOrderController(orderRepo, status, users)
	c.adminCat = controllers.NewAdminCategoryController(categoryRepo)
	c.adminProd = controllers.NewAdminProductController(productRepo, categoryRepo)
	c.adminUser = controllers.NewAdminUserController(users)
	c.adminFb = controllers.NewAdminFeedbackController(feedback)
	c.adminDash = controllers.NewAdminDashboardController(dashboard, OrderFeed)

	c.graphqlFn = func(r *router.Router) {
		handler, err := appgraphql.NewHandler(productRepo, categoryRepo, shipping)
		if err != nil {
			logger.Error("graphql schema build failed", "error", err)
			return
		}
		r.Post("/api/graphql", "graphql", handler)
	}
}

// Register mounts the full API.
func Register(r *router.Router) {
	buildOnce.Do(build)

	api := r.Group("/api")

	// Public auth endpoints.
	api.Post("/auth/register", "auth.register", ctx.Wrap(c.auth.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(c.auth.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(c.auth.Refresh))
	api.Post("/auth/forgot-password", "auth.forgot", ctx.Wrap(c.auth.ForgotPassword))
	api.Post("/auth/reset-password", "auth.reset", ctx.Wrap(c.auth.ResetPassword))

	// Public storefront.
	api.Get("/products", "products.index", ctx.Wrap(c.catalog.Products))
	api.Get("/products/{id}", "products.show", ctx.Wrap(c.catalog.Product))
	api.Get("/categories", "categories.index", ctx.Wrap(c.catalog.Categories))
	api.Get("/shipping/quote", "shipping.quote", ctx.Wrap(c.catalog.ShippingQuote))
	c.graphqlFn(r)

	// Session cart; anonymous browsing is allowed, checkout is not.
	api.Get("/cart", "cart.show", ctx.Wrap(c.cart.Show))
	api.Post("/cart", "cart.add", ctx.Wrap(c.cart.Add))
	api.Put("/cart/{id}", "cart.update", ctx.Wrap(c.cart.Update))
	api.Delete("/cart/{id}", "cart.remove", ctx.Wrap(c.cart.Remove))
	api.Post("/checkout/delivery", "checkout.delivery", ctx.Wrap(c.cart.SetDelivery))

	// Signed-in customer surface.
	account := api.Group("", middleware.AuthMiddleware)
	account.Post("/checkout", "checkout.place", ctx.Wrap(c.cart.Checkout))
	account.Get("/me", "me.show", ctx.Wrap(c.auth.Me))
	account.Put("/me", "me.update", ctx.Wrap(c.auth.UpdateProfile))
	account.Put("/me/password", "me.password", ctx.Wrap(c.auth.ChangePassword))
	account.Get("/orders", "orders.index", ctx.Wrap(c.orders.Index))
	account.Get("/orders/{id}", "orders.show", ctx.Wrap(c.orders.Show))
	account.Post("/orders/{id}/cancel", "orders.cancel", ctx.Wrap(c.orders.Cancel))
	account.Post("/feedback", "feedback.submit", ctx.Wrap(c.feedback.Submit))

	// Back office: admins only.
	admin := api.Group("/admin", middleware.AuthMiddleware, rbac.HasRole("admin"))

	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(c.adminDash.Stats))
	admin.Get("/dashboard/stream", "admin.dashboard.stream", c.adminDash.Stream)
	admin.Get("/dashboard/events", "admin.dashboard.events", c.adminDash.Events)

	admin.Get("/orders", "admin.orders.index", ctx.Wrap(c.adminOrd.Index))
	admin.Get("/orders/{id}", "admin.orders.show", ctx.Wrap(c.adminOrd.Show))
	admin.Put("/orders/{id}/status", "admin.orders.status", ctx.Wrap(c.adminOrd.UpdateStatus))

	admin.Get("/categories", "admin.categories.index", ctx.Wrap(c.adminCat.Index))
	admin.Get("/categories/{id}", "admin.categories.show", ctx.Wrap(c.adminCat.Show))
	admin.Post("/categories", "admin.categories.store", ctx.Wrap(c.adminCat.Store))
	admin.Put("/categories/{id}", "admin.categories.update", ctx.Wrap(c.adminCat.Update))
	admin.Delete("/categories/{id}", "admin.categories.destroy", ctx.Wrap(c.adminCat.Destroy))

	admin.Get("/products", "admin.products.index", ctx.Wrap(c.adminProd.Index))
	admin.Get("/products/{id}", "admin.products.show", ctx.Wrap(c.adminProd.Show))
	admin.Post("/products", "admin.products.store", ctx.Wrap(c.adminProd.Store))
	admin.Put("/products/{id}", "admin.products.update", ctx.Wrap(c.adminProd.Update))
	admin.Delete("/products/{id}", "admin.products.destroy", ctx.Wrap(c.adminProd.Destroy))

	admin.Get("/users", "admin.users.index", ctx.Wrap(c.adminUser.Index))
	admin.Get("/users/{id}", "admin.users.show", ctx.Wrap(c.adminUser.Show))
	admin.Post("/users", "admin.users.store", ctx.Wrap(c.adminUser.Store))
	admin.Put("/users/{id}", "admin.users.update", ctx.Wrap(c.adminUser.Update))
	admin.Post("/users/{id}/activate", "admin.users.activate", ctx.Wrap(c.adminUser.Activate))
	admin.Post("/users/{id}/deactivate", "admin.users.deactivate", ctx.Wrap(c.adminUser.Deactivate))
	admin.Delete("/users/{id}", "admin.users.destroy", ctx.Wrap(c.adminUser.Destroy))

	admin.Get("/feedback", "admin.feedback.index", ctx.Wrap(c.adminFb.Index))
	admin.Delete("/feedback/{id}", "admin.feedback.destroy", ctx.Wrap(c.adminFb.Destroy))
}
