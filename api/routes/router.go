package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aureliajewels/storefront-api/api/controllers"
	"github.com/aureliajewels/storefront-api/api/middleware"
	adminsvc "github.com/aureliajewels/storefront-api/internal/admin"
	noticesvc "github.com/aureliajewels/storefront-api/internal/notices"
	ordersvc "github.com/aureliajewels/storefront-api/internal/orders"
	profilesvc "github.com/aureliajewels/storefront-api/internal/profile"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
	"github.com/aureliajewels/storefront-api/pkg/media"
	"github.com/aureliajewels/storefront-api/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backendClient *backend.Client,
	ordersService *ordersvc.Service,
	noticesService *noticesvc.Service,
	profileService *profilesvc.Service,
	adminService *adminsvc.Service,
	mediaClient *media.Client,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Browse pages need no session.
		r.Get("/shop", controllers.ShopView(backendClient, logg))
		r.Get("/products/{id}", controllers.ProductDetails(backendClient, backendClient, logg))
		r.Get("/reviews", controllers.ReviewsList(backendClient, logg))
		r.Get("/notices", controllers.NoticesList(noticesService, logg))
		r.Post("/contact", controllers.ContactSend(profileService, logg))

		// Everything below requires the caller's bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(logg))

			r.Get("/cart", controllers.CartFetch(backendClient, logg))
			r.Post("/cart/items", controllers.CartAdd(backendClient, logg))
			r.Patch("/cart/items/{id}", controllers.CartItemUpdate(backendClient, logg))
			r.Delete("/cart/items/{id}", controllers.CartItemRemove(backendClient, logg))

			r.Post("/orders", controllers.OrderPlace(ordersService, logg))
			r.Get("/orders", controllers.OrdersList(ordersService, logg))
			r.Get("/orders/{id}", controllers.OrderFetch(ordersService, logg))

			r.Post("/reviews", controllers.ReviewCreate(backendClient, logg))

			r.Get("/profile", controllers.ProfileFetch(profileService, logg))
			r.Put("/profile", controllers.ProfileUpdate(profileService, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireOwner(adminService, logg))

				r.Get("/dashboard", controllers.AdminDashboard(adminService, logg))

				r.Post("/categories", controllers.AdminCategoryCreate(adminService, logg))
				r.Delete("/categories/{id}", controllers.AdminCategoryDelete(adminService, logg))
				r.Post("/subcategories", controllers.AdminSubcategoryCreate(adminService, logg))
				r.Delete("/subcategories/{id}", controllers.AdminSubcategoryDelete(adminService, logg))

				r.Post("/products", controllers.AdminProductCreate(adminService, logg))
				r.Patch("/products/{id}", controllers.AdminProductSetActive(adminService, logg))
				r.Delete("/products/{id}", controllers.AdminProductDelete(adminService, logg))
				r.Post("/media", controllers.AdminMediaUpload(mediaClient, logg))

				r.Post("/orders/{id}/action", controllers.AdminOrderAction(adminService, logg))

				r.Post("/notices", controllers.AdminNoticeCreate(noticesService, logg))
				r.Put("/notices/{id}", controllers.AdminNoticeUpdate(noticesService, logg))
				r.Delete("/notices/{id}", controllers.AdminNoticeDelete(noticesService, logg))
			})
		})
	})

	return r
}
