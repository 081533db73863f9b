package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/coilbill-backend/api/controllers"
	"github.com/angelmondragon/coilbill-backend/api/middleware"
	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/internal/auth"
	"github.com/angelmondragon/coilbill-backend/internal/brands"
	productsvc "github.com/angelmondragon/coilbill-backend/internal/products"
	"github.com/angelmondragon/coilbill-backend/internal/quotations"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/angelmondragon/coilbill-backend/pkg/metrics"
	"github.com/angelmondragon/coilbill-backend/pkg/redis"
)

// NewRouter mounts the billing API under /api plus /metrics and the static
// /uploads tree. redisClient and httpMetrics may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	brandService brands.Service,
	productService productsvc.Service,
	quotationService quotations.Service,
	uploadRoot string,
) http.Handler {
	r := chi.NewRouter()
	// Unknown methods on known paths are reported like unknown paths.
	r.NotFound(notFound(logg))
	r.MethodNotAllowed(notFound(logg))

	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	if uploadRoot != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", staticFiles(uploadRoot, logg)))
	}

	requireAdmin := middleware.Auth(authService, logg)
	loginLimit := passThrough
	idempotent := passThrough
	if redisClient != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginUsernameLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		idempotent = middleware.Idempotency(redisClient, logg)
	}
	maxUpload := cfg.Media.MaxUploadBytes()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.HealthLive(cfg))
		r.Get("/health/ready", controllers.HealthReady(cfg, logg, dbP))

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit).Post("/login", controllers.AuthLogin(authService, logg))
			r.With(requireAdmin).Get("/me", controllers.AuthMe(logg))
		})

		r.Post("/pricing/preview", controllers.PricingPreview(logg))

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.BrandList(brandService, logg))
			r.Get("/{brandId}", controllers.BrandGet(brandService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/{brandId}/price-list", controllers.BrandPriceList(productService, logg))
				r.Post("/", controllers.BrandCreate(brandService, maxUpload, logg))
				r.Put("/{brandId}", controllers.BrandUpdate(brandService, maxUpload, logg))
				r.Delete("/{brandId}", controllers.BrandDelete(brandService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/brand/{brandId}", controllers.ProductListByBrand(productService, logg))
			r.Get("/{productId}", controllers.ProductGet(productService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", controllers.ProductCreate(productService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(productService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
			})
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.QuotationList(quotationService, logg))
			r.Get("/export", controllers.QuotationExport(quotationService, logg))
			r.Get("/{quotationId}", controllers.QuotationGet(quotationService, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin, idempotent)
				r.Post("/", controllers.QuotationCreate(quotationService, logg))
				r.Put("/{quotationId}", controllers.QuotationUpdate(quotationService, logg))
				r.Patch("/{quotationId}/paid", controllers.QuotationSetPaid(quotationService, logg))
				r.Delete("/{quotationId}", controllers.QuotationDelete(quotationService, logg))
			})
		})
	})

	return r
}

func passThrough(next http.Handler) http.Handler {
	return next
}

func notFound(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	}
}

// staticFiles serves uploaded logos without directory listings.
func staticFiles(root string, logg *logger.Logger) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			notFound(logg).ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}
