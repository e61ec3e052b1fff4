package bootstrap

import (
	"database/sql"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/admetrics-hub/admetrics-backend/internal/api/http"
	apimw "github.com/admetrics-hub/admetrics-backend/internal/api/http/middleware"
	attachmenthttp "github.com/admetrics-hub/admetrics-backend/internal/attachments/http"
	attachmentservice "github.com/admetrics-hub/admetrics-backend/internal/attachments/service"
	"github.com/admetrics-hub/admetrics-backend/internal/attachments/storage"
	authhttp "github.com/admetrics-hub/admetrics-backend/internal/auth/http"
	authmw "github.com/admetrics-hub/admetrics-backend/internal/auth/middleware"
	authrepo "github.com/admetrics-hub/admetrics-backend/internal/auth/repository"
	authservice "github.com/admetrics-hub/admetrics-backend/internal/auth/service"
	customerhttp "github.com/admetrics-hub/admetrics-backend/internal/customers/http"
	customerrepo "github.com/admetrics-hub/admetrics-backend/internal/customers/repository"
	customerservice "github.com/admetrics-hub/admetrics-backend/internal/customers/service"
	dashboardhttp "github.com/admetrics-hub/admetrics-backend/internal/dashboard/http"
	dashboardrepo "github.com/admetrics-hub/admetrics-backend/internal/dashboard/repository"
	dashboardservice "github.com/admetrics-hub/admetrics-backend/internal/dashboard/service"
	cronjob "github.com/admetrics-hub/admetrics-backend/internal/metrics/cron"
	metrichttp "github.com/admetrics-hub/admetrics-backend/internal/metrics/http"
	metricrepo "github.com/admetrics-hub/admetrics-backend/internal/metrics/repository"
	metricservice "github.com/admetrics-hub/admetrics-backend/internal/metrics/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	UserDB      *sql.DB
	Redis       *redis.Client
	Firebase    *fbauth.Client
	Blobs       *storage.Store
}

// BuildRouter wires repositories, services and handlers onto a gin engine.
// The returned scheduler owns the nightly metrics sweep; callers start it
// alongside the HTTP server.
func BuildRouter(dep RouterDeps) (*gin.Engine, *cronjob.Scheduler) {
	r := gin.Default()

	r.Use(cors.Default())
	r.Use(apimw.RequestIDMiddleware())
	r.Use(apimw.RateLimitMiddleware(rate.Limit(50), 100))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := authrepo.NewUserRepository(dep.UserDB)
	customerRepo := customerrepo.NewRepo(dep.DB)
	metricRepo := metricrepo.NewRepo(dep.DB)

	var cacheRepo *dashboardrepo.CacheRepo
	if dep.Redis != nil {
		cacheRepo = dashboardrepo.NewCacheRepo(dep.Redis)
	}

	authService := authservice.NewAuthService(userRepo)
	customerService := customerservice.NewCustomerService(customerRepo)
	assignmentService := customerservice.NewAssignmentService(customerRepo, userRepo)

	var invalidator metricservice.SummaryInvalidator
	if cacheRepo != nil {
		invalidator = cacheRepo
	}
	metricsService := metricservice.NewMetricsService(metricRepo, customerService, invalidator)

	var cache dashboardservice.SummaryCache
	if cacheRepo != nil {
		cache = cacheRepo
	}
	summaryService := dashboardservice.NewSummaryService(metricRepo, customerService, cache)

	api := r.Group("/api/v1")

	if dep.Firebase != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Firebase))
	} else {
		api.Use(authmw.DevAuthMiddleware())
	}
	api.Use(authmw.WithUser(authService))

	authHandler := authhttp.New(authService)
	authHandler.Register(api.Group("/users"))

	customerHandler := customerhttp.New(customerService, assignmentService)
	customersGroup := api.Group("/customers")
	customerHandler.Register(customersGroup)

	metricHandler := metrichttp.New(metricsService)
	metricHandler.Register(api.Group("/metrics"))

	dashboardHandler := dashboardhttp.New(summaryService)
	dashboardHandler.Register(api.Group("/dashboard"))

	if dep.Blobs != nil {
		attachmentService := attachmentservice.NewAttachmentService(dep.Blobs, customerService)
		attachmentHandler := attachmenthttp.New(attachmentService)
		attachmentHandler.Register(customersGroup)
	}

	admin := api.Group("/admin")
	authHandler.RegisterAdmin(admin)
	customerHandler.RegisterAdmin(admin)

	scheduler := cronjob.NewScheduler(metricsService)
	return r, scheduler
}
