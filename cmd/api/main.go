package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medikids/clinic-api/internal/config"
	"github.com/medikids/clinic-api/internal/handler/dashboard"
	drugHandler "github.com/medikids/clinic-api/internal/handler/drug"
	examHandler "github.com/medikids/clinic-api/internal/handler/exam"
	"github.com/medikids/clinic-api/internal/handler/health"
	kidHandler "github.com/medikids/clinic-api/internal/handler/kid"
	parentHandler "github.com/medikids/clinic-api/internal/handler/parent"
	"github.com/medikids/clinic-api/internal/handler/web"
	"github.com/medikids/clinic-api/internal/middleware"
	"github.com/medikids/clinic-api/internal/model"
	"github.com/medikids/clinic-api/internal/repository/postgres"
	"github.com/medikids/clinic-api/internal/router"
	drugService "github.com/medikids/clinic-api/internal/service/drug"
	examService "github.com/medikids/clinic-api/internal/service/exam"
	kidService "github.com/medikids/clinic-api/internal/service/kid"
	parentService "github.com/medikids/clinic-api/internal/service/parent"
	"github.com/medikids/clinic-api/pkg/logger"
	"github.com/medikids/clinic-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("clinic")

	base := postgres.NewBaseRepository(db, m)
	parentRepo := postgres.NewParentRepository(base)
	kidRepo := postgres.NewKidRepository(base)
	drugRepo := postgres.NewDrugRepository(base)
	purchaseRepo := postgres.NewPurchaseRepository(base)
	examRepo := postgres.NewExamRepository(base)
	examImageRepo := postgres.NewExamImageRepository(base)

	limits := model.SearchLimits{
		Default: cfg.Search.DefaultLimit,
		Max:     cfg.Search.MaxLimit,
	}

	parentSvc := parentService.NewService(parentRepo, limits)
	kidSvc := kidService.NewService(kidRepo, parentRepo, limits)
	drugSvc := drugService.NewService(drugRepo, purchaseRepo, limits, cfg.Cache.TTL, m)
	examSvc := examService.NewService(examRepo, examImageRepo, parentRepo, kidRepo, limits)

	dashboardH := dashboard.NewHandler(parentSvc, kidSvc)
	r := router.NewRouter(router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		Timeout:          middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout},
		CORS:             middleware.DefaultCORSConfig(),
		TemplatesGlob:    cfg.Templates,
	}, m, []router.Handler{
		parentHandler.NewHandler(parentSvc),
		kidHandler.NewHandler(kidSvc),
		drugHandler.NewHandler(drugSvc),
		examHandler.NewHandler(examSvc),
		dashboardH,
		health.NewHandler(db),
	}, []router.PageHandler{
		web.NewHandler(drugSvc, kidSvc),
		dashboardH,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
