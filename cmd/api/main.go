package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appapproval "github.com/cotizapp/cotiz-api/internal/application/approval"
	"github.com/cotizapp/cotiz-api/internal/application/auth"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	domapproval "github.com/cotizapp/cotiz-api/internal/domain/approval"
	"github.com/cotizapp/cotiz-api/internal/events"
	"github.com/cotizapp/cotiz-api/internal/infrastructure/postgres"
	httpRouter "github.com/cotizapp/cotiz-api/internal/interfaces/http"
	"github.com/cotizapp/cotiz-api/pkg/config"
	"github.com/cotizapp/cotiz-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	levelRepo := postgres.NewApprovalLevelRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	decisionRepo := postgres.NewApprovalDecisionRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stream := events.NewStream()
	resolver := domapproval.NewResolver(log.Component("resolver"))

	authUC := auth.NewAuthUseCase(userRepo, clientRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo)
	levelUC := usecase.NewLevelUseCase(levelRepo)
	quoteUC := usecase.NewQuoteUseCase(txRunner, quoteRepo, supplierRepo, costCenterRepo)
	approvalUC := appapproval.NewUseCase(txRunner, quoteRepo, levelRepo, decisionRepo, resolver, stream, log.Component("approval"))
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	ratingUC := usecase.NewRatingUseCase(ratingRepo, supplierRepo, quoteRepo)
	costCenterUC := usecase.NewCostCenterUseCase(costCenterRepo)
	announcementUC := usecase.NewAnnouncementUseCase(announcementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotiz API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		LevelUC:        levelUC,
		QuoteUC:        quoteUC,
		ApprovalUC:     approvalUC,
		SupplierUC:     supplierUC,
		RatingUC:       ratingUC,
		CostCenterUC:   costCenterUC,
		AnnouncementUC: announcementUC,
		EventStream:    stream,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
