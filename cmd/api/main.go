package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/auth"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/orders"
	appsync "github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/sync"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/usecase"
	infrapdf "github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/pdf"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/postgres"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
	httpRouter "github.com/zhanikpanik/restaurant-checklist-sub002/internal/interfaces/http"
	"github.com/zhanikpanik/restaurant-checklist-sub002/pkg/config"
	"github.com/zhanikpanik/restaurant-checklist-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Todo acceso tenant pasa por el runner: fija app.restaurant_id en la
	// conexión antes de entregar los repositorios.
	runner := postgres.NewTenantRunner(pool)

	posClient := poster.NewClient(
		cfg.Poster.BaseURL,
		time.Duration(cfg.Poster.TimeoutSeconds)*time.Second,
	)
	posTimeout := time.Duration(cfg.Poster.TimeoutSeconds) * time.Second

	authUC := auth.NewAuthUseCase(runner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	restaurantUC := usecase.NewRestaurantUseCase(runner, posClient)
	sectionUC := usecase.NewSectionUseCase(runner)
	supplierUC := usecase.NewSupplierUseCase(runner)
	productUC := usecase.NewProductUseCase(runner)
	userUC := usecase.NewUserUseCase(runner)

	// PDF: versión imprimible del pedido para el proveedor
	pdfGenerator := infrapdf.NewMarotoOrderPDFGenerator()
	orderUC := orders.NewUseCase(runner, posClient, pdfGenerator, log, posTimeout)

	reconciler := appsync.NewReconciler(
		runner, posClient, log,
		time.Duration(cfg.Sync.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Sync.StaleHours)*time.Hour,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if !httpRouter.RegisterSwagger(app, "./docs/swagger.json", cfg.App.Name) {
		log.Warn().Msg("docs/swagger.json no encontrado, UI de swagger deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RestaurantUC: restaurantUC,
		SectionUC:    sectionUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		UserUC:       userUC,
		OrderUC:      orderUC,
		Reconciler:   reconciler,
		JWTSecret:    cfg.JWT.Secret,
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
