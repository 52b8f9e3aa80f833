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

	"github.com/comandapos/comanda-api/internal/application/auth"
	"github.com/comandapos/comanda-api/internal/application/business"
	"github.com/comandapos/comanda-api/internal/application/catalog"
	"github.com/comandapos/comanda-api/internal/application/inventory"
	"github.com/comandapos/comanda-api/internal/application/orders"
	"github.com/comandapos/comanda-api/internal/application/reporting"
	"github.com/comandapos/comanda-api/internal/application/tables"
	infrapdf "github.com/comandapos/comanda-api/internal/infrastructure/pdf"
	"github.com/comandapos/comanda-api/internal/infrastructure/postgres"
	"github.com/comandapos/comanda-api/internal/infrastructure/printer"
	"github.com/comandapos/comanda-api/internal/infrastructure/storage"
	httpRouter "github.com/comandapos/comanda-api/internal/interfaces/http"
	"github.com/comandapos/comanda-api/pkg/config"
	"github.com/comandapos/comanda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, "info")
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	tableRepo := postgres.NewTableRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bridgeClient := printer.NewBridgeClient(cfg.Printer, log)
	logoStore := storage.NewLocalLogoStore(cfg.Storage)
	ticketPDF := infrapdf.NewTicketPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, cfg.JWT)
	catalogUC := catalog.NewCatalogUseCase(categoryRepo, productRepo)
	tableUC := tables.NewTableUseCase(tableRepo)
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, productRepo, tableRepo, userRepo, businessRepo, bridgeClient, log)
	inventoryUC := inventory.NewInventoryUseCase(txRunner, itemRepo, movRepo)
	businessUC := business.NewBusinessUseCase(businessRepo, logoStore)
	reportingUC := reporting.NewReportingUseCase(orderRepo, itemRepo)

	// Feed en tiempo real: pg_notify -> hub -> websockets
	hub := httpRouter.NewOrderHub(log)
	listener := postgres.NewOrderListener(pool, hub.Broadcast, log)
	go listener.Run(ctx)

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
		Title:    "Comanda API",
	}))

	// Archivos subidos (logos) servidos como estáticos
	app.Static(cfg.Storage.PublicBaseURL, cfg.Storage.Dir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		TableUC:     tableUC,
		OrderUC:     orderUC,
		InventoryUC: inventoryUC,
		BusinessUC:  businessUC,
		ReportingUC: reportingUC,
		TicketPDF:   ticketPDF,
		OrderHub:    hub,
		JWTSecret:   cfg.JWT.Secret,
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
	cancelApp() // detiene el listener de eventos

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
