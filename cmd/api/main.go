package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/streetwear-admin-api/internal/application/analytics"
	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	appinventory "github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/application/orders"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/application/usecase"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/streetwear-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/revalidation"
	httpRouter "github.com/jhoicas/streetwear-admin-api/internal/interfaces/http"
	"github.com/jhoicas/streetwear-admin-api/pkg/config"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL o store en memoria (DB_DRIVER=memory)
	var (
		txRunner ports.TxRunner
		repos    ports.Repos
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("usando store en memoria; los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			log.Info().Strs("applied", applied).Msg("migraciones al día")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	// Revalidación de caché: RabbitMQ si hay broker, si no solo log
	var revalidator ports.Revalidator = revalidation.NewLogRevalidator(log)
	if cfg.RabbitMQ.Enabled() {
		dialCtx, cancelDial := context.WithTimeout(ctx, 15*time.Second)
		publisher, err := revalidation.NewAMQPPublisher(dialCtx, cfg.RabbitMQ, log)
		cancelDial()
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ no disponible; las revalidaciones solo se registran en el log")
		} else {
			defer publisher.Close()
			revalidator = publisher
		}
	}

	formatter, err := money.NewFormatter(cfg.Store.Currency, cfg.Store.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("formato de moneda")
	}

	stockUC := appinventory.NewStockUseCase(txRunner, repos.Stock, repos.Products, revalidator, log, cfg.Stock.DefaultLowThreshold)
	productUC := usecase.NewProductUseCase(txRunner, repos.Products, repos.Stock, stockUC, revalidator, log)
	investmentUC := usecase.NewInvestmentUseCase(txRunner, repos.Investments, revalidator, log)
	packingSlip := infrapdf.NewPackingSlipGenerator(cfg.App.Name, formatter)
	orderUC := orders.NewOrderUseCase(txRunner, repos.Orders, revalidator, packingSlip, cfg.Orders.StrictTransitions, log)
	dashboardUC := appanalytics.NewDashboardUseCase(orderUC, repos.Investments, repos.Products, repos.Stock, formatter, cfg.Dashboard.RecentOrders)
	auditUC := audit.NewAuditUseCase(repos.Audit)

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío; todas las rutas protegidas responderán 401")
	}

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Streetwear Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		InvestmentUC: investmentUC,
		StockUC:      stockUC,
		OrderUC:      orderUC,
		DashboardUC:  dashboardUC,
		AuditUC:      auditUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		ServiceName:  cfg.App.Name,
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
