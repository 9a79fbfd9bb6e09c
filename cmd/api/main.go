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

	_ "github.com/jhoicas/pos-inventario/docs"
	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/pos-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/tracing"
	httpRouter "github.com/jhoicas/pos-inventario/internal/interfaces/http"
	"github.com/jhoicas/pos-inventario/pkg/config"
	"github.com/jhoicas/pos-inventario/pkg/logger"
)

// version se inyecta con -ldflags "-X main.version=...".
var version = "dev"

// @title                       POS Inventario API
// @version                     1.0
// @description                 Bodegas, productos, listas de precios y transferencias de stock.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Version: version,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()

	tp, shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.WithTracerProvider(tp))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos de transferencia: solo si hay brokers configurados.
	var events transfer.EventPublisher
	var kafkaPub *messaging.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPub, err = messaging.NewKafkaPublisher(cfg.Kafka, cfg.App.Name, tp)
		if err != nil {
			log.Fatal().Err(err).Msg("publicador Kafka")
		}
		events = kafkaPub
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.TransferTopic).Msg("publicación de eventos activa")
	}

	transferUC := transfer.NewUseCase(
		txRunner, transferRepo,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name),
		events,
		log.Zerolog(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "POS Inventario API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": version})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(userRepo, roleRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo, stockRepo, txRunner),
		ProductUC:   usecase.NewProductUseCase(productRepo, txRunner),
		StockUC:     usecase.NewStockUseCase(stockRepo),
		PriceListUC: usecase.NewPriceListUseCase(priceListRepo, warehouseRepo, stockRepo),
		TransferUC:  transferUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador Kafka")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
