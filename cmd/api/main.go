package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/almacen-erp/internal/application/auth"
	appddt "github.com/tu-usuario/almacen-erp/internal/application/ddt"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/application/listeners"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/application/usecase"
	"github.com/tu-usuario/almacen-erp/internal/infrastructure/cache"
	"github.com/tu-usuario/almacen-erp/internal/infrastructure/notify"
	"github.com/tu-usuario/almacen-erp/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-erp/internal/interfaces/http"
	"github.com/tu-usuario/almacen-erp/pkg/config"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repositorios sobre el pool (lecturas fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	ddtRepo := postgres.NewDdtRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de bodegas: Redis si está configurado, noop si no
	type warehouseCacheStore interface {
		listeners.WarehouseCache
		usecase.WarehouseCacheReader
	}
	var warehouseCache warehouseCacheStore = cache.NoopWarehouseCache{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		warehouseCache = cache.NewRedisWarehouseCache(redisClient)
	}

	notifier := notify.NewLogNotifier(log)

	// Dispatcher y casos de uso. ReverseUC se construye primero porque el
	// listener de cancelación de DDT delega en él.
	dispatcher := events.NewDispatcher(log)
	adjustUC := inventory.NewAdjustInventoryUseCase(txRunner, warehouseRepo, dispatcher)
	reserveUC := inventory.NewReserveInventoryUseCase(txRunner, dispatcher)
	releaseUC := inventory.NewReleaseReservationUseCase(txRunner, dispatcher)
	reverseUC := stockmovement.NewReverseStockMovementUseCase(txRunner, dispatcher)
	duplicates := stockmovement.NewDuplicateMovementReport(movRepo, productRepo, warehouseRepo, siteRepo)
	confirmUC := appddt.NewConfirmDdtUseCase(txRunner, dispatcher)
	cancelUC := appddt.NewCancelDdtUseCase(txRunner, dispatcher)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, warehouseCache, dispatcher)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	listeners.Register(dispatcher, listeners.Deps{
		GenerateDdtMovements: listeners.NewGenerateDdtMovementsListener(txRunner, dispatcher, log),
		ReverseDdtMovements:  listeners.NewReverseDdtMovementsListener(movRepo, reverseUC, log),
		CheckLowStock:        listeners.NewCheckLowStockListener(invRepo, warehouseRepo, dispatcher, log),
		LogStockMovement:     listeners.NewLogStockMovementListener(log),
		LogInventory:         listeners.NewLogInventoryActivityListener(log),
		LogDdt:               listeners.NewLogDdtActivityListener(log),
		NotifyManager:        listeners.NewNotifyWarehouseManagerListener(warehouseRepo, notifier, log),
		SendLowStockAlert:    listeners.NewSendLowStockAlertListener(notifier, log),
		UpdateWarehouseCache: listeners.NewUpdateWarehouseCacheListener(warehouseCache, log),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WarehouseUC: warehouseUC,
		AdjustUC:    adjustUC,
		ReserveUC:   reserveUC,
		ReleaseUC:   releaseUC,
		ReverseUC:   reverseUC,
		Duplicates:  duplicates,
		ConfirmUC:   confirmUC,
		CancelUC:    cancelUC,
		InvRepo:     invRepo,
		MovRepo:     movRepo,
		DdtRepo:     ddtRepo,
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

	log.Info().Msg("aplicación detenida")
}
