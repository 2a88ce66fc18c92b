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
	"github.com/jhoicas/gestioncom-api/internal/application/auth"
	"github.com/jhoicas/gestioncom-api/internal/application/category"
	"github.com/jhoicas/gestioncom-api/internal/application/movement"
	"github.com/jhoicas/gestioncom-api/internal/application/product"
	"github.com/jhoicas/gestioncom-api/internal/application/user"
	infrapdf "github.com/jhoicas/gestioncom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestioncom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestioncom-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/gestioncom-api/internal/interfaces/http"
	"github.com/jhoicas/gestioncom-api/pkg/config"
	"github.com/jhoicas/gestioncom-api/pkg/logger"
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

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool, log)

	avatarStore := redisstore.NewAvatarStore(redisClient)
	sessionStore := redisstore.NewSessionStore(redisClient)
	pdfGenerator := infrapdf.NewCatalogGenerator()

	movementUC := movement.NewUseCase(movementRepo)
	productUC := product.NewUseCase(txRunner, productRepo, movementUC, pdfGenerator)
	categoryUC := category.NewUseCase(categoryRepo)
	userUC := user.NewUseCase(userRepo, avatarStore, cfg.Avatar.MaxUploadBytes)
	authUC := auth.NewUseCase(userRepo, sessionStore, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		ExpMinutes:     cfg.JWT.Expiration,
		RefreshMinutes: cfg.JWT.RefreshExpiry,
		Issuer:         cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Avatar.MaxUploadBytes) + 1024*1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GestionCom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
		CategoryUC: categoryUC,
		UserUC:     userUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
