package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/fitcoach/internal/api"
	"github.com/terraincognita07/fitcoach/internal/cli"
	"github.com/terraincognita07/fitcoach/internal/config"
	"github.com/terraincognita07/fitcoach/internal/db"
	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/logger"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
	"github.com/terraincognita07/fitcoach/internal/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fitcoach: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	time.Local = cfg.Location

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	database, err := openDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	if len(args) > 0 {
		return runCommand(database, args, os.Stdin, os.Stdout)
	}
	return serve(cfg, log, database)
}

func runCommand(database *gorm.DB, args []string, stdin *os.File, stdout io.Writer) error {
	switch args[0] {
	case "reset-password":
		if len(args) != 2 {
			return errors.New("usage: fitcoach reset-password <username>")
		}
		repositories := db.NewRepositories(database)
		auth := services.NewAuthService(repositories.Users, repositories.Plans)
		return cli.RunResetPasswordCommand(context.Background(), auth, args[1], stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(cfg *config.Config, log *logger.Logger, database *gorm.DB) error {
	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	pair, err := loadPredictors(cfg)
	if err != nil {
		return fmt.Errorf("predictor init failed: %w", err)
	}
	catalog, err := plans.LoadCatalog(cfg.PlanCatalogDir)
	if err != nil {
		return fmt.Errorf("plan catalog init failed: %w", err)
	}
	limiter, closeLimiter, err := newLoginLimiter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("login limiter init failed: %w", err)
	}
	defer closeLimiter()

	handler, err := api.NewHandler(database, pair, plans.NewDecoder(catalog), api.Options{
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		Location:     cfg.Location,
		Logger:       log,
		LoginLimiter: limiter,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "FitCoach",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(api.RequestID())
	app.Use(api.RequestLogger(log))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("fitcoach listening", "port", cfg.Port, "db_driver", cfg.DBDriver, "tz", cfg.Location.String())
		return app.Listen(":" + cfg.Port)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return app.ShutdownWithContext(shutdownCtx)
	})
	return group.Wait()
}

func openDatabase(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return db.OpenPostgres(cfg.DatabaseURL, log)
	}
	return db.OpenSQLite(cfg.DBPath, log)
}

// loadPredictors prefers the remote model server when PREDICTOR_URL is set and
// falls back to the bundled tree ensembles.
func loadPredictors(cfg *config.Config) (predict.Pair, error) {
	if cfg.PredictorURL != "" {
		gym, err := predict.NewHTTPModel(predict.HTTPOptions{
			BaseURL:    cfg.PredictorURL,
			APIKey:     cfg.PredictorAPIKey,
			Model:      "gym",
			MaxRetries: cfg.PredictorRetry,
		})
		if err != nil {
			return predict.Pair{}, err
		}
		diet, err := predict.NewHTTPModel(predict.HTTPOptions{
			BaseURL:    cfg.PredictorURL,
			APIKey:     cfg.PredictorAPIKey,
			Model:      "diet",
			MaxRetries: cfg.PredictorRetry,
		})
		if err != nil {
			return predict.Pair{}, err
		}
		return predict.Pair{Gym: gym, Diet: diet}, nil
	}

	gym, err := loadEnsemble(cfg.GymModelPath, fitness.GymFeatureCount)
	if err != nil {
		return predict.Pair{}, err
	}
	diet, err := loadEnsemble(cfg.DietModelPath, fitness.DietFeatureCount)
	if err != nil {
		return predict.Pair{}, err
	}
	return predict.Pair{Gym: gym, Diet: diet}, nil
}

func loadEnsemble(path string, features int) (*predict.TreeEnsemble, error) {
	ensemble, err := predict.LoadTreeEnsemble(path)
	if err != nil {
		return nil, err
	}
	if ensemble.NumFeatures != features {
		return nil, fmt.Errorf("model %s expects %d features, encoder produces %d", path, ensemble.NumFeatures, features)
	}
	return ensemble, nil
}

// newLoginLimiter returns a nil limiter when Redis is not configured; the
// handler then keeps attempts in memory.
func newLoginLimiter(ctx context.Context, cfg *config.Config) (api.LoginLimiter, func(), error) {
	if cfg.RedisAddr == "" {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}

	limiter := api.NewRedisLoginLimiter(client, api.DefaultLoginAttemptLimit, api.DefaultLoginAttemptWindow)
	return limiter, func() { _ = client.Close() }, nil
}
