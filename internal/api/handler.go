package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/fitcoach/internal/logger"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
	"github.com/terraincognita07/fitcoach/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	DefaultLoginAttemptLimit  = 8
	DefaultLoginAttemptWindow = 15 * time.Minute
)

type Options struct {
	SecretKey    string
	CookieSecure bool
	Location     *time.Location
	Logger       *logger.Logger
	// LoginLimiter defaults to an in-process limiter.
	LoginLimiter LoginLimiter
}

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	location     *time.Location
	logger       *logger.Logger
	loginLimiter LoginLimiter
	validate     *validator.Validate
	now          func() time.Time

	authService     *services.AuthService
	planService     *services.PlanService
	progressService *services.ProgressService
	exportService   *services.ExportService
}

func NewHandler(database *gorm.DB, pair predict.Pair, decoder *plans.Decoder, opts Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if opts.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	limiter := opts.LoginLimiter
	if limiter == nil {
		limiter = NewMemoryLoginLimiter(DefaultLoginAttemptLimit, DefaultLoginAttemptWindow)
	}

	handler := &Handler{
		secretKey:    []byte(opts.SecretKey),
		cookieSecure: opts.CookieSecure,
		location:     location,
		logger:       log.With("component", "api"),
		loginLimiter: limiter,
		validate:     newValidator(),
		now:          time.Now,
	}
	if err := handler.withDependencies(database, pair, decoder); err != nil {
		return nil, err
	}
	return handler, nil
}
