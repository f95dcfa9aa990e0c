package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dval/hmis/internal/config"
	"github.com/dval/hmis/internal/domain/admin"
	"github.com/dval/hmis/internal/domain/billing"
	"github.com/dval/hmis/internal/domain/clinical"
	"github.com/dval/hmis/internal/domain/diagnostics"
	"github.com/dval/hmis/internal/domain/encounter"
	"github.com/dval/hmis/internal/domain/hospital"
	"github.com/dval/hmis/internal/domain/identity"
	"github.com/dval/hmis/internal/domain/medication"
	"github.com/dval/hmis/internal/domain/scheduling"
	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hmis-server",
		Short: "Hospital management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(bootstrapCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, migrationsDir(dir, cfg)).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrationsDir(dir, cfg)).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(statusCmd)

	return cmd
}

// bootstrapCmd registers an administrator and hospital from the command line,
// through the same transactional path as POST /auth/signup.
func bootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create an administrator and their hospital",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			req := &hospital.SignupRequest{}
			req.FullName, _ = flags.GetString("admin-name")
			req.Email, _ = flags.GetString("admin-email")
			req.Password, _ = flags.GetString("admin-password")
			req.HospitalName, _ = flags.GetString("hospital-name")
			if location, _ := flags.GetString("location"); location != "" {
				req.Location = &location
			}
			if req.Email == "" || req.Password == "" || req.HospitalName == "" {
				return fmt.Errorf("--admin-email, --admin-password and --hospital-name are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := hospitalService(pool, auth.NewTokenIssuer([]byte(cfg.JWTSecret)), cfg)
			res, err := svc.Signup(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created admin %d and hospital %d.\n", res.AdminID, res.HospitalID)
			fmt.Printf("Token: %s\n", res.Token)
			return nil
		},
	}
	cmd.Flags().String("admin-name", "Administrator", "Administrator full name")
	cmd.Flags().String("admin-email", "", "Administrator email")
	cmd.Flags().String("admin-password", "", "Administrator password")
	cmd.Flags().String("hospital-name", "", "Hospital name")
	cmd.Flags().String("location", "", "Hospital location")
	return cmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(level)
	}
	return logger
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return db.NewPool(ctx, db.PoolConfig{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DBMaxConns,
		MinConns:       cfg.DBMinConns,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
}

func migrationsDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.MigrationsDir
}

func hospitalService(pool *pgxpool.Pool, issuer auth.Issuer, cfg *config.Config) *hospital.Service {
	return hospital.NewService(
		hospital.NewAdminRepo(pool),
		hospital.NewHospitalRepo(pool),
		db.NewTxRunner(pool),
		issuer,
		hospital.AccountConfig{BcryptCost: cfg.BcryptCost, TokenTTL: cfg.AdminTokenTTL},
	)
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.UsesDevSecret() {
		logger.Warn().Msg("JWT_SECRET not set, signing tokens with the development secret")
	}

	// Database
	ctx := context.Background()
	pool, err := openPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Token revocations
	var revocations auth.RevocationStore
	if cfg.RedisURL != "" {
		client, err := auth.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		revocations = auth.NewRedisRevocationStore(client)
		logger.Info().Msg("token revocations stored in redis")
	} else {
		mem := auth.NewMemoryRevocationStore(time.Minute)
		defer mem.Close()
		revocations = mem
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := newServer(cfg, logger, pool, revocations, reg)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer builds the Echo instance with the global middleware chain and
// every route mounted.
func newServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool, revocations auth.RevocationStore, reg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret))
	metrics := middleware.NewMetrics(reg)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           5 * time.Minute,
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(auth.Middleware(auth.MiddlewareConfig{
		Issuer:      issuer,
		Revocations: revocations,
		Skipper:     auth.Skipper,
	}))
	e.Use(db.TenantMiddleware(auth.Skipper))

	// Operational endpoints
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", metrics.Handler())

	// Accounts and tenants
	hospitalHandler := hospital.NewHandler(hospitalService(pool, issuer, cfg))
	hospitalHandler.RegisterAuthRoutes(e.Group("/auth"))
	auth.RegisterRevocationRoutes(e, revocations)

	api := e.Group("/api")
	hospitalHandler.RegisterRoutes(api)

	adminSvc := admin.NewService(admin.NewDepartmentRepo(pool), admin.NewStaffRepo(pool), issuer, admin.StaffConfig{
		BcryptCost: cfg.BcryptCost,
		TokenTTL:   cfg.StaffTokenTTL,
	})
	adminHandler := admin.NewHandler(adminSvc)
	adminHandler.RegisterDepartmentRoutes(e.Group("/departments"))
	adminHandler.RegisterStaffRoutes(e.Group("/staff"))

	// Patients
	identity.NewHandler(identity.NewService(identity.NewPatientRepo(pool))).RegisterRoutes(api)

	// Clinical workflow
	scheduling.NewHandler(scheduling.NewService(scheduling.NewAppointmentRepo(pool))).RegisterRoutes(e.Group(""))
	encounter.NewHandler(encounter.NewService(encounter.NewConsultationRepo(pool))).RegisterRoutes(e.Group("/consultations"))
	diagnostics.NewHandler(diagnostics.NewService(diagnostics.NewLabTestRepo(pool))).RegisterRoutes(e.Group("/lab"))
	clinical.NewHandler(clinical.NewService(clinical.NewMedicalRecordRepo(pool))).RegisterRoutes(e.Group("/records"))
	medication.NewHandler(medication.NewService(medication.NewPrescriptionRepo(pool))).RegisterRoutes(e.Group("/prescriptions"))
	billing.NewHandler(billing.NewService(billing.NewBillRepo(pool))).RegisterRoutes(e.Group("/bill"))

	return e
}
