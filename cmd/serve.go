package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/ai"
	"github.com/GundamHarshaReddy/Hackokai1/config"
	"github.com/GundamHarshaReddy/Hackokai1/database"
	"github.com/GundamHarshaReddy/Hackokai1/handlers"
	"github.com/GundamHarshaReddy/Hackokai1/logger"
	"github.com/GundamHarshaReddy/Hackokai1/qr"
	"github.com/GundamHarshaReddy/Hackokai1/scoring"
	"github.com/GundamHarshaReddy/Hackokai1/voice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	if gen != nil {
		log.Info("ai provider ready", zap.String("provider", cfg.AIProvider), zap.String("model", gen.Model()))
	} else {
		log.Info("no ai provider configured, using deterministic fallbacks")
	}

	engine := scoring.NewEngine(gen, log)
	parser := voice.NewParser(gen, log)
	qrSvc := qr.New(cfg.BaseURL)

	app := fiber.New(fiber.Config{AppName: app})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("db", db)
		c.Locals("engine", engine)
		c.Locals("parser", parser)
		c.Locals("qr", qrSvc)
		c.Locals("logger", log)
		return c.Next()
	})
	handlers.SetupRoutes(app)

	startQRSweep(db, qrSvc, log)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("base_url", cfg.BaseURL))
	return app.Listen(addr)
}

func newGenerator(cfg *config.Config) (ai.Generator, error) {
	switch strings.ToLower(cfg.AIProvider) {
	case "openai":
		gen, err := ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "gemini":
		gen, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}
}

// startQRSweep repairs missing or stale QR image URLs hourly, covering jobs
// imported before the base URL changed.
func startQRSweep(db *database.DB, qrSvc *qr.Service, log *zap.Logger) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		jobs, err := db.JobsMissingQR()
		if err != nil {
			log.Error("qr sweep query failed", zap.Error(err))
			return
		}
		for _, job := range jobs {
			if err := db.UpdateJobQR(job.ID, qrSvc.ImageURL(job.JobID)); err != nil {
				log.Error("qr sweep update failed", zap.String("job_id", job.JobID), zap.Error(err))
			}
		}
		if len(jobs) > 0 {
			log.Info("qr sweep repaired jobs", zap.Int("count", len(jobs)))
		}
	})
	if err != nil {
		log.Error("qr sweep schedule failed", zap.Error(err))
		return
	}
	c.Start()
}
