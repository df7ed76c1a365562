// Package handlers contains the Fiber HTTP surface. Dependencies are injected
// via c.Locals by middleware registered at startup in cmd/serve.go.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/database"
	"github.com/GundamHarshaReddy/Hackokai1/qr"
	"github.com/GundamHarshaReddy/Hackokai1/scoring"
	"github.com/GundamHarshaReddy/Hackokai1/voice"
)

func dbFrom(c *fiber.Ctx) *database.DB {
	return c.Locals("db").(*database.DB)
}

func engineFrom(c *fiber.Ctx) *scoring.Engine {
	return c.Locals("engine").(*scoring.Engine)
}

func parserFrom(c *fiber.Ctx) *voice.Parser {
	return c.Locals("parser").(*voice.Parser)
}

func qrFrom(c *fiber.Ctx) *qr.Service {
	return c.Locals("qr").(*qr.Service)
}

func logFrom(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals("logger").(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// SetupRoutes mounts every endpoint on the app.
func SetupRoutes(app *fiber.App) {
	app.Get("/healthz", HealthzHandler)
	app.Get("/qr", QRRedirectHandler)

	api := app.Group("/api")
	api.Post("/submit-assessment", SubmitAssessmentHandler)
	api.Post("/career-recommendations", CareerRecommendationsHandler)
	api.Post("/calculate-fitment", CalculateFitmentHandler)
	api.Post("/express-interest", ExpressInterestHandler)
	api.Post("/check-phone", CheckPhoneHandler)
	api.Post("/validate-field", ValidateFieldHandler)
	api.Post("/parse-voice-input", ParseVoiceInputHandler)
	api.Post("/student-summary", StudentSummaryHandler)

	api.Post("/post-job", PostJobHandler)
	api.Get("/jobs", JobsHandler)
	api.Get("/jobs-by-career", JobsByCareerHandler)
	api.Get("/jobs/:id", JobDetailHandler)
	api.Delete("/jobs/:id", DeleteJobHandler)
	api.Get("/jobs/:id/qr.png", JobQRImageHandler)

	api.Get("/students", StudentsHandler)
	api.Get("/students/:id", StudentDetailHandler)
	api.Delete("/students/:id", DeleteStudentHandler)

	api.Get("/stats", StatsHandler)
	api.Post("/admin/fix-qr-codes", FixQRCodesHandler)
}

// HealthzHandler answers liveness probes.
func HealthzHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// StatsHandler returns platform totals and the job-type breakdown.
func StatsHandler(c *fiber.Ctx) error {
	stats, err := dbFrom(c).GetStats()
	if err != nil {
		logFrom(c).Error("stats query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load stats"})
	}
	return c.JSON(stats)
}
