package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// CalculateFitmentHandler scores how well a student matches one job.
func CalculateFitmentHandler(c *fiber.Ctx) error {
	var req struct {
		StudentID string `json:"student_id"`
		JobID     string `json:"job_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.StudentID == "" || req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id and job_id are required"})
	}
	db := dbFrom(c)
	student, err := db.GetStudentByID(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	job, err := db.GetJobByAnyID(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	recs, _ := db.GetRecommendations(student.ID)
	result := engineFrom(c).FitmentScore(c.Context(), student, job, recs)
	return c.JSON(fiber.Map{"score": result.Score, "reasoning": result.Reasoning})
}

// ExpressInterestHandler records a student's interest in a job. Repeating the
// same interested application is refused with 409; any other combination
// upserts the single (student, job) row.
func ExpressInterestHandler(c *fiber.Ctx) error {
	var req struct {
		StudentID    string `json:"student_id"`
		JobID        string `json:"job_id"`
		IsInterested bool   `json:"is_interested"`
		FitmentScore *int   `json:"fitment_score"`
	}
	if err := c.BodyParser(&req); err != nil || req.StudentID == "" || req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id and job_id are required"})
	}
	db := dbFrom(c)
	student, err := db.GetStudentByID(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	job, err := db.GetJobByAnyID(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	existing, err := db.GetInterest(student.ID, job.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logFrom(c).Error("interest lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record interest"})
	}
	if existing != nil && existing.IsInterested && req.IsInterested {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "you have already applied to this job",
		})
	}

	score := req.FitmentScore
	if score == nil {
		recs, _ := db.GetRecommendations(student.ID)
		result := engineFrom(c).FitmentScore(c.Context(), student, job, recs)
		score = &result.Score
	}
	status := "not_interested"
	if req.IsInterested {
		status = "applied"
	}
	interest := &models.JobInterest{
		StudentID:    student.ID,
		JobID:        job.ID,
		FitmentScore: score,
		IsInterested: req.IsInterested,
		Status:       status,
	}
	if existing != nil {
		interest.ID = existing.ID
	}
	if err := db.UpsertInterest(interest); err != nil {
		logFrom(c).Error("interest upsert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record interest"})
	}
	return c.JSON(fiber.Map{"success": true, "data": interest})
}
