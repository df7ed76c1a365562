package handlers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GundamHarshaReddy/Hackokai1/assessment"
	"github.com/GundamHarshaReddy/Hackokai1/database"
	"github.com/GundamHarshaReddy/Hackokai1/models"
	"github.com/GundamHarshaReddy/Hackokai1/scoring"
)

var tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

// SubmitAssessmentHandler validates a completed assessment, persists the
// profile (overwriting a prior submission by the same email or phone), and
// returns freshly computed recommendations.
func SubmitAssessmentHandler(c *fiber.Ctx) error {
	var sub assessment.Submission
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if sub.TouchedSliders == nil {
		// API clients do not track slider interaction; a present value counts.
		sub.TouchedSliders = make(map[string]bool, len(sub.WorkPreferences))
		for k := range sub.WorkPreferences {
			sub.TouchedSliders[k] = true
		}
	}
	if err := assessment.ValidateSubmission(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	student := &models.Student{
		Name:              sub.Name,
		Email:             sub.Email,
		Phone:             sub.Phone,
		EducationDegree:   sub.EducationDegree,
		Specialization:    sub.Specialization,
		CoreValues:        datatypes.NewJSONSlice(sub.CoreValues),
		WorkPreferences:   datatypes.NewJSONType(sub.WorkPreferences),
		PersonalityScores: datatypes.NewJSONType(sub.PersonalityScores),
	}

	db := dbFrom(c)
	if err := db.UpsertStudent(student); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "email and phone belong to different profiles",
			})
		}
		logFrom(c).Error("student upsert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}

	recs := engineFrom(c).Recommend(c.Context(), student)
	rows := recommendationRows(student.ID, recs)
	if err := db.ReplaceRecommendations(student.ID, rows); err != nil {
		logFrom(c).Error("recommendation save failed", zap.Error(err), zap.String("student_id", student.ID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save recommendations"})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"student":         student,
		"recommendations": rows,
	})
}

func recommendationRows(studentID string, recs []scoring.Recommendation) []models.CareerRecommendation {
	rows := make([]models.CareerRecommendation, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, models.CareerRecommendation{
			StudentID:    studentID,
			Role:         r.Role,
			MatchScore:   r.Match,
			Explanation:  r.Explanation,
			JobOpenings:  r.Openings,
			RoleCategory: scoring.ClassifyRole(r.Role),
		})
	}
	return rows
}

// CareerRecommendationsHandler returns the stored recommendation set for a
// student, recomputing it when none exists yet.
func CareerRecommendationsHandler(c *fiber.Ctx) error {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.StudentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id is required"})
	}
	db := dbFrom(c)
	student, err := db.GetStudentByID(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	rows, err := db.GetRecommendations(student.ID)
	if err != nil {
		logFrom(c).Error("recommendation query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load recommendations"})
	}
	if len(rows) == 0 {
		rows = recommendationRows(student.ID, engineFrom(c).Recommend(c.Context(), student))
		if err := db.ReplaceRecommendations(student.ID, rows); err != nil {
			logFrom(c).Error("recommendation save failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save recommendations"})
		}
	}
	return c.JSON(fiber.Map{"success": true, "recommendations": rows})
}

// CheckPhoneHandler reports whether a phone number already has a profile, so
// returning students skip straight to their results.
func CheckPhoneHandler(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil || !tenDigits.MatchString(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "phone must be 10 digits"})
	}
	student, err := dbFrom(c).GetStudentByPhone(req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"exists": false})
		}
		logFrom(c).Error("phone lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(fiber.Map{
		"exists":                   true,
		"student_id":               student.ID,
		"student_name":             student.Name,
		"has_completed_assessment": len(student.CoreValues) == 5,
		"student_data":             student,
	})
}

// ValidateFieldHandler checks email/phone uniqueness while the form is being
// typed. It fails open: any internal error still reports the value as valid.
func ValidateFieldHandler(c *fiber.Ctx) error {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"valid": true})
	}
	db := dbFrom(c)
	switch req.Field {
	case "phone":
		if !tenDigits.MatchString(req.Value) {
			return c.JSON(fiber.Map{"valid": false, "message": "phone must be 10 digits"})
		}
		if _, err := db.GetStudentByPhone(req.Value); err == nil {
			return c.JSON(fiber.Map{"valid": false, "message": "phone already registered"})
		}
	case "email":
		if _, err := db.GetStudentByEmail(req.Value); err == nil {
			return c.JSON(fiber.Map{"valid": false, "message": "email already registered"})
		}
	}
	return c.JSON(fiber.Map{"valid": true})
}

// StudentSummaryHandler produces a short narrative profile for a student.
func StudentSummaryHandler(c *fiber.Ctx) error {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.StudentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id is required"})
	}
	db := dbFrom(c)
	student, err := db.GetStudentByID(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	recs, _ := db.GetRecommendations(student.ID)
	summary := engineFrom(c).Summarize(c.Context(), student, recs)
	return c.JSON(fiber.Map{"success": true, "summary": summary})
}

// StudentsHandler lists every student profile.
func StudentsHandler(c *fiber.Ctx) error {
	students, err := dbFrom(c).GetStudents()
	if err != nil {
		logFrom(c).Error("student list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load students"})
	}
	return c.JSON(fiber.Map{"students": students})
}

// StudentDetailHandler returns one student with their recommendations and
// interest rows.
func StudentDetailHandler(c *fiber.Ctx) error {
	db := dbFrom(c)
	student, err := db.GetStudentByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	recs, _ := db.GetRecommendations(student.ID)
	interests, _ := db.GetStudentInterests(student.ID)
	return c.JSON(fiber.Map{
		"student":         student,
		"recommendations": recs,
		"interests":       interests,
	})
}

// DeleteStudentHandler removes a student and their dependent rows.
func DeleteStudentHandler(c *fiber.Ctx) error {
	db := dbFrom(c)
	if _, err := db.GetStudentByID(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "student not found"})
	}
	if err := db.DeleteStudent(c.Params("id")); err != nil {
		logFrom(c).Error("student delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete student"})
	}
	return c.JSON(fiber.Map{"success": true})
}
