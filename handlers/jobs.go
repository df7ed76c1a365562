package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/GundamHarshaReddy/Hackokai1/models"
	"github.com/GundamHarshaReddy/Hackokai1/scoring"
)

type postJobRequest struct {
	CompanyName    string   `json:"company_name"`
	JobTitle       string   `json:"job_title"`
	JobDescription string   `json:"job_description"`
	JobType        string   `json:"job_type"`
	Location       string   `json:"location"`
	SalaryStipend  string   `json:"salary_stipend"`
	KeySkills      []string `json:"key_skills"`
	ContactName    string   `json:"contact_name"`
	ContactNumber  string   `json:"contact_number"`
}

// PostJobHandler creates a job posting, assigning its JOB token and QR code.
func PostJobHandler(c *fiber.Ctx) error {
	var req postJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	for field, value := range map[string]string{
		"company_name":    req.CompanyName,
		"job_title":       req.JobTitle,
		"job_description": req.JobDescription,
		"job_type":        req.JobType,
		"location":        req.Location,
	} {
		if strings.TrimSpace(value) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": field + " is required"})
		}
	}
	if !models.ValidJobType(req.JobType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "job_type must be one of " + strings.Join(models.JobTypes, ", ")})
	}

	db := dbFrom(c)
	qrSvc := qrFrom(c)
	job := &models.Job{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		JobType:        req.JobType,
		Location:       req.Location,
		SalaryStipend:  req.SalaryStipend,
		KeySkills:      datatypes.NewJSONSlice(req.KeySkills),
		ContactName:    req.ContactName,
		ContactNumber:  req.ContactNumber,
		RoleCategory:   scoring.ClassifyRole(req.JobTitle),
	}

	// A random JOB_NNNN token can collide with an existing row; retry with a
	// fresh token instead of failing the post.
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		job.ID = ""
		job.JobID = qrSvc.NewToken()
		job.QRCodeURL = qrSvc.ImageURL(job.JobID)
		if err = db.CreateJob(job); err == nil {
			break
		}
	}
	if err != nil {
		logFrom(c).Error("job create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create job"})
	}

	return c.JSON(fiber.Map{"success": true, "job": job})
}

// JobsHandler lists every posting.
func JobsHandler(c *fiber.Ctx) error {
	jobs, err := dbFrom(c).GetJobs()
	if err != nil {
		logFrom(c).Error("job list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load jobs"})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// JobDetailHandler fetches one posting by row id or JOB token.
func JobDetailHandler(c *fiber.Ctx) error {
	job, err := dbFrom(c).GetJobByAnyID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(fiber.Map{"job": job})
}

// DeleteJobHandler removes a posting and its interest rows.
func DeleteJobHandler(c *fiber.Ctx) error {
	db := dbFrom(c)
	if _, err := db.GetJobByAnyID(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	if err := db.DeleteJob(c.Params("id")); err != nil {
		logFrom(c).Error("job delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete job"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// JobQRImageHandler proxies the QR PNG so it can be printed or downloaded
// same-origin. If the upstream fetch fails the client is redirected to the raw
// image URL instead.
func JobQRImageHandler(c *fiber.Ctx) error {
	job, err := dbFrom(c).GetJobByAnyID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	qrSvc := qrFrom(c)
	imageURL := job.QRCodeURL
	if imageURL == "" {
		imageURL = qrSvc.ImageURL(job.JobID)
	}
	png, err := qrSvc.FetchImage(c.Context(), imageURL)
	if err != nil {
		logFrom(c).Warn("qr image fetch failed, redirecting to source",
			zap.String("job_id", job.JobID), zap.Error(err))
		return c.Redirect(imageURL, fiber.StatusFound)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// JobsByCareerHandler filters postings by a recommended role. The role title
// is mapped to a category code so "Software Developer" matches "Backend
// Engineer" postings rather than requiring a substring hit.
func JobsByCareerHandler(c *fiber.Ctx) error {
	careerType := strings.TrimSpace(c.Query("careerType"))
	if careerType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "careerType is required"})
	}
	category := careerType
	if !scoring.IsCategory(category) {
		category = scoring.ClassifyRole(careerType)
	}
	jobs, err := dbFrom(c).GetJobsByCategory(category)
	if err != nil {
		logFrom(c).Error("jobs-by-career query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load jobs"})
	}
	return c.JSON(fiber.Map{"career_type": careerType, "category": category, "jobs": jobs})
}

// QRRedirectHandler resolves a scanned QR token to the job deep link.
func QRRedirectHandler(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}
	job, err := dbFrom(c).GetJobByAnyID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.Redirect(qrFrom(c).JobLink(job.JobID), fiber.StatusFound)
}

// FixQRCodesHandler regenerates qr_code_url for jobs whose stored URL is
// missing or encodes a stale token.
func FixQRCodesHandler(c *fiber.Ctx) error {
	db := dbFrom(c)
	qrSvc := qrFrom(c)
	jobs, err := db.JobsMissingQR()
	if err != nil {
		logFrom(c).Error("qr sweep query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to scan jobs"})
	}
	fixed := 0
	for _, job := range jobs {
		if err := db.UpdateJobQR(job.ID, qrSvc.ImageURL(job.JobID)); err != nil {
			logFrom(c).Error("qr update failed", zap.String("job_id", job.JobID), zap.Error(err))
			continue
		}
		fixed++
	}
	return c.JSON(fiber.Map{"success": true, "checked": len(jobs), "fixed": fixed})
}

// ParseVoiceInputHandler extracts job-posting fields from a spoken transcript.
// The result is advisory; it never fails.
func ParseVoiceInputHandler(c *fiber.Ctx) error {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	fields := parserFrom(c).Parse(c.Context(), req.Transcript)
	return c.JSON(fiber.Map{"success": true, "fields": fields})
}
