// Package database is the persistence gateway: typed queries over the four
// entities backed by SQLite through GORM. Upsert-on-conflict is the only
// concurrency control the interest join needs.
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// ErrConflict is returned when a write would merge two distinct students.
var ErrConflict = errors.New("database: conflicting student identity")

// ErrNotFound wraps gorm.ErrRecordNotFound for callers that do not want to
// import gorm.
var ErrNotFound = gorm.ErrRecordNotFound

// DB wraps the gorm handle with the application's query surface.
type DB struct {
	*gorm.DB
}

// InitDB opens (creating if needed) the SQLite file and migrates the schema.
func InitDB(path string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := gdb.AutoMigrate(
		&models.Student{},
		&models.Job{},
		&models.CareerRecommendation{},
		&models.JobInterest{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &DB{gdb}, nil
}

// --- jobs ---

// CreateJob inserts a job, assigning a row id when absent. The JOB_ token must
// already be set; a token collision surfaces as the driver's unique error.
func (db *DB) CreateJob(job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return db.Create(job).Error
}

// GetJobs returns all jobs, newest first.
func (db *DB) GetJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := db.Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

// GetJobByAnyID resolves either a row id or a JOB_ token; the two are
// interchangeable everywhere a job is referenced.
func (db *DB) GetJobByAnyID(id string) (*models.Job, error) {
	var job models.Job
	q := db.Where("id = ?", id)
	if strings.HasPrefix(id, "JOB_") {
		q = db.Where("job_id = ?", id)
	}
	if err := q.First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobsByCategory returns jobs whose role category matches.
func (db *DB) GetJobsByCategory(category string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("role_category = ?", category).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

// DeleteJob removes a job and its interest rows.
func (db *DB) DeleteJob(id string) error {
	job, err := db.GetJobByAnyID(id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.JobInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", job.ID).Error
	})
}

// JobsMissingQR lists jobs whose QR image URL was never set or no longer
// encodes their own token.
func (db *DB) JobsMissingQR() ([]models.Job, error) {
	var jobs []models.Job
	if err := db.Find(&jobs).Error; err != nil {
		return nil, err
	}
	missing := jobs[:0]
	for _, j := range jobs {
		if j.QRCodeURL == "" || !strings.Contains(j.QRCodeURL, j.JobID) {
			missing = append(missing, j)
		}
	}
	return missing, nil
}

// UpdateJobQR stores a regenerated QR image URL.
func (db *DB) UpdateJobQR(id, qrURL string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).Update("qr_code_url", qrURL).Error
}

// --- students ---

// UpsertStudent writes a student profile. A row already holding the same
// email or phone is overwritten in place; if email and phone resolve to two
// different rows the write is refused with ErrConflict.
func (db *DB) UpsertStudent(student *models.Student) error {
	byEmail, err := db.GetStudentByEmail(student.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	byPhone, err := db.GetStudentByPhone(student.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if byEmail != nil && byPhone != nil && byEmail.ID != byPhone.ID {
		return ErrConflict
	}
	existing := byEmail
	if existing == nil {
		existing = byPhone
	}
	if existing != nil {
		student.ID = existing.ID
		student.CreatedAt = existing.CreatedAt
		return db.Save(student).Error
	}
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	return db.Create(student).Error
}

// GetStudents returns every student profile, newest first.
func (db *DB) GetStudents() ([]models.Student, error) {
	var students []models.Student
	err := db.Order("created_at desc").Find(&students).Error
	return students, err
}

// GetStudentByID fetches one student by row id.
func (db *DB) GetStudentByID(id string) (*models.Student, error) {
	var s models.Student
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStudentByEmail fetches one student by email.
func (db *DB) GetStudentByEmail(email string) (*models.Student, error) {
	var s models.Student
	if err := db.First(&s, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStudentByPhone fetches one student by phone number.
func (db *DB) GetStudentByPhone(phone string) (*models.Student, error) {
	var s models.Student
	if err := db.First(&s, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteStudent removes a student plus their recommendations and interests.
func (db *DB) DeleteStudent(id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.CareerRecommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.JobInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, "id = ?", id).Error
	})
}

// --- recommendations ---

// ReplaceRecommendations swaps a student's recommendation set atomically, so a
// re-submission never leaves rows from the previous assessment behind.
func (db *DB) ReplaceRecommendations(studentID string, recs []models.CareerRecommendation) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).Delete(&models.CareerRecommendation{}).Error; err != nil {
			return err
		}
		for i := range recs {
			if recs[i].ID == "" {
				recs[i].ID = uuid.NewString()
			}
			recs[i].StudentID = studentID
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
}

// GetRecommendations returns a student's recommendations, best match first.
func (db *DB) GetRecommendations(studentID string) ([]models.CareerRecommendation, error) {
	var recs []models.CareerRecommendation
	err := db.Where("student_id = ?", studentID).Order("match_score desc").Find(&recs).Error
	return recs, err
}

// --- interests ---

// UpsertInterest records or refreshes a student's interest in a job. The
// (student_id, job_id) pair is the identity; a second write updates the
// existing row's score, flag and status.
func (db *DB) UpsertInterest(interest *models.JobInterest) error {
	if interest.ID == "" {
		interest.ID = uuid.NewString()
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fitment_score", "is_interested", "status", "updated_at",
		}),
	}).Create(interest).Error
}

// GetInterest fetches one interest row by its pair identity.
func (db *DB) GetInterest(studentID, jobID string) (*models.JobInterest, error) {
	var in models.JobInterest
	err := db.Where("student_id = ? AND job_id = ?", studentID, jobID).First(&in).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// GetStudentInterests lists a student's interest rows, newest first.
func (db *DB) GetStudentInterests(studentID string) ([]models.JobInterest, error) {
	var ins []models.JobInterest
	err := db.Where("student_id = ?", studentID).Order("created_at desc").Find(&ins).Error
	return ins, err
}

// GetJobInterests lists every interest row for a job.
func (db *DB) GetJobInterests(jobID string) ([]models.JobInterest, error) {
	var ins []models.JobInterest
	err := db.Where("job_id = ?", jobID).Order("created_at desc").Find(&ins).Error
	return ins, err
}

// --- stats ---

// GetStats aggregates platform counters for the dashboard endpoint.
func (db *DB) GetStats() (*models.Stats, error) {
	var stats models.Stats
	if err := db.Model(&models.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Job{}).Count(&stats.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.JobInterest{}).Where("is_interested = ?", true).Count(&stats.TotalInterests).Error; err != nil {
		return nil, err
	}
	rows := []struct {
		JobType string
		N       int64
	}{}
	if err := db.Model(&models.Job{}).
		Select("job_type, count(*) as n").
		Group("job_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		switch r.JobType {
		case models.JobTypeInternship:
			stats.Internships = r.N
		case models.JobTypeFullTime:
			stats.FullTime = r.N
		case models.JobTypeFreelance:
			stats.Freelance = r.N
		case models.JobTypeContract:
			stats.Contract = r.N
		}
	}
	return &stats, nil
}
