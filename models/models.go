package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job types accepted on posting submission.
const (
	JobTypeInternship = "Internship"
	JobTypeFullTime   = "Full-Time"
	JobTypeFreelance  = "Freelance"
	JobTypeContract   = "Contract"
)

// JobTypes lists every valid job_type value.
var JobTypes = []string{JobTypeInternship, JobTypeFullTime, JobTypeFreelance, JobTypeContract}

// CoreValueCatalog is the fixed 15-item vocabulary students pick exactly 5 from.
var CoreValueCatalog = []string{
	"Innovation",
	"Collaboration",
	"Leadership",
	"Integrity",
	"Excellence",
	"Creativity",
	"Flexibility",
	"Growth",
	"Impact",
	"Balance",
	"Autonomy",
	"Recognition",
	"Security",
	"Adventure",
	"Service",
}

// WorkPreferenceKeys names the five 0-100 sliders of the assessment.
var WorkPreferenceKeys = []string{"independence", "structure", "pace", "innovation", "interaction"}

// PersonalityTraitKeys names the seven 1-5 Likert traits.
var PersonalityTraitKeys = []string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
	"analytical",
	"creative",
}

// Role categories shared by job postings and recommended roles so that
// career-filtered job listings never rely on substring matching of titles.
const (
	CategorySoftware    = "software"
	CategoryData        = "data"
	CategoryMarketing   = "marketing"
	CategoryDesign      = "design"
	CategoryEngineering = "engineering"
	CategoryOperations  = "operations"
	CategoryGeneral     = "general"
)

// Student is a completed (or partially completed) assessment profile.
// Email and phone are unique; a resubmission with either overwrites the
// existing row instead of creating a second one.
type Student struct {
	ID                string                             `gorm:"primaryKey" json:"id"`
	Name              string                             `json:"name"`
	Email             string                             `gorm:"uniqueIndex" json:"email"`
	Phone             string                             `gorm:"uniqueIndex" json:"phone"`
	EducationDegree   string                             `json:"education_degree"`
	Specialization    string                             `json:"specialization"`
	CoreValues        datatypes.JSONSlice[string]        `json:"core_values"`
	WorkPreferences   datatypes.JSONType[map[string]int] `json:"work_preferences"`
	PersonalityScores datatypes.JSONType[map[string]int] `json:"personality_scores"`
	CreatedAt         time.Time                          `json:"created_at"`
	UpdatedAt         time.Time                          `json:"updated_at"`
}

// Job is a posted opening. JobID is the human-readable JOB_NNNN token encoded
// in QR codes; ID is the storage row identifier. Lookups accept both.
type Job struct {
	ID             string                      `gorm:"primaryKey" json:"id"`
	JobID          string                      `gorm:"uniqueIndex" json:"job_id"`
	CompanyName    string                      `json:"company_name"`
	JobTitle       string                      `json:"job_title"`
	JobDescription string                      `json:"job_description"`
	JobType        string                      `json:"job_type"`
	Location       string                      `json:"location"`
	SalaryStipend  string                      `json:"salary_stipend"`
	KeySkills      datatypes.JSONSlice[string] `json:"key_skills"`
	ContactName    string                      `json:"contact_name"`
	ContactNumber  string                      `json:"contact_number"`
	RoleCategory   string                      `gorm:"index" json:"role_category"`
	QRCodeURL      string                      `json:"qr_code_url"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// CareerRecommendation is one ranked role suggestion from a completed
// assessment. A batch of 4-6 rows is written per submission.
type CareerRecommendation struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	StudentID    string    `gorm:"index" json:"student_id"`
	Role         string    `json:"role"`
	MatchScore   int       `json:"match"`
	Explanation  string    `json:"explanation"`
	JobOpenings  int       `json:"openings"`
	RoleCategory string    `gorm:"index" json:"role_category"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobInterest joins students to jobs. The (student_id, job_id) pair is unique;
// concurrent toggles collapse into one row via upsert-on-conflict.
type JobInterest struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	StudentID    string    `gorm:"uniqueIndex:idx_interest_student_job" json:"student_id"`
	JobID        string    `gorm:"uniqueIndex:idx_interest_student_job" json:"job_id"`
	FitmentScore *int      `json:"fitment_score,omitempty"`
	IsInterested bool      `json:"is_interested"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stats is the dashboard aggregate returned by /api/stats.
type Stats struct {
	TotalJobs      int64 `json:"total_jobs"`
	TotalStudents  int64 `json:"total_students"`
	TotalInterests int64 `json:"total_interests"`
	Internships    int64 `json:"internships"`
	FullTime       int64 `json:"full_time"`
	Freelance      int64 `json:"freelance"`
	Contract       int64 `json:"contract"`
}

// ValidCoreValue reports whether v belongs to the fixed catalog.
func ValidCoreValue(v string) bool {
	for _, cv := range CoreValueCatalog {
		if cv == v {
			return true
		}
	}
	return false
}

// ValidJobType reports whether t is one of the accepted job types.
func ValidJobType(t string) bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}
