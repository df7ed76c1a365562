package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	return db
}

func sampleStudent(email, phone string) *models.Student {
	return &models.Student{
		Name:            "Asha",
		Email:           email,
		Phone:           phone,
		EducationDegree: "B.Tech",
		Specialization:  "Computer Science",
		CoreValues:      datatypes.NewJSONSlice([]string{"Innovation", "Growth", "Excellence", "Impact", "Balance"}),
	}
}

func sampleJob(token string) *models.Job {
	return &models.Job{
		JobID:        token,
		CompanyName:  "TechNova",
		JobTitle:     "Software Developer",
		JobType:      models.JobTypeFullTime,
		Location:     "Bangalore",
		RoleCategory: models.CategorySoftware,
		QRCodeURL:    "https://api.qrserver.com/v1/create-qr-code/?data=" + token,
	}
}

func TestUpsertStudentCreatesAndOverwrites(t *testing.T) {
	db := testDB(t)

	first := sampleStudent("asha@example.com", "9876543210")
	require.NoError(t, db.UpsertStudent(first))
	require.NotEmpty(t, first.ID)

	// Same email resubmits: the row is overwritten, not duplicated.
	second := sampleStudent("asha@example.com", "9876543210")
	second.Specialization = "Data Science"
	require.NoError(t, db.UpsertStudent(second))
	assert.Equal(t, first.ID, second.ID)

	students, err := db.GetStudents()
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Data Science", students[0].Specialization)
}

func TestUpsertStudentIdentityConflict(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertStudent(sampleStudent("a@example.com", "1111111111")))
	require.NoError(t, db.UpsertStudent(sampleStudent("b@example.com", "2222222222")))

	// One student's email with another's phone must be refused.
	mixed := sampleStudent("a@example.com", "2222222222")
	err := db.UpsertStudent(mixed)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStudentLookups(t *testing.T) {
	db := testDB(t)
	s := sampleStudent("asha@example.com", "9876543210")
	require.NoError(t, db.UpsertStudent(s))

	byPhone, err := db.GetStudentByPhone("9876543210")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byPhone.ID)

	byEmail, err := db.GetStudentByEmail("asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byEmail.ID)

	_, err = db.GetStudentByPhone("0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobLookupByRowIDAndToken(t *testing.T) {
	db := testDB(t)
	job := sampleJob("JOB_0007")
	require.NoError(t, db.CreateJob(job))
	require.NotEmpty(t, job.ID)

	byRow, err := db.GetJobByAnyID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "JOB_0007", byRow.JobID)

	byToken, err := db.GetJobByAnyID("JOB_0007")
	require.NoError(t, err)
	assert.Equal(t, job.ID, byToken.ID)

	_, err = db.GetJobByAnyID("JOB_9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobsByCategory(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.CreateJob(sampleJob("JOB_0001")))
	design := sampleJob("JOB_0002")
	design.JobTitle = "UI/UX Designer"
	design.RoleCategory = models.CategoryDesign
	require.NoError(t, db.CreateJob(design))

	jobs, err := db.GetJobsByCategory(models.CategorySoftware)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "JOB_0001", jobs[0].JobID)
}

func TestJobsMissingQR(t *testing.T) {
	db := testDB(t)

	ok := sampleJob("JOB_0001")
	require.NoError(t, db.CreateJob(ok))

	missing := sampleJob("JOB_0002")
	missing.QRCodeURL = ""
	require.NoError(t, db.CreateJob(missing))

	stale := sampleJob("JOB_0003")
	stale.QRCodeURL = "https://api.qrserver.com/v1/create-qr-code/?data=JOB_0009"
	require.NoError(t, db.CreateJob(stale))

	jobs, err := db.JobsMissingQR()
	require.NoError(t, err)
	tokens := make([]string, 0, len(jobs))
	for _, j := range jobs {
		tokens = append(tokens, j.JobID)
	}
	assert.ElementsMatch(t, []string{"JOB_0002", "JOB_0003"}, tokens)

	require.NoError(t, db.UpdateJobQR(jobs[0].ID, "https://api.qrserver.com/v1/create-qr-code/?data="+jobs[0].JobID))
	jobs, err = db.JobsMissingQR()
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestUpsertInterestIdempotent(t *testing.T) {
	db := testDB(t)
	student := sampleStudent("asha@example.com", "9876543210")
	require.NoError(t, db.UpsertStudent(student))
	job := sampleJob("JOB_0007")
	require.NoError(t, db.CreateJob(job))

	score := 74
	first := &models.JobInterest{
		StudentID:    student.ID,
		JobID:        job.ID,
		FitmentScore: &score,
		IsInterested: true,
		Status:       "applied",
	}
	require.NoError(t, db.UpsertInterest(first))

	updated := 80
	second := &models.JobInterest{
		StudentID:    student.ID,
		JobID:        job.ID,
		FitmentScore: &updated,
		IsInterested: true,
		Status:       "applied",
	}
	require.NoError(t, db.UpsertInterest(second))

	interests, err := db.GetStudentInterests(student.ID)
	require.NoError(t, err)
	require.Len(t, interests, 1, "repeated interest collapses into one row")
	require.NotNil(t, interests[0].FitmentScore)
	assert.Equal(t, 80, *interests[0].FitmentScore)
}

func TestReplaceRecommendations(t *testing.T) {
	db := testDB(t)
	student := sampleStudent("asha@example.com", "9876543210")
	require.NoError(t, db.UpsertStudent(student))

	batch1 := []models.CareerRecommendation{
		{Role: "Software Developer", MatchScore: 88, Explanation: "x", JobOpenings: 4500, RoleCategory: models.CategorySoftware},
		{Role: "Data Analyst", MatchScore: 75, Explanation: "y", JobOpenings: 2800, RoleCategory: models.CategoryData},
	}
	require.NoError(t, db.ReplaceRecommendations(student.ID, batch1))

	batch2 := []models.CareerRecommendation{
		{Role: "UI/UX Designer", MatchScore: 81, Explanation: "z", JobOpenings: 2200, RoleCategory: models.CategoryDesign},
	}
	require.NoError(t, db.ReplaceRecommendations(student.ID, batch2))

	recs, err := db.GetRecommendations(student.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1, "a resubmission replaces the whole batch")
	assert.Equal(t, "UI/UX Designer", recs[0].Role)
}

func TestDeleteJobCascadesInterests(t *testing.T) {
	db := testDB(t)
	student := sampleStudent("asha@example.com", "9876543210")
	require.NoError(t, db.UpsertStudent(student))
	job := sampleJob("JOB_0007")
	require.NoError(t, db.CreateJob(job))
	require.NoError(t, db.UpsertInterest(&models.JobInterest{
		StudentID: student.ID, JobID: job.ID, IsInterested: true, Status: "applied",
	}))

	require.NoError(t, db.DeleteJob("JOB_0007"))

	_, err := db.GetJobByAnyID("JOB_0007")
	assert.ErrorIs(t, err, ErrNotFound)
	interests, err := db.GetStudentInterests(student.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestGetStats(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.UpsertStudent(sampleStudent("a@example.com", "1111111111")))

	ft := sampleJob("JOB_0001")
	require.NoError(t, db.CreateJob(ft))
	intern := sampleJob("JOB_0002")
	intern.JobType = models.JobTypeInternship
	require.NoError(t, db.CreateJob(intern))

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(2), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.FullTime)
	assert.Equal(t, int64(1), stats.Internships)
}
