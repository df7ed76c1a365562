package voice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func TestParseEmptyTranscript(t *testing.T) {
	p := NewParser(nil, nil)

	fields := p.Parse(context.Background(), "")
	assert.Equal(t, Fields{KeySkills: []string{}}, fields)

	fields = p.Parse(context.Background(), "   \n\t ")
	assert.Equal(t, Fields{KeySkills: []string{}}, fields)
}

func TestFallbackParseFullTranscript(t *testing.T) {
	p := NewParser(nil, nil)
	transcript := "My name is Ravi Kumar, phone number 9876543210, email ravi@technova.com. " +
		"I'm with TechNova Solutions and we are hiring for software developer position. " +
		"The job is full time, located in Bangalore. Salary is 50,000 per month. " +
		"Required skills are Python, Django and SQL. Job description is build backend services."

	fields := p.Parse(context.Background(), transcript)

	assert.Equal(t, "Ravi Kumar", fields.ContactName)
	assert.Equal(t, "9876543210", fields.ContactNumber)
	assert.Equal(t, "ravi@technova.com", fields.ContactEmail)
	assert.Equal(t, "TechNova Solutions", fields.CompanyName)
	assert.Equal(t, "software developer", fields.JobTitle)
	assert.Equal(t, models.JobTypeFullTime, fields.JobType)
	assert.Equal(t, "Bangalore", fields.Location)
	assert.Equal(t, "50,000 per month", fields.SalaryStipend)
	assert.Equal(t, []string{"Python", "Django", "SQL"}, fields.KeySkills)
	assert.Equal(t, "build backend services.", fields.JobDescription)
}

func TestFallbackParseJobTypes(t *testing.T) {
	p := NewParser(nil, nil)
	for transcript, want := range map[string]string{
		"we need an intern for the summer": models.JobTypeInternship,
		"this is a full time opening":      models.JobTypeFullTime,
		"offering a permanent role":        models.JobTypeFullTime,
		"freelance gig available":          models.JobTypeFreelance,
		"part time help wanted":            models.JobTypeFreelance,
		"hiring on a contract basis":       models.JobTypeContract,
		"someone to help us":               "",
	} {
		fields := p.Parse(context.Background(), transcript)
		assert.Equal(t, want, fields.JobType, "transcript %q", transcript)
	}
}

func TestFallbackParseSkillsCap(t *testing.T) {
	p := NewParser(nil, nil)
	transcript := "Skills are go, rust, python, java, react, angular, docker, linux, terraform, ansible"

	fields := p.Parse(context.Background(), transcript)
	assert.Len(t, fields.KeySkills, 8)
	assert.Equal(t, "go", fields.KeySkills[0])
}

func TestFallbackParseIrrelevantInput(t *testing.T) {
	p := NewParser(nil, nil)

	fields := p.Parse(context.Background(), "the weather is lovely today")
	assert.Empty(t, fields.ContactName)
	assert.Empty(t, fields.CompanyName)
	assert.Empty(t, fields.JobTitle)
	assert.Empty(t, fields.KeySkills)
	// The transcript itself remains available as the description suggestion.
	assert.Equal(t, "the weather is lovely today", fields.JobDescription)
}

func TestDelegatedParse(t *testing.T) {
	response := "```json\n" + `{
		"contact_name": "Priya",
		"contact_number": "+91 9000000000",
		"contact_email": "",
		"company_name": "Acme",
		"job_title": "Data Analyst",
		"job_type": "full time position",
		"location": "Pune",
		"salary_stipend": "6 LPA",
		"key_skills": ["SQL", "Excel", "", "Tableau"],
		"job_description": "Analyze sales data."
	}` + "\n```"
	p := NewParser(&stubGenerator{response: response}, nil)

	fields := p.Parse(context.Background(), "hiring a data analyst")
	assert.Equal(t, "Priya", fields.ContactName)
	assert.Equal(t, models.JobTypeFullTime, fields.JobType)
	assert.Equal(t, []string{"SQL", "Excel", "Tableau"}, fields.KeySkills)
}

func TestDelegatedParseFallsBackOnError(t *testing.T) {
	p := NewParser(&stubGenerator{err: context.DeadlineExceeded}, nil)

	fields := p.Parse(context.Background(), "My name is Anil Mehta and we need an intern")
	require.Equal(t, models.JobTypeInternship, fields.JobType)
	assert.Equal(t, "Anil Mehta", fields.ContactName)
}
