// Package voice turns free-text speech transcripts into suggested job-posting
// fields. The primary path asks the text-generation provider for a structured
// extraction; the fallback applies ordered per-field regular expressions.
// Parsing never fails: malformed or irrelevant input yields an empty or
// partial result, and every field is a suggestion for human confirmation.
package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/GundamHarshaReddy/Hackokai1/ai"
	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// Fields holds the extracted job-posting suggestions. Empty values mean "not
// mentioned".
type Fields struct {
	ContactName    string   `json:"contact_name"`
	ContactNumber  string   `json:"contact_number"`
	ContactEmail   string   `json:"contact_email"`
	CompanyName    string   `json:"company_name"`
	JobTitle       string   `json:"job_title"`
	JobType        string   `json:"job_type"`
	Location       string   `json:"location"`
	SalaryStipend  string   `json:"salary_stipend"`
	KeySkills      []string `json:"key_skills"`
	JobDescription string   `json:"job_description"`
}

const maxSkills = 8

// Parser extracts job fields from transcripts.
type Parser struct {
	gen    ai.Generator
	logger *zap.Logger
}

// NewParser builds a Parser. gen may be nil, which forces the regex fallback.
func NewParser(gen ai.Generator, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{gen: gen, logger: logger}
}

// Parse extracts job-posting fields from a transcript. Never returns an
// error; an empty transcript yields empty fields.
func (p *Parser) Parse(ctx context.Context, transcript string) Fields {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Fields{KeySkills: []string{}}
	}

	if p.gen != nil {
		fields, err := p.delegatedParse(ctx, transcript)
		if err == nil {
			return fields
		}
		p.logger.Warn("voice parse provider call failed, using regex fallback", zap.Error(err))
	}

	return fallbackParse(transcript)
}

func (p *Parser) delegatedParse(ctx context.Context, transcript string) (Fields, error) {
	prompt := fmt.Sprintf(`You are a professional job posting parser. Extract the following information from this voice transcript and return ONLY a valid JSON object (no extra text or explanations):

Voice Transcript: %q

Return a JSON object with these exact fields:
{
  "contact_name": "string",
  "contact_number": "string (format with country code if mentioned, otherwise as given)",
  "contact_email": "string (empty string if not mentioned)",
  "company_name": "string",
  "job_title": "string",
  "job_type": "string (Full-Time, Internship, Freelance, or Contract)",
  "location": "string",
  "salary_stipend": "string (include currency and time period if mentioned, empty string if not mentioned)",
  "key_skills": ["array of strings, empty array if not mentioned"],
  "job_description": "string (the main job requirements/description)"
}

IMPORTANT:
- Return ONLY the JSON object, no other text
- Extract information exactly as spoken
- If something is not mentioned, use empty string or empty array`, transcript)

	raw, err := p.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return Fields{}, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(raw)), &data); err != nil {
		return Fields{}, fmt.Errorf("parse voice extraction response: %w", err)
	}

	fields := Fields{
		ContactName:    ai.CoerceString(data["contact_name"]),
		ContactNumber:  ai.CoerceString(data["contact_number"]),
		ContactEmail:   ai.CoerceString(data["contact_email"]),
		CompanyName:    ai.CoerceString(data["company_name"]),
		JobTitle:       ai.CoerceString(data["job_title"]),
		JobType:        normalizeJobType(ai.CoerceString(data["job_type"])),
		Location:       ai.CoerceString(data["location"]),
		SalaryStipend:  ai.CoerceString(data["salary_stipend"]),
		JobDescription: ai.CoerceString(data["job_description"]),
		KeySkills:      []string{},
	}

	if rawSkills, ok := data["key_skills"].([]any); ok {
		for _, s := range rawSkills {
			if skill := ai.CoerceString(s); skill != "" && len(fields.KeySkills) < maxSkills {
				fields.KeySkills = append(fields.KeySkills, skill)
			}
		}
	}
	return fields, nil
}

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:my name is|i am|this is|i'm|call me)\s+([a-z\s]{2,30})`),
		regexp.MustCompile(`(?i)(?:contact person|person is|contact is)\s+([a-z\s]{2,30})`),
	}
	nameTrailer = regexp.MustCompile(`(?i)\b(and|from|at|phone|number|company)\b.*`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:phone|number|mobile|contact).*?([+]?[0-9\s\-()]{8,15})`),
		regexp.MustCompile(`\b([0-9]{10})\b`),
		regexp.MustCompile(`\b([+][0-9\s\-()]{8,15})\b`),
	}
	phoneStrip = regexp.MustCompile(`[^\d+\-\s()]`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:company|work at|represent)\s+([a-z\s&.]{2,30})`),
		regexp.MustCompile(`(?i)(?:we are|i'm with|from)\s+([a-z\s&.]{2,30})`),
	}
	companyTrailer = regexp.MustCompile(`(?i)\b(and|hiring|looking|need)\b.*`)

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:job title|position|role|hiring for|looking for)\s+(?:is\s+)?([a-z\s]{3,30})`),
		regexp.MustCompile(`(?i)(?:need|want|seeking)\s+(?:a|an)?\s*([a-z\s]{3,30})\s+(?:position|role)`),
	}
	titleNoise = regexp.MustCompile(`(?i)\b(position|role|job|person)\b`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:location|based in|located in|office in|work from)\s+([a-z\s,]{2,30})`),
		regexp.MustCompile(`(?i)\b(?:in|at)\s+(bangalore|mumbai|delhi|chennai|hyderabad|pune|kolkata|ahmedabad)\b`),
	}
	locationTrailer = regexp.MustCompile(`(?i)\b(and|salary|stipend|skills)\b.*`)

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:salary|stipend|pay|package).*?([0-9,]+\s*(?:per month|monthly|thousand|lakh|k|rupees|rs))`),
		regexp.MustCompile(`(?i)([0-9,]+\s*(?:per month|monthly|thousand|lakh|k|rupees|rs))`),
	}

	skillsPattern   = regexp.MustCompile(`(?i)(?:skills|technologies|tech stack|experience in|familiar with)\s+(?:are|required|include|like)?\s*([a-z0-9\s,&.+#-]+?)(?:[;!?]|\s+(?:job description|description|experience|knowledge)|$)`)
	skillsSplit     = regexp.MustCompile(`,|\s+and\s+|\s+or\s+`)
	skillStopWords  = map[string]bool{"the": true, "and": true, "or": true, "with": true, "in": true, "are": true}
	descriptionPat  = regexp.MustCompile(`(?i)(?:job description|description)\s+(?:is\s+)?(.+)$`)
	jobTypeKeywords = []struct {
		keyword string
		jobType string
	}{
		{"intern", models.JobTypeInternship},
		{"full time", models.JobTypeFullTime},
		{"full-time", models.JobTypeFullTime},
		{"permanent", models.JobTypeFullTime},
		{"freelance", models.JobTypeFreelance},
		{"part time", models.JobTypeFreelance},
		{"contract", models.JobTypeContract},
	}
)

// fallbackParse applies the ordered per-field pattern lists. The first match
// per field wins and is never overwritten by a later pattern.
func fallbackParse(transcript string) Fields {
	fields := Fields{KeySkills: []string{}}
	lower := strings.ToLower(transcript)

	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			name := strings.TrimSpace(nameTrailer.ReplaceAllString(m[1], ""))
			if len(name) > 1 && len(strings.Fields(name)) <= 4 {
				fields.ContactName = name
				break
			}
		}
	}

	for _, pattern := range phonePatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			phone := strings.TrimSpace(phoneStrip.ReplaceAllString(m[1], ""))
			if len(phone) >= 8 {
				fields.ContactNumber = phone
				break
			}
		}
	}

	if m := emailPattern.FindString(transcript); m != "" {
		fields.ContactEmail = m
	}

	for _, pattern := range companyPatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			company := strings.TrimSpace(companyTrailer.ReplaceAllString(m[1], ""))
			if len(company) > 1 {
				fields.CompanyName = company
				break
			}
		}
	}

	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			title := strings.TrimSpace(titleNoise.ReplaceAllString(m[1], ""))
			title = strings.Join(strings.Fields(title), " ")
			if len(title) > 2 {
				fields.JobTitle = title
				break
			}
		}
	}

	for _, entry := range jobTypeKeywords {
		if strings.Contains(lower, entry.keyword) {
			fields.JobType = entry.jobType
			break
		}
	}

	for _, pattern := range locationPatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			if loc := strings.TrimSpace(locationTrailer.ReplaceAllString(m[1], "")); loc != "" {
				fields.Location = loc
				break
			}
		}
	}

	for _, pattern := range salaryPatterns {
		if m := pattern.FindStringSubmatch(transcript); m != nil {
			fields.SalaryStipend = strings.TrimSpace(m[1])
			break
		}
	}

	if m := skillsPattern.FindStringSubmatch(transcript); m != nil {
		for _, part := range skillsSplit.Split(m[1], -1) {
			skill := strings.Trim(strings.TrimSpace(part), ".,")
			if len(skill) <= 1 || skillStopWords[strings.ToLower(skill)] {
				continue
			}
			if len(fields.KeySkills) < maxSkills {
				fields.KeySkills = append(fields.KeySkills, skill)
			}
		}
	}

	if m := descriptionPat.FindStringSubmatch(transcript); m != nil {
		fields.JobDescription = strings.TrimSpace(m[1])
	} else {
		fields.JobDescription = transcript
	}

	return fields
}

// normalizeJobType maps loose provider output onto the job-type enum.
func normalizeJobType(t string) string {
	if models.ValidJobType(t) {
		return t
	}
	lower := strings.ToLower(t)
	for _, entry := range jobTypeKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.jobType
		}
	}
	return ""
}
