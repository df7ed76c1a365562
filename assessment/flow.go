// Package assessment models the five-step self-assessment wizard: a linear
// state machine whose forward transitions are gated on per-step completeness,
// plus the debounced uniqueness validation used while the basic-info step is
// being filled in. The same completeness checks validate a submission
// server-side before it is persisted.
package assessment

import (
	"fmt"
	"regexp"

	"github.com/GundamHarshaReddy/Hackokai1/models"
)

// Step enumerates the wizard states in order.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepCoreValues
	StepWorkPreferences
	StepPersonality
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepCoreValues:
		return "core_values"
	case StepWorkPreferences:
		return "work_preferences"
	case StepPersonality:
		return "personality"
	case StepResults:
		return "results"
	}
	return "unknown"
}

// Submission collects everything the wizard gathers. TouchedSliders records
// explicit interaction: a slider left at its default midpoint without being
// moved counts as unanswered.
type Submission struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	EducationDegree   string          `json:"education_degree"`
	Specialization    string          `json:"specialization"`
	CoreValues        []string        `json:"core_values"`
	WorkPreferences   map[string]int  `json:"work_preferences"`
	TouchedSliders    map[string]bool `json:"touched_sliders"`
	PersonalityScores map[string]int  `json:"personality_scores"`
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateBasicInfo gates the first step: all fields non-empty, email and
// phone well-formed.
func ValidateBasicInfo(sub *Submission) error {
	switch {
	case sub.Name == "":
		return fmt.Errorf("name is required")
	case sub.Email == "":
		return fmt.Errorf("email is required")
	case !emailPattern.MatchString(sub.Email):
		return fmt.Errorf("email is not valid")
	case sub.Phone == "":
		return fmt.Errorf("phone is required")
	case !phonePattern.MatchString(sub.Phone):
		return fmt.Errorf("phone must be 10 digits")
	case sub.EducationDegree == "":
		return fmt.Errorf("education degree is required")
	case sub.Specialization == "":
		return fmt.Errorf("specialization is required")
	}
	return nil
}

// ValidateCoreValues requires exactly 5 distinct values from the catalog.
func ValidateCoreValues(sub *Submission) error {
	if len(sub.CoreValues) != 5 {
		return fmt.Errorf("exactly 5 core values must be selected, got %d", len(sub.CoreValues))
	}
	seen := make(map[string]bool, 5)
	for _, v := range sub.CoreValues {
		if !models.ValidCoreValue(v) {
			return fmt.Errorf("unknown core value %q", v)
		}
		if seen[v] {
			return fmt.Errorf("core value %q selected twice", v)
		}
		seen[v] = true
	}
	return nil
}

// ValidateWorkPreferences requires every slider present, in range, and
// explicitly touched at least once.
func ValidateWorkPreferences(sub *Submission) error {
	for _, key := range models.WorkPreferenceKeys {
		v, ok := sub.WorkPreferences[key]
		if !ok {
			return fmt.Errorf("work preference %q is missing", key)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("work preference %q out of range: %d", key, v)
		}
		if !sub.TouchedSliders[key] {
			return fmt.Errorf("work preference %q has not been answered", key)
		}
	}
	return nil
}

// ValidatePersonality requires all seven Likert answers in 1-5.
func ValidatePersonality(sub *Submission) error {
	for _, key := range models.PersonalityTraitKeys {
		v, ok := sub.PersonalityScores[key]
		if !ok {
			return fmt.Errorf("personality trait %q is missing", key)
		}
		if v < 1 || v > 5 {
			return fmt.Errorf("personality trait %q out of range: %d", key, v)
		}
	}
	return nil
}

// ValidateSubmission runs every step gate; used server-side before any write.
func ValidateSubmission(sub *Submission) error {
	for _, check := range []func(*Submission) error{
		ValidateBasicInfo, ValidateCoreValues, ValidateWorkPreferences, ValidatePersonality,
	} {
		if err := check(sub); err != nil {
			return err
		}
	}
	return nil
}

// Flow is the wizard state machine.
type Flow struct {
	step Step
	sub  *Submission
}

// NewFlow starts a wizard at the basic-info step.
func NewFlow(sub *Submission) *Flow {
	if sub == nil {
		sub = &Submission{}
	}
	if sub.WorkPreferences == nil {
		sub.WorkPreferences = make(map[string]int)
	}
	if sub.TouchedSliders == nil {
		sub.TouchedSliders = make(map[string]bool)
	}
	if sub.PersonalityScores == nil {
		sub.PersonalityScores = make(map[string]int)
	}
	return &Flow{step: StepBasicInfo, sub: sub}
}

// Step returns the current state.
func (f *Flow) Step() Step { return f.step }

// Submission exposes the collected data.
func (f *Flow) Submission() *Submission { return f.sub }

// SetSlider records a slider interaction, marking it touched.
func (f *Flow) SetSlider(key string, value int) {
	f.sub.WorkPreferences[key] = value
	f.sub.TouchedSliders[key] = true
}

// ToggleCoreValue adds or removes a value, refusing a sixth selection.
func (f *Flow) ToggleCoreValue(v string) {
	for i, cv := range f.sub.CoreValues {
		if cv == v {
			f.sub.CoreValues = append(f.sub.CoreValues[:i], f.sub.CoreValues[i+1:]...)
			return
		}
	}
	if len(f.sub.CoreValues) < 5 {
		f.sub.CoreValues = append(f.sub.CoreValues, v)
	}
}

// CanAdvance reports whether the current step's completeness gate passes.
func (f *Flow) CanAdvance() error {
	switch f.step {
	case StepBasicInfo:
		return ValidateBasicInfo(f.sub)
	case StepCoreValues:
		return ValidateCoreValues(f.sub)
	case StepWorkPreferences:
		return ValidateWorkPreferences(f.sub)
	case StepPersonality:
		// Results is entered through CompleteSubmission, never by Next.
		return fmt.Errorf("results requires a successful submission")
	default:
		return fmt.Errorf("cannot advance from %s", f.step)
	}
}

// Next moves forward one step when the gate passes.
func (f *Flow) Next() error {
	if err := f.CanAdvance(); err != nil {
		return err
	}
	f.step++
	return nil
}

// Back moves backward unconditionally; it is a no-op at the first step.
func (f *Flow) Back() {
	if f.step > StepBasicInfo {
		f.step--
	}
}

// CompleteSubmission enters the terminal Results state. Call only after the
// profile was persisted and recommendations were computed; on submission
// failure the flow stays at Personality so the student can retry without
// losing answers.
func (f *Flow) CompleteSubmission() error {
	if f.step != StepPersonality {
		return fmt.Errorf("submission completes from %s, not %s", StepPersonality, f.step)
	}
	if err := ValidateSubmission(f.sub); err != nil {
		return err
	}
	f.step = StepResults
	return nil
}
