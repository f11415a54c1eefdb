package types

import "time"

// RemotePolicy is the job's telework policy.
type RemotePolicy string

const (
	RemoteNone    RemotePolicy = "none"
	RemotePartial RemotePolicy = "partial"
	RemoteFull    RemotePolicy = "full"
)

// Ordinal returns the numeric rank of the policy, from none (0) to full (2).
func (r RemotePolicy) Ordinal() int {
	switch r {
	case RemotePartial:
		return 1
	case RemoteFull:
		return 2
	default:
		return 0
	}
}

// SalaryRange is an offered salary band. A zero bound means "not stated".
type SalaryRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// Midpoint returns the representative offered salary: the midpoint of the band,
// or the single stated bound when only one is given. Returns 0 when nothing is stated.
func (s SalaryRange) Midpoint() float64 {
	switch {
	case s.Min > 0 && s.Max > 0:
		return (s.Min + s.Max) / 2
	case s.Min > 0:
		return s.Min
	default:
		return s.Max
	}
}

// TeamInfo is descriptive team metadata carried through for explanations.
type TeamInfo struct {
	Name string `json:"name,omitempty"`
	Size int    `json:"size,omitempty"`
}

// JobOffer is a parsed job posting, produced upstream. Immutable per matching run.
type JobOffer struct {
	ID              string       `json:"id" validate:"required"`
	Title           string       `json:"title,omitempty"`
	Company         string       `json:"company,omitempty"`
	RequiredSkills  []Skill      `json:"required_skills" validate:"dive"`
	PreferredSkills []Skill      `json:"preferred_skills,omitempty" validate:"dive"`
	Location        Location     `json:"location"`
	Salary          *SalaryRange `json:"salary_range,omitempty"`
	ExperienceMin   float64      `json:"experience_min,omitempty" validate:"min=0"`
	ExperienceMax   float64      `json:"experience_max,omitempty" validate:"min=0"`
	Contract        ContractType `json:"contract_type,omitempty"`
	StartDate       time.Time    `json:"start_date,omitempty"`
	RemotePolicy    RemotePolicy `json:"remote_policy,omitempty"`
	FlexibleHours   bool         `json:"flexible_hours,omitempty"`
	RTTOffered      bool         `json:"rtt_offered,omitempty"`
	Team            *TeamInfo    `json:"team,omitempty"`
}

// Validate checks that the offer carries the fields the engine requires.
func (j *JobOffer) Validate() error {
	return validate.Struct(j)
}

// AllSkills returns required then preferred skills in declaration order.
func (j *JobOffer) AllSkills() []Skill {
	out := make([]Skill, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	out = append(out, j.RequiredSkills...)
	out = append(out, j.PreferredSkills...)
	return out
}
