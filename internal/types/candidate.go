// Package types provides type definitions for structured data used throughout the matching engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProficiencyLevel is a declared skill level on an ordinal scale.
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// Ordinal returns the numeric rank of the level. Unknown levels rank as intermediate.
func (p ProficiencyLevel) Ordinal() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 2
	}
}

// Skill is a single declared or required skill.
type Skill struct {
	Name        string           `json:"name" validate:"required"`
	Proficiency ProficiencyLevel `json:"proficiency_level,omitempty"`
	Required    bool             `json:"is_required,omitempty"`
}

// Coordinates is a resolved geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is an address with optionally resolved coordinates.
// Coordinates are resolved lazily by the caller; the engine treats them as read-only.
type Location struct {
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Empty reports whether the location carries no usable information.
func (l Location) Empty() bool {
	return l.Address == "" && l.City == "" && l.Coordinates == nil
}

// Key returns a stable string form of the location for cache keying.
func (l Location) Key() string {
	if l.Address != "" {
		return l.Address
	}
	return l.City
}

// TransportMode is a commute mode understood by travel-time providers.
type TransportMode string

const (
	TransportDriving   TransportMode = "driving"
	TransportTransit   TransportMode = "transit"
	TransportBicycling TransportMode = "bicycling"
	TransportWalking   TransportMode = "walking"
)

// ContractType is an employment contract kind. French and English labels both occur upstream.
type ContractType string

const (
	ContractCDI        ContractType = "cdi"
	ContractCDD        ContractType = "cdd"
	ContractPermanent  ContractType = "permanent"
	ContractFixedTerm  ContractType = "fixed-term"
	ContractFreelance  ContractType = "freelance"
	ContractInternship ContractType = "internship"
)

// CandidateProfile is a parsed candidate, produced upstream by CV parsing.
// Profiles are immutable for the duration of a matching run.
type CandidateProfile struct {
	ID                  string         `json:"id" validate:"required"`
	FullName            string         `json:"full_name,omitempty"`
	Skills              []Skill        `json:"skills" validate:"dive"`
	YearsOfExperience   float64        `json:"years_of_experience" validate:"min=0"`
	EducationLevel      string         `json:"education_level,omitempty"`
	HomeLocation        Location       `json:"home_location"`
	DesiredSalary       float64        `json:"desired_salary,omitempty" validate:"min=0"`
	ContractPreferences []ContractType `json:"contract_type_preferences,omitempty"`
	AvailabilityDate    time.Time      `json:"availability_date,omitempty"`
	TransportMode       TransportMode  `json:"transport_mode,omitempty"`
}

// Validate checks that the profile carries the fields the engine requires.
func (c *CandidateProfile) Validate() error {
	return validate.Struct(c)
}

// PrefersContract reports whether the candidate listed the given contract type.
func (c *CandidateProfile) PrefersContract(ct ContractType) bool {
	for _, pref := range c.ContractPreferences {
		if pref == ct {
			return true
		}
	}
	return false
}
