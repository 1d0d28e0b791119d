package score

import (
	"log/slog"
	"sort"
)

// DefaultFallbackRole is suggested when no rule fires.
const DefaultFallbackRole = "Software Engineer"

// RoleRule suggests Roles when the resume has at least one of AnySkills.
type RoleRule struct {
	AnySkills []string `yaml:"when_any" json:"when_any" validate:"required,min=1,dive,required"`
	Roles     []string `yaml:"suggest" json:"suggest" validate:"required,min=1,dive,required"`
}

// DefaultRoleRules returns a fresh copy of the built-in rule table.
func DefaultRoleRules() []RoleRule {
	return []RoleRule{
		{AnySkills: []string{"machine learning", "data science"}, Roles: []string{"Data Scientist", "ML Engineer"}},
		{AnySkills: []string{"nlp"}, Roles: []string{"NLP Engineer"}},
		{AnySkills: []string{"cloud"}, Roles: []string{"Cloud Engineer"}},
	}
}

// RoleSuggester evaluates a rule table against a skill set.
// It is immutable after construction and safe for concurrent use.
type RoleSuggester struct {
	rules    []RoleRule
	fallback string
}

// NewRoleSuggester creates a suggester. A nil rule slice selects the default
// table and an empty fallback selects DefaultFallbackRole.
func NewRoleSuggester(rules []RoleRule, fallback string) *RoleSuggester {
	if rules == nil {
		rules = DefaultRoleRules()
	}
	if fallback == "" {
		fallback = DefaultFallbackRole
	}

	copied := make([]RoleRule, len(rules))
	for i, r := range rules {
		copied[i] = RoleRule{
			AnySkills: append([]string(nil), r.AnySkills...),
			Roles:     append([]string(nil), r.Roles...),
		}
	}
	return &RoleSuggester{rules: copied, fallback: fallback}
}

// Suggest evaluates every rule independently and returns the union of the
// roles that fired, sorted. If nothing fired the result is exactly the fallback role.
func (s *RoleSuggester) Suggest(resumeSkills []string) []string {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[skill] = struct{}{}
	}

	roles := make(map[string]struct{})
	for _, rule := range s.rules {
		if !anyPresent(have, rule.AnySkills) {
			continue
		}
		for _, role := range rule.Roles {
			roles[role] = struct{}{}
		}
	}

	if len(roles) == 0 {
		slog.Debug("No role rule fired", "skills", len(resumeSkills), "fallback", s.fallback)
		return []string{s.fallback}
	}

	out := make([]string, 0, len(roles))
	for role := range roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// SuggestRoles applies the default rule table.
func SuggestRoles(resumeSkills []string) []string {
	return NewRoleSuggester(nil, "").Suggest(resumeSkills)
}

func anyPresent(have map[string]struct{}, skills []string) bool {
	for _, skill := range skills {
		if _, ok := have[skill]; ok {
			return true
		}
	}
	return false
}
