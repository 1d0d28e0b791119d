package vocab

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/resumatch/internal/score"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxConfigSizeBytes bounds vocabulary files; they are small tables, not documents.
const MaxConfigSizeBytes = 1 * 1024 * 1024

// Config is the externally loadable matching configuration.
// Omitted sections fall back to the built-in defaults.
type Config struct {
	Skills          SkillVocabulary  `yaml:"skills" validate:"omitempty,dive,keys,required,endkeys,dive,required"`
	ProjectKeywords ProjectKeywords  `yaml:"project_keywords" validate:"omitempty,dive,required"`
	Roles           []score.RoleRule `yaml:"roles" validate:"omitempty,dive"`
	FallbackRole    string           `yaml:"fallback_role"`
	MatchMode       string           `yaml:"match_mode" validate:"omitempty,oneof=substring word"`
}

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Skills:          DefaultSkills(),
		ProjectKeywords: DefaultProjectKeywords(),
		Roles:           score.DefaultRoleRules(),
		FallbackRole:    score.DefaultFallbackRole,
		MatchMode:       Substring.String(),
	}
}

// Load reads and validates a YAML vocabulary file.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Config{}, fmt.Errorf("vocabulary file %q does not exist", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to access vocabulary file %q: %w", path, err)
	}
	if info.Size() > MaxConfigSizeBytes {
		return Config{}, fmt.Errorf("vocabulary file %q is too large (%d bytes > %d bytes limit)",
			path, info.Size(), MaxConfigSizeBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read vocabulary file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("vocabulary file %q: %w", path, err)
	}

	slog.Debug("Vocabulary loaded", "path", path, "skills", len(cfg.Skills), "projectKeywords", len(cfg.ProjectKeywords))
	return cfg, nil
}

// Parse decodes YAML vocabulary data, validates it and fills omitted sections
// from the defaults. Canonical skill names are lowercased and trimmed; two
// names that fold to the same key are rejected. Role rules are folded the same
// way and may only name skills of the resulting vocabulary.
func Parse(data []byte) (Config, error) {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate.Struct(raw); err != nil {
		return Config{}, fmt.Errorf("invalid vocabulary: %w", err)
	}

	cfg := Default()
	if len(raw.Skills) > 0 {
		skills := make(SkillVocabulary, len(raw.Skills))
		for name, aliases := range raw.Skills {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				return Config{}, fmt.Errorf("invalid vocabulary: blank skill name")
			}
			if _, dup := skills[key]; dup {
				return Config{}, fmt.Errorf("invalid vocabulary: duplicate skill %q", key)
			}
			skills[key] = cleanList(aliases)
		}
		cfg.Skills = skills
	}
	if len(raw.ProjectKeywords) > 0 {
		cfg.ProjectKeywords = ProjectKeywords(cleanList(raw.ProjectKeywords))
	}
	if raw.Roles != nil {
		roles := make([]score.RoleRule, len(raw.Roles))
		for i, rule := range raw.Roles {
			anySkills := cleanList(rule.AnySkills)
			for _, skill := range anySkills {
				if _, ok := cfg.Skills[skill]; !ok {
					return Config{}, fmt.Errorf("invalid vocabulary: role rule %d refers to unknown skill %q", i+1, skill)
				}
			}
			roles[i] = score.RoleRule{AnySkills: anySkills, Roles: rule.Roles}
		}
		cfg.Roles = roles
	}
	if raw.FallbackRole != "" {
		cfg.FallbackRole = raw.FallbackRole
	}
	if raw.MatchMode != "" {
		cfg.MatchMode = raw.MatchMode
	}

	return cfg, nil
}

// Matcher builds the matcher described by the configuration.
func (c Config) Matcher() (*Matcher, error) {
	mode, err := ParseMatchMode(c.MatchMode)
	if err != nil {
		return nil, err
	}
	return NewMatcher(c.Skills, c.ProjectKeywords, mode), nil
}

// RoleSuggester builds the role suggester described by the configuration.
func (c Config) RoleSuggester() *score.RoleSuggester {
	return score.NewRoleSuggester(c.Roles, c.FallbackRole)
}
