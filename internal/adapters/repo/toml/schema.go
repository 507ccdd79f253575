package toml

import (
	"fmt"

	"github.com/bnema/checkin-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Sites   []siteSchema `toml:"sites"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sites schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type siteSchema struct {
	Name              string           `toml:"name"`
	BaseURL           string           `toml:"base_url"`
	LoginPath         string           `toml:"login_path,omitempty"`
	CheckinPath       string           `toml:"checkin_path,omitempty"`
	StatusPath        string           `toml:"status_path,omitempty"`
	UsernameField     *selectorSchema  `toml:"username_field,omitempty"`
	PasswordField     *selectorSchema  `toml:"password_field,omitempty"`
	LoginButtons      []selectorSchema `toml:"login_buttons,omitempty"`
	DuplicatePatterns []string         `toml:"duplicate_patterns,omitempty"`
}

type selectorSchema struct {
	Kind  string `toml:"kind"`
	Value string `toml:"value"`
}

func toSchema(site domain.Site) siteSchema {
	encoded := siteSchema{
		Name:              site.Name,
		BaseURL:           site.BaseURL,
		LoginPath:         site.LoginPath,
		CheckinPath:       site.CheckinPath,
		StatusPath:        site.StatusPath,
		DuplicatePatterns: site.Patterns.Duplicate,
	}

	if site.UsernameField != (domain.Selector{}) {
		encoded.UsernameField = toSelectorSchema(site.UsernameField)
	}
	if site.PasswordField != (domain.Selector{}) {
		encoded.PasswordField = toSelectorSchema(site.PasswordField)
	}
	for _, button := range site.LoginButtons {
		encoded.LoginButtons = append(encoded.LoginButtons, *toSelectorSchema(button))
	}

	return encoded
}

func fromSchema(entry siteSchema) domain.Site {
	site := domain.Site{
		Name:        entry.Name,
		BaseURL:     entry.BaseURL,
		LoginPath:   entry.LoginPath,
		CheckinPath: entry.CheckinPath,
		StatusPath:  entry.StatusPath,
		Patterns:    domain.MatchPatterns{Duplicate: entry.DuplicatePatterns},
	}

	if entry.UsernameField != nil {
		site.UsernameField = fromSelectorSchema(*entry.UsernameField)
	}
	if entry.PasswordField != nil {
		site.PasswordField = fromSelectorSchema(*entry.PasswordField)
	}
	for _, button := range entry.LoginButtons {
		site.LoginButtons = append(site.LoginButtons, fromSelectorSchema(button))
	}

	return site.WithDefaults()
}

func toSelectorSchema(selector domain.Selector) *selectorSchema {
	return &selectorSchema{Kind: string(selector.Kind), Value: selector.Value}
}

func fromSelectorSchema(entry selectorSchema) domain.Selector {
	return domain.Selector{Kind: domain.SelectorKind(entry.Kind), Value: entry.Value}
}
