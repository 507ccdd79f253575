package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSiteFillsDiscourseDefaults(t *testing.T) {
	site := NewSite("mjjbox", "https://mjjbox.com/")

	assert.Equal(t, "https://mjjbox.com/checkin", site.CheckinURL())
	assert.Equal(t, "https://mjjbox.com/checkin.json", site.StatusURL())
	assert.Equal(t, "https://mjjbox.com/login", site.LoginURL())
	assert.Equal(t, "https://mjjbox.com/", site.HomeURL())
	assert.Equal(t, Selector{Kind: ByID, Value: "login-account-name"}, site.UsernameField)
	require.NotEmpty(t, site.LoginButtons)
	assert.Equal(t, ByCSS, site.LoginButtons[0].Kind)
	assert.NotEmpty(t, site.Patterns.Duplicate)
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	site := Site{
		Name:        "custom",
		BaseURL:     "https://forum.example.com",
		CheckinPath: "/daily/checkin",
		Patterns:    MatchPatterns{Duplicate: []string{"done today"}},
	}.WithDefaults()

	assert.Equal(t, "https://forum.example.com/daily/checkin", site.CheckinURL())
	assert.Equal(t, []string{"done today"}, site.Patterns.Duplicate)
	assert.Equal(t, "/login", site.LoginPath)
}
