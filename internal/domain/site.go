package domain

import "strings"

// SelectorKind names an element lookup strategy.
type SelectorKind string

const (
	ByID    SelectorKind = "id"
	ByCSS   SelectorKind = "css"
	ByXPath SelectorKind = "xpath"
)

// Selector locates one page element.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// Site describes one forum to check in against: where its pages and
// endpoints live, how to find the login form, and which body phrases
// disambiguate its responses.
type Site struct {
	Name          string
	BaseURL       string
	LoginPath     string
	CheckinPath   string
	StatusPath    string
	UsernameField Selector
	PasswordField Selector
	// LoginButtons is an ordered list of discovery strategies. They are
	// tried in sequence and the first hit wins.
	LoginButtons []Selector
	Patterns     MatchPatterns
}

// NewSite returns a profile with the layout Discourse-based forums share.
func NewSite(name, baseURL string) Site {
	return Site{Name: name, BaseURL: baseURL}.WithDefaults()
}

// WithDefaults fills any unset field with the common Discourse layout.
func (s Site) WithDefaults() Site {
	if s.LoginPath == "" {
		s.LoginPath = "/login"
	}
	if s.CheckinPath == "" {
		s.CheckinPath = "/checkin"
	}
	if s.StatusPath == "" {
		s.StatusPath = "/checkin.json"
	}
	if s.UsernameField == (Selector{}) {
		s.UsernameField = Selector{Kind: ByID, Value: "login-account-name"}
	}
	if s.PasswordField == (Selector{}) {
		s.PasswordField = Selector{Kind: ByID, Value: "login-account-password"}
	}
	if len(s.LoginButtons) == 0 {
		s.LoginButtons = []Selector{
			{Kind: ByCSS, Value: "#login-button"},
			{Kind: ByCSS, Value: "button.btn-primary"},
			{Kind: ByXPath, Value: "//button[contains(text(), '登录')]"},
			{Kind: ByXPath, Value: "//button[contains(text(), 'Log in')]"},
		}
	}
	if len(s.Patterns.Duplicate) == 0 {
		s.Patterns = DefaultMatchPatterns()
	}
	return s
}

func (s Site) base() string {
	return strings.TrimRight(s.BaseURL, "/")
}

func (s Site) HomeURL() string {
	return s.base() + "/"
}

func (s Site) LoginURL() string {
	return s.base() + s.LoginPath
}

func (s Site) CheckinURL() string {
	return s.base() + s.CheckinPath
}

func (s Site) StatusURL() string {
	return s.base() + s.StatusPath
}
