package ports

import (
	"context"
	"time"

	"github.com/bnema/checkin-cli/internal/domain"
)

// Element is one located page element.
type Element interface {
	Clear() error
	SendKeys(text string) error
	Click() error
	Attribute(name string) (string, error)
}

// BrowserSession is a live browser page. Implementations must bound every
// wait by the given timeout and release the underlying driver on Quit.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL() (string, error)
	Find(selector domain.Selector) (Element, error)
	WaitLocated(ctx context.Context, selector domain.Selector, timeout time.Duration) (Element, error)
	WaitURL(ctx context.Context, accept func(url string) bool, timeout time.Duration) error
	// Cookies returns every cookie the session currently holds. Cookies
	// that cannot be read are skipped, not fatal.
	Cookies() ([]domain.Cookie, error)
	MetaContent(name string) (string, error)
	Quit() error
}

// Browser opens fresh browser sessions.
type Browser interface {
	NewSession(ctx context.Context) (BrowserSession, error)
}
