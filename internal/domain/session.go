package domain

// Cookie is a single browser cookie carried over into the HTTP client.
type Cookie struct {
	Name  string
	Value string
}

// AuthenticatedSession is the bridged state of a logged-in browser
// session: the cookies it holds and the anti-forgery token read from the
// page. Owned by exactly one account run and discarded afterwards.
type AuthenticatedSession struct {
	Cookies   []Cookie
	CSRFToken string
}
