package session

// Route identifies a screen of the console. The guard only cares whether a
// route is the login route; everything else is "protected".
type Route string

const (
	RouteLogin    Route = "login"
	RouteHome     Route = "home"
	RouteProducts Route = "products"
	RouteOffers   Route = "offers"
)

// GuardState is the guard's position in its Checking → {Authorized,
// Redirecting} machine.
type GuardState int

const (
	StateChecking GuardState = iota
	StateAuthorized
	StateRedirecting
)

func (s GuardState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one guard evaluation. While the state is not
// Authorized, protected content must not be rendered.
type Decision struct {
	State      GuardState
	RedirectTo Route
}

// Authorized reports whether protected content may render.
func (d Decision) Authorized() bool { return d.State == StateAuthorized }

// Evaluate runs the guard's transition rule for one (route, token) pair:
//
//  1. login route with a token present → redirect home
//  2. protected route with no token    → redirect to login
//  3. otherwise                        → authorized, content renders
//
// The guard does not watch the token after evaluation; a token invalidated
// mid-session is only noticed on the next navigation. That matches the
// behavior the console always had and is intentional.
func Evaluate(route Route, token string) Decision {
	if route == RouteLogin && token != "" {
		return Decision{State: StateRedirecting, RedirectTo: RouteHome}
	}
	if route != RouteLogin && token == "" {
		return Decision{State: StateRedirecting, RedirectTo: RouteLogin}
	}
	return Decision{State: StateAuthorized}
}
