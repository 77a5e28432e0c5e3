package session

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		route      Route
		token      string
		wantState  GuardState
		wantTarget Route
	}{
		{
			name:       "login route with token redirects home",
			route:      RouteLogin,
			token:      "tok-123",
			wantState:  StateRedirecting,
			wantTarget: RouteHome,
		},
		{
			name:      "login route without token stays",
			route:     RouteLogin,
			token:     "",
			wantState: StateAuthorized,
		},
		{
			name:       "protected route without token redirects to login",
			route:      RouteProducts,
			token:      "",
			wantState:  StateRedirecting,
			wantTarget: RouteLogin,
		},
		{
			name:      "protected route with token authorizes",
			route:     RouteOffers,
			token:     "tok-123",
			wantState: StateAuthorized,
		},
		{
			name:      "home with token authorizes",
			route:     RouteHome,
			token:     "tok-123",
			wantState: StateAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.route, tt.token)
			if d.State != tt.wantState {
				t.Errorf("Expected state %v, got %v", tt.wantState, d.State)
			}
			if d.RedirectTo != tt.wantTarget {
				t.Errorf("Expected redirect to %q, got %q", tt.wantTarget, d.RedirectTo)
			}
			if tt.wantState == StateAuthorized && !d.Authorized() {
				t.Error("Expected Authorized() to be true")
			}
			if tt.wantState != StateAuthorized && d.Authorized() {
				t.Error("Expected Authorized() to be false")
			}
		})
	}
}

func TestEvaluateRedirectSettles(t *testing.T) {
	// Following a redirect and re-evaluating with the same token must
	// always authorize; the guard can never loop.
	for _, token := range []string{"", "tok"} {
		for _, route := range []Route{RouteLogin, RouteHome, RouteProducts, RouteOffers} {
			d := Evaluate(route, token)
			if d.State != StateRedirecting {
				continue
			}
			if followed := Evaluate(d.RedirectTo, token); !followed.Authorized() {
				t.Errorf("Redirect from %q with token %q did not settle", route, token)
			}
		}
	}
}
