package session

// Route is the navigation decision derived from session state.
type Route int

const (
	// RouteLoading: authentication state not yet known, show a spinner.
	RouteLoading Route = iota
	// RouteSignIn: no valid session, show the sign-in screen.
	RouteSignIn
	// RouteOnboarding: authenticated but onboarding not completed, start
	// the wizard at its first step.
	RouteOnboarding
	// RouteHome: authenticated; onboarding done or its status still being
	// checked, allow the protected area.
	RouteHome
)

func (r Route) String() string {
	switch r {
	case RouteSignIn:
		return "sign-in"
	case RouteOnboarding:
		return "onboarding"
	case RouteHome:
		return "home"
	default:
		return "loading"
	}
}

// DecideRoute projects the two tri-state flags onto a route. It is a pure
// derivation, evaluated on demand and never persisted.
func DecideRoute(authenticated, setupDone TriState) Route {
	switch authenticated {
	case Unknown:
		return RouteLoading
	case False:
		return RouteSignIn
	default:
		if setupDone == False {
			return RouteOnboarding
		}
		// Unknown setup status does not block the protected area; the
		// check may still be in flight.
		return RouteHome
	}
}
