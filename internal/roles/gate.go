package roles

// Screen is the top-level view a client should render for a session.
type Screen string

const (
	// ScreenAuth: no identity or no profile row yet; show sign-in/sign-up.
	ScreenAuth Screen = "auth"
	// ScreenPending: signed in but not yet approved; profile is read-only
	// and the only available action is sign-out.
	ScreenPending Screen = "pending"
	// ScreenAdmin: approved administrator; user-administration panel.
	ScreenAdmin Screen = "admin"
	// ScreenDashboard: approved non-admin; role-scoped dashboard.
	ScreenDashboard Screen = "dashboard"
)

// ScreenFor resolves the approval gate. The checks form a strict priority
// chain: identity, then profile, then approval, then role. An unapproved
// admin lands on the pending screen, never the admin panel.
func ScreenFor(hasIdentity, hasProfile, approved bool, role string) Screen {
	if !hasIdentity || !hasProfile {
		return ScreenAuth
	}
	if !approved {
		return ScreenPending
	}
	if role == Admin {
		return ScreenAdmin
	}
	return ScreenDashboard
}
