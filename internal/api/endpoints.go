package api

// Authentication endpoints
const (
	AuthBase = "/api/auth"

	AuthSignup  = AuthBase + "/signup"
	AuthLogin   = AuthBase + "/login"
	AuthProfile = AuthBase + "/profile"
)

// PublicEndpoints defines endpoints that don't require authentication
var PublicEndpoints = map[string]bool{
	AuthSignup: true,
	AuthLogin:  true,
}
