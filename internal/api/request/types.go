package request

// LoginRequest is the request body for POST /login
type LoginRequest struct {
	Username string `json:"username"`
}

// LogoutRequest is the request body for POST /logout
type LogoutRequest struct {
	Username string `json:"username"`
}
