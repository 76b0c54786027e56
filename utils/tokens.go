package utils

// Identity issuance (register/login, password reset, social providers)
// lives in a separate auth service. This server only verifies access
// tokens it is handed and consumes the claims below.

type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}
