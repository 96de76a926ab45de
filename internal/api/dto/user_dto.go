package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IDByEmailRequest payload for id lookup.
type IDByEmailRequest struct {
	Email string `json:"email" form:"email"`
}

// UserResponse mirrors the stored account minus the password hash.
type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
