package model

// User represents a login account. Profile data lives in Profile,
// one-to-one with the account.
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// RegisterRequest carries both the account and the initial profile fields,
// the two forms the registration page submits together.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=64"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required,min=8"`
	IsDoctor   bool   `json:"is_doctor"`
	DoctorType string `json:"doctor_type" binding:"max=128"`
	AboutMe    string `json:"about_me" binding:"max=2048"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
