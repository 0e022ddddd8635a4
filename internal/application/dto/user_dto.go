package dto

import "time"

// RegisterRequest entrada para registro de usuario.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role"` // "user" (default) | "admin"
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailRequest entrada para verificar el email con el código enviado.
type VerifyEmailRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// UserResponse perfil público de un usuario (nunca incluye hash ni OTP).
type UserResponse struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LoginResponse token + perfil tras un login exitoso.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
