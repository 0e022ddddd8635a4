package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema con su ciclo de verificación.
// VerificationOTP y OTPExpires son ambos nil o ambos no-nil: se emiten juntos
// al registrar (o al reintentar login sin verificar) y se limpian juntos,
// exactamente una vez, al verificar el email.
type User struct {
	ID              string
	Email           string // único, normalizado a minúsculas
	FirstName       string
	LastName        string
	PasswordHash    string // bcrypt hash, nunca plano después de persistir
	IsVerified      bool
	VerificationOTP *string
	OTPExpires      *time.Time
	Role            string // admin, user
	Blacklist       []string // tokens revocados antes de su expiración natural
	CreatedAt       time.Time
}

// IsBlacklisted reporta si el token exacto fue revocado para este usuario.
func (u *User) IsBlacklisted(token string) bool {
	for _, t := range u.Blacklist {
		if t == token {
			return true
		}
	}
	return false
}
