package auth

// Mailer envía el código de verificación fuera de banda (colaborador externo).
// El core lo trata como best-effort: un fallo de entrega no revierte el
// registro ni el reintento de login.
type Mailer interface {
	SendVerificationCode(email, firstName, lastName, otp string) error
}
