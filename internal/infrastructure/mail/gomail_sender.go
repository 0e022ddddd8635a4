package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

var _ auth.Mailer = (*GomailSender)(nil)

// GomailSender envía el código de verificación por SMTP.
// La entrega es best-effort: el core ignora el error, este adaptador lo
// registra para diagnóstico.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewGomailSender construye el adaptador SMTP.
func NewGomailSender(cfg config.SMTPConfig, log *logger.Logger) *GomailSender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		log:    log,
	}
}

// SendVerificationCode envía el correo con el OTP de verificación.
func (s *GomailSender) SendVerificationCode(email, firstName, lastName, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Tu código de verificación")
	m.SetBody("text/html", verificationBody(firstName, lastName, otp))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Warn().Err(err).Str("to", email).Msg("envío de código de verificación falló")
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func verificationBody(firstName, lastName, otp string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		  <h2>Verificación de email</h2>
		  <p>Hola %s %s,</p>
		  <p>Gracias por registrarte. Tu código de verificación es:</p>
		  <div style="text-align: center; margin: 30px 0;">
		    <div style="font-size: 32px; letter-spacing: 5px; font-weight: bold; background-color: #f5f5f5; padding: 15px; border-radius: 8px;">%s</div>
		  </div>
		  <p>Este código expira en 10 minutos.</p>
		  <p>Si no creaste una cuenta, ignora este correo.</p>
		</div>`, firstName, lastName, otp)
}
