package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// identityChecker es el contrato mínimo que necesitan los middlewares.
// Lo implementa *auth.AuthUseCase; la interfaz evita el import circular.
// Authenticate y Authorize re-leen el usuario en DB en cada request: la
// blacklist y los cambios de rol aplican de inmediato.
type identityChecker interface {
	Authenticate(token string) (string, error)
	Authorize(userID string, roles ...string) (string, error)
}

// Locals keys para identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalToken  = "token"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token (firma, expiración, existencia del
// usuario y blacklist) y deja UserID y el token crudo en c.Locals.
func AuthMiddleware(ids identityChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := ids.Authenticate(tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o revocado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo validar la sesión"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// RequireRole autoriza contra el rol actual del usuario en DB.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
func RequireRole(ids identityChecker, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
		}
		role, err := ids.Authorize(userID, roles...)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
			}
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo verificar el rol"})
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetToken devuelve el token crudo presentado (para logout/blacklist).
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

// GetRole devuelve el rol resuelto por RequireRole.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
