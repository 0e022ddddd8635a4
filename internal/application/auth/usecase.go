package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase orquesta el ciclo de vida de identidad:
// registro → verificación por OTP → login → invalidación de sesión (blacklist).
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg}
}

// normalizeEmail deja el email en minúsculas y sin espacios; la unicidad es
// case-insensitive sobre esta forma.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea un usuario sin verificar: hashea el password con bcrypt,
// emite un OTP con expiración de 10 minutos y despacha el correo de
// verificación (best-effort). Devuelve ErrEmailAlreadyExists si el email ya
// existe; el constraint único de la DB respalda el pre-chequeo.
// No devuelve token: la cuenta aún no sirve para llamadas autenticadas.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	otp, err := GenerateOTP()
	if err != nil {
		return nil, err
	}
	expires := OTPExpiration()

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, domain.ErrInvalidInput
	}

	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           email,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		PasswordHash:    string(hash),
		IsVerified:      false,
		VerificationOTP: &otp,
		OTPExpires:      &expires,
		Role:            role,
		Blacklist:       []string{},
		CreatedAt:       time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Best-effort: un fallo de entrega no revierte el registro.
	_ = uc.mailer.SendVerificationCode(user.Email, user.FirstName, user.LastName, otp)

	return toUserResponse(user), nil
}

// Login verifica email/password. Con usuario sin verificar rota el OTP,
// reenvía el correo y falla con ErrEmailNotVerified; con usuario verificado
// emite un JWT de 24 horas atado al userID.
// Email desconocido y password incorrecto fallan indistintamente con
// ErrUnauthorized (bcrypt compara en tiempo constante).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.IsVerified {
		otp, err := GenerateOTP()
		if err != nil {
			return nil, err
		}
		expires := OTPExpiration()
		user.VerificationOTP = &otp
		user.OTPExpires = &expires
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
		_ = uc.mailer.SendVerificationCode(user.Email, user.FirstName, user.LastName, otp)
		return nil, domain.ErrEmailNotVerified
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer,
		time.Duration(uc.jwtCfg.ExpHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// VerifyEmail marca la cuenta como verificada si el código coincide exacto y
// no ha expirado. El éxito limpia ambos campos OTP en el mismo guardado, así
// que el código nunca puede reutilizarse: reintentar tras verificar siempre
// falla con ErrOTPExpired.
func (uc *AuthUseCase) VerifyEmail(userID, otp string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if user.VerificationOTP == nil || user.OTPExpires == nil || time.Now().After(*user.OTPExpires) {
		return nil, domain.ErrOTPExpired
	}
	// Igualdad exacta, sensible a mayúsculas, en tiempo constante.
	if subtle.ConstantTimeCompare([]byte(*user.VerificationOTP), []byte(otp)) != 1 {
		return nil, domain.ErrInvalidOTP
	}

	user.IsVerified = true
	user.VerificationOTP = nil
	user.OTPExpires = nil
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ResendVerificationOTP emite un código nuevo y reenvía el correo.
// Con cuenta ya verificada falla con ErrConflict: un código sobre una cuenta
// verificada no tiene flujo legítimo.
func (uc *AuthUseCase) ResendVerificationOTP(userID string) error {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsVerified {
		return domain.ErrConflict
	}

	otp, err := GenerateOTP()
	if err != nil {
		return err
	}
	expires := OTPExpiration()
	user.VerificationOTP = &otp
	user.OTPExpires = &expires
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	_ = uc.mailer.SendVerificationCode(user.Email, user.FirstName, user.LastName, otp)
	return nil
}

// Logout revoca el token exacto presentado agregándolo a la blacklist del
// usuario; ese string nunca vuelve a autenticar aunque no haya expirado.
func (uc *AuthUseCase) Logout(userID, token string) error {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsBlacklisted(token) {
		return nil
	}
	user.Blacklist = append(user.Blacklist, token)
	return uc.userRepo.Update(user)
}

// Authenticate valida firma y expiración del token, re-lee el usuario y
// consulta su blacklist. Devuelve el userID. Cualquier fallo colapsa en
// ErrUnauthorized para no filtrar cuál chequeo falló.
func (uc *AuthUseCase) Authenticate(token string) (string, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil || user.IsBlacklisted(token) {
		return "", domain.ErrUnauthorized
	}
	return user.ID, nil
}

// Authorize re-lee el usuario (los cambios de rol aplican de inmediato) y
// verifica que su rol esté entre los permitidos. Devuelve el rol.
func (uc *AuthUseCase) Authorize(userID string, roles ...string) (string, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	for _, r := range roles {
		if user.Role == r {
			return user.Role, nil
		}
	}
	return "", domain.ErrForbidden
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UserID:     u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
