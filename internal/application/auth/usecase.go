package auth

import (
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// OperatorRole rol único: la aplicación tiene un solo operador.
const OperatorRole = "operator"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret       string
	ExpMinutes   int
	Issuer       string
	PasswordHash string // bcrypt del password del operador
}

// AuthUseCase login del operador. Con Secret vacío la autenticación está deshabilitada.
type AuthUseCase struct {
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg}
}

// Enabled indica si las rutas deben exigir token.
func (uc *AuthUseCase) Enabled() bool { return uc.jwtCfg.Secret != "" }

// Login verifica el password contra el hash bcrypt y genera un JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.jwtCfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, OperatorRole, OperatorRole, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// Verify valida un token emitido por Login.
func (uc *AuthUseCase) Verify(token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil || claims.Role != OperatorRole {
		return domain.ErrUnauthorized
	}
	return nil
}

// HashPassword genera el hash bcrypt para OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
