package service

import (
	"context"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/config"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, token string) (*dto.LoginResponse, error)
	CambiarPassword(ctx context.Context, personaID uuid.UUID, req dto.CambiarPasswordRequest) error
}

type authService struct {
	repo repository.PersonaRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.PersonaRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	persona, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierror.Unauthorized("credenciales inválidas")
	}
	if !persona.Activo {
		return nil, apierror.Unauthorized("credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(persona.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("credenciales inválidas")
	}
	return s.buildLoginResponse(persona)
}

func (s *authService) Refresh(ctx context.Context, tokenStr string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Unauthorized("token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("token mal formado")
	}
	idStr, ok := claims["persona_id"].(string)
	if !ok {
		return nil, apierror.Unauthorized("token mal formado")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apierror.Unauthorized("token mal formado")
	}

	persona, err := s.repo.FindByID(ctx, id)
	if err != nil || !persona.Activo {
		return nil, apierror.Unauthorized("persona no encontrada o inactiva")
	}
	return s.buildLoginResponse(persona)
}

func (s *authService) CambiarPassword(ctx context.Context, personaID uuid.UUID, req dto.CambiarPasswordRequest) error {
	persona, err := s.repo.FindByID(ctx, personaID)
	if err != nil {
		return apierror.NotFound("persona no encontrada")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(persona.PasswordHash), []byte(req.PasswordActual)); err != nil {
		return apierror.Unauthorized("la contraseña actual no coincide")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNueva), 12)
	if err != nil {
		return apierror.Internal(err, "no se pudo actualizar la contraseña")
	}
	persona.PasswordHash = string(hash)
	if err := s.repo.Save(ctx, persona); err != nil {
		return apierror.Internal(err, "no se pudo actualizar la contraseña")
	}
	return nil
}

func (s *authService) buildLoginResponse(persona *model.Persona) (*dto.LoginResponse, error) {
	token, err := s.generateToken(persona)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo generar el token")
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationMinutes * 60,
		Persona:     *personaToResponse(persona),
	}, nil
}

func (s *authService) generateToken(persona *model.Persona) (string, error) {
	rol := ""
	if persona.Rol != nil {
		rol = persona.Rol.Nombre
	}
	claims := jwt.MapClaims{
		"persona_id": persona.ID.String(),
		"email":      persona.Email,
		"nombre":     persona.NombreCompleto(),
		"rol":        rol,
		"exp":        time.Now().Add(time.Duration(s.cfg.JWTExpirationMinutes) * time.Minute).Unix(),
		"iat":        time.Now().Unix(),
	}
	if persona.SucursalID != nil {
		claims["sucursal_id"] = persona.SucursalID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
