package service

import (
	"context"
	"testing"

	"farmavita/internal/apierror"
	"farmavita/internal/config"
	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *fakePersonaRepo, *model.Persona) {
	t.Helper()
	personas := newFakePersonaRepo()
	cfg := &config.Config{JWTSecret: "clave-de-prueba", JWTExpirationMinutes: 60}

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	persona := &model.Persona{
		ID:           uuid.New(),
		Nombres:      "Ana",
		Apellidos:    "Lopez",
		Email:        "ana@farmavita.com",
		PasswordHash: string(hash),
		RolID:        uuid.New(),
		Rol:          &model.Rol{Nombre: "cajero"},
		Activo:       true,
	}
	personas.personas[persona.ID] = persona
	return NewAuthService(personas, cfg), personas, persona
}

func TestLogin(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: persona.Email, Password: "secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, persona.Email, resp.Persona.Email)
	assert.Equal(t, "cajero", resp.Persona.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: persona.Email, Password: "otra-cosa",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestLoginEmailDesconocido(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@farmavita.com", Password: "secreto123",
	})
	require.Error(t, err)
	// Same message as a bad password: the response never reveals whether
	// the account exists.
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestLoginPersonaInactiva(t *testing.T) {
	svc, _, persona := newAuthFixture(t)
	persona.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: persona.Email, Password: "secreto123",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestRefresh(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: persona.Email, Password: "secreto123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, persona.Email, refreshed.Persona.Email)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestRefreshPersonaDesactivada(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: persona.Email, Password: "secreto123",
	})
	require.NoError(t, err)

	persona.Activo = false
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestCambiarPassword(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	err := svc.CambiarPassword(context.Background(), persona.ID, dto.CambiarPasswordRequest{
		PasswordActual: "secreto123",
		PasswordNueva:  "nuevosecreto456",
	})
	require.NoError(t, err)

	// Old password no longer works; the new one does.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: persona.Email, Password: "secreto123"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: persona.Email, Password: "nuevosecreto456"})
	require.NoError(t, err)
}

func TestCambiarPasswordActualIncorrecta(t *testing.T) {
	svc, _, persona := newAuthFixture(t)

	err := svc.CambiarPassword(context.Background(), persona.ID, dto.CambiarPasswordRequest{
		PasswordActual: "equivocada",
		PasswordNueva:  "nuevosecreto456",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}
