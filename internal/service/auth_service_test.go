package service

import (
	"context"
	"testing"

	"tiendapos/internal/config"
	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	repo.usuarios[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthService()
	u := seedUsuario(t, repo, "maria", "secreto1", domain.RolCajero)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, domain.RolCajero, resp.User.Rol)
	assert.Contains(t, resp.User.Permisos, domain.PermisoCrearVenta)
	assert.NotContains(t, resp.User.Permisos, domain.PermisoGestionarUsuarios)
	assert.NotNil(t, u.UltimoLogin)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, repo := newAuthService()
	seedUsuario(t, repo, "maria", "secreto1", domain.RolCajero)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestLoginUsuarioDesconocido(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthService()
	u := seedUsuario(t, repo, "maria", "secreto1", domain.RolCajero)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestRefresh(t *testing.T) {
	svc, repo := newAuthService()
	seedUsuario(t, repo, "maria", "secreto1", domain.RolSupervisor)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto1"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "maria", resp.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
}

func TestCrearUsuario(t *testing.T) {
	svc, repo := newAuthService()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "admin",
		Password: "clave123",
		Nombre:   "Administradora",
		Rol:      domain.RolAdministrador,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Permisos, domain.PermisoGestionarUsuarios)
	assert.True(t, resp.Activo)

	// Password stored hashed, never in clear
	u, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave123")))
}

func TestActualizarUsuarioCambioDeRol(t *testing.T) {
	svc, repo := newAuthService()
	u := seedUsuario(t, repo, "maria", "secreto1", domain.RolCajero)

	rol := domain.RolSupervisor
	resp, err := svc.ActualizarUsuario(context.Background(), u.ID, dto.ActualizarUsuarioRequest{Rol: &rol})
	require.NoError(t, err)

	assert.Equal(t, domain.RolSupervisor, resp.Rol)
	assert.Contains(t, resp.Permisos, domain.PermisoAnularVenta)
}

func TestDesactivarUsuario(t *testing.T) {
	svc, repo := newAuthService()
	u := seedUsuario(t, repo, "maria", "secreto1", domain.RolCajero)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), u.ID))
	assert.False(t, u.Activo)
}
