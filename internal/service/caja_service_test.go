package service

import (
	"context"
	"errors"
	"testing"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCajaFixture() (CajaService, *fakeAperturaRepo, *fakeSucursalRepo, *fakeInventarioRepo) {
	aperturas := newFakeAperturaRepo()
	sucursales := newFakeSucursalRepo()
	inventarios := newFakeInventarioRepo()
	return NewCajaService(aperturas, sucursales), aperturas, sucursales, inventarios
}

func TestAbrirCaja(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	personaID := uuid.New()

	resp, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID:        caja.ID.String(),
		MontoApertura: mustDecimal("500.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Activa)
	assert.Equal(t, personaID.String(), resp.PersonaID)
	assert.Equal(t, "Caja 1", resp.Caja)
	assert.True(t, resp.MontoApertura.Equal(mustDecimal("500.00")))
}

func TestAbrirCajaMontoNegativo(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID:        caja.ID.String(),
		MontoApertura: mustDecimal("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestAbrirCajaInactiva(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	caja.Activo = false

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID:        caja.ID.String(),
		MontoApertura: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAbrirCajaCarreraDetectadaPorIndice(t *testing.T) {
	svc, aperturas, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")

	// Two opens race past the pre-checks; the partial unique index rejects
	// the second insert.
	aperturas.createErr = &pgconn.PgError{Code: "23505"}

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Contains(t, err.Error(), "apertura activa")
}

func TestAbrirCajaFalloDeBaseDeDatos(t *testing.T) {
	svc, aperturas, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")

	aperturas.createErr = errors.New("driver: bad connection")

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
}

func TestAbrirCajaYaAbierta(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	// Second open on the same register, different cashier.
	_, err = svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Contains(t, err.Error(), "apertura activa")
}

func TestAbrirCajaPersonaConCajaAbierta(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja1 := seedCaja(sucursales, sucursal.ID, "Caja 1")
	caja2 := seedCaja(sucursales, sucursal.ID, "Caja 2")
	personaID := uuid.New()

	_, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja1.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	// Same cashier trying a second register.
	_, err = svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja2.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Contains(t, err.Error(), "ya tiene una caja abierta")
}

func TestCerrarCaja(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	personaID := uuid.New()

	abierta, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	obs := "sin novedad"
	cerrada, err := svc.Cerrar(context.Background(), personaID, dto.CerrarCajaRequest{
		AperturaID:    abierta.ID,
		MontoCierre:   mustDecimal("842.50"),
		Observaciones: &obs,
	})
	require.NoError(t, err)
	assert.False(t, cerrada.Activa)
	require.NotNil(t, cerrada.MontoCierre)
	assert.True(t, cerrada.MontoCierre.Equal(mustDecimal("842.50")))
	require.NotNil(t, cerrada.FechaCierre)
	require.NotNil(t, cerrada.Observaciones)
	assert.Equal(t, "sin novedad", *cerrada.Observaciones)
}

func TestCerrarCajaSoloQuienAbrio(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	personaID := uuid.New()

	abierta, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		AperturaID: abierta.ID, MontoCierre: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Contains(t, err.Error(), "solo quien abrió la caja")
}

func TestCerrarCajaYaCerrada(t *testing.T) {
	svc, _, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	personaID := uuid.New()

	abierta, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), personaID, dto.CerrarCajaRequest{
		AperturaID: abierta.ID, MontoCierre: mustDecimal("100"),
	})
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), personaID, dto.CerrarCajaRequest{
		AperturaID: abierta.ID, MontoCierre: mustDecimal("100"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestCerrarCajaObservacionesSeAcumulan(t *testing.T) {
	svc, aperturas, sucursales, inventarios := newCajaFixture()
	sucursal := seedSucursal(sucursales, inventarios, "Central")
	caja := seedCaja(sucursales, sucursal.ID, "Caja 1")
	personaID := uuid.New()

	abierta, err := svc.Abrir(context.Background(), personaID, dto.AbrirCajaRequest{
		CajaID: caja.ID.String(), MontoApertura: mustDecimal("100"),
	})
	require.NoError(t, err)

	previa := "billete roto en apertura"
	aperturaID := uuid.MustParse(abierta.ID)
	aperturas.aperturas[aperturaID].Observaciones = &previa

	obs := "faltante de 5.00"
	cerrada, err := svc.Cerrar(context.Background(), personaID, dto.CerrarCajaRequest{
		AperturaID:    abierta.ID,
		MontoCierre:   mustDecimal("95"),
		Observaciones: &obs,
	})
	require.NoError(t, err)
	require.NotNil(t, cerrada.Observaciones)
	assert.Equal(t, "billete roto en apertura | faltante de 5.00", *cerrada.Observaciones)
}

func TestObtenerActivaSinApertura(t *testing.T) {
	svc, _, _, _ := newCajaFixture()
	_, err := svc.ObtenerActiva(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestFindAperturaActivaCerrada(t *testing.T) {
	svc, aperturas, _, _ := newCajaFixture()
	a := &model.AperturaCaja{ID: uuid.New(), CajaID: uuid.New(), PersonaID: uuid.New(), Activa: false}
	aperturas.aperturas[a.ID] = a

	_, err := svc.FindAperturaActiva(context.Background(), a.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}
