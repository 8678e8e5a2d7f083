package service

import (
	"context"
	"testing"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trasladoFixture struct {
	svc         TrasladoService
	traslados   *fakeTrasladoRepo
	sucursales  *fakeSucursalRepo
	inventarios *fakeInventarioRepo
	productos   *fakeProductoRepo
}

func newTrasladoFixture() *trasladoFixture {
	traslados := newFakeTrasladoRepo()
	sucursales := newFakeSucursalRepo()
	inventarios := newFakeInventarioRepo()
	productos := newFakeProductoRepo()
	inventarioSvc := NewInventarioService(inventarios, productos)
	return &trasladoFixture{
		svc:         NewTrasladoService(traslados, sucursales, inventarioSvc),
		traslados:   traslados,
		sucursales:  sucursales,
		inventarios: inventarios,
		productos:   productos,
	}
}

func TestCrearTraslado(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")
	producto := seedProducto(f.productos, "Paracetamol", "750200000001", "2.50")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
		SucursalOrigenID:  origen.ID.String(),
		SucursalDestinoID: destino.ID.String(),
		Items: []dto.TrasladoItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 10, resp.Items[0].Cantidad)
}

func TestCrearTrasladoMismaSucursal(t *testing.T) {
	f := newTrasladoFixture()
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
		SucursalOrigenID:  sucursal.ID.String(),
		SucursalDestinoID: sucursal.ID.String(),
		Items:             []dto.TrasladoItemRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestProcesarTrasladoMueveStock(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")
	producto := seedProducto(f.productos, "Ibuprofeno", "750200000002", "3.75")
	f.inventarios.seedRow(origen.InventarioID, producto.ID, 40, 10, 80)

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
		SucursalOrigenID:  origen.ID.String(),
		SucursalDestinoID: destino.ID.String(),
		Items: []dto.TrasladoItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 15},
		},
	})
	require.NoError(t, err)

	procesado, err := f.svc.Procesar(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "completada", procesado.Estado)
	require.NotNil(t, procesado.FechaProcesado)
	assert.Equal(t, 25, f.inventarios.cantidadDe(origen.InventarioID, producto.ID))
	assert.Equal(t, 15, f.inventarios.cantidadDe(destino.InventarioID, producto.ID))

	fila, err := f.inventarios.FindProducto(context.Background(), destino.InventarioID, producto.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fila.StockMinimo)
	assert.Equal(t, 80, fila.StockMaximo)
}

func TestProcesarTrasladoStockInsuficiente(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")
	producto := seedProducto(f.productos, "Insulina", "750200000003", "45.00")
	f.inventarios.seedRow(origen.InventarioID, producto.ID, 4, 5, 100)

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
		SucursalOrigenID:  origen.ID.String(),
		SucursalDestinoID: destino.ID.String(),
		Items: []dto.TrasladoItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 10},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Procesar(context.Background(), uuid.MustParse(resp.ID))
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))

	// Nothing moved and the traslado sigue pendiente.
	assert.Equal(t, 4, f.inventarios.cantidadDe(origen.InventarioID, producto.ID))
	assert.Equal(t, -1, f.inventarios.cantidadDe(destino.InventarioID, producto.ID))
	guardado, err := f.traslados.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, guardado.Estado)
}

func TestProcesarTrasladoNoPendiente(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")

	traslado := &model.Traslado{
		ID:                uuid.New(),
		SucursalOrigenID:  origen.ID,
		SucursalDestinoID: destino.ID,
		SolicitanteID:     uuid.New(),
		Estado:            model.EstadoCompletada,
	}
	f.traslados.traslados[traslado.ID] = traslado

	_, err := f.svc.Procesar(context.Background(), traslado.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAnularTraslado(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")
	producto := seedProducto(f.productos, "Gasas", "750200000004", "0.80")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
		SucursalOrigenID:  origen.ID.String(),
		SucursalDestinoID: destino.ID.String(),
		Items: []dto.TrasladoItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 3},
		},
	})
	require.NoError(t, err)

	err = f.svc.Anular(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	guardado, err := f.traslados.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAnulada, guardado.Estado)

	// Anulada no se puede procesar.
	_, err = f.svc.Procesar(context.Background(), guardado.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestListarTrasladosPorEstado(t *testing.T) {
	f := newTrasladoFixture()
	origen := seedSucursal(f.sucursales, f.inventarios, "Central")
	destino := seedSucursal(f.sucursales, f.inventarios, "Sur")
	producto := seedProducto(f.productos, "Alcohol", "750200000005", "3.00")

	for i := 0; i < 3; i++ {
		_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearTrasladoRequest{
			SucursalOrigenID:  origen.ID.String(),
			SucursalDestinoID: destino.ID.String(),
			Items:             []dto.TrasladoItemRequest{{ProductoID: producto.ID.String(), Cantidad: 1}},
		})
		require.NoError(t, err)
	}

	pendiente := model.EstadoPendiente
	lista, err := f.svc.Listar(context.Background(), &pendiente, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), lista.Total)

	anulada := model.EstadoAnulada
	vacia, err := f.svc.Listar(context.Background(), &anulada, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), vacia.Total)
}
