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

func newInventarioFixture() (InventarioService, *fakeInventarioRepo, *fakeProductoRepo) {
	inventarios := newFakeInventarioRepo()
	productos := newFakeProductoRepo()
	return NewInventarioService(inventarios, productos), inventarios, productos
}

func seedInventario(repo *fakeInventarioRepo, nombre string) *model.Inventario {
	inv := &model.Inventario{ID: uuid.New(), Nombre: nombre, Activo: true}
	repo.inventarios[inv.ID] = inv
	return inv
}

func TestAgregarProductoCreaFila(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Paracetamol 500mg", "750100000001", "2.50")

	resp, err := svc.AgregarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     30,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Cantidad)
	assert.Equal(t, 5, resp.StockMinimo)
	assert.Equal(t, 100, resp.StockMaximo)
	assert.Equal(t, "Paracetamol 500mg", resp.Producto)
}

func TestAgregarProductoAcumula(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Ibuprofeno 400mg", "750100000002", "3.75")
	inventarios.seedRow(inv.ID, producto.ID, 10, 5, 100)

	nuevoMax := 200
	resp, err := svc.AgregarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     15,
		StockMaximo:  &nuevoMax,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Cantidad)
	assert.Equal(t, 200, resp.StockMaximo)
}

func TestAgregarProductoInactivo(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Descontinuado", "750100000003", "1.00")
	producto.Activo = false

	_, err := svc.AgregarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     10,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAgregarProductoMinimoSuperaMaximo(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Amoxicilina", "750100000004", "8.00")

	min, max := 50, 10
	_, err := svc.AgregarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     10,
		StockMinimo:  &min,
		StockMaximo:  &max,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestQuitarProducto(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Omeprazol", "750100000005", "4.20")
	inventarios.seedRow(inv.ID, producto.ID, 20, 5, 100)

	err := svc.QuitarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, inventarios.cantidadDe(inv.ID, producto.ID))
}

func TestQuitarProductoLlegaACeroEliminaFila(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Loratadina", "750100000006", "2.00")
	inventarios.seedRow(inv.ID, producto.ID, 8, 5, 100)

	err := svc.QuitarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, inventarios.cantidadDe(inv.ID, producto.ID), "la fila debe desaparecer al llegar a cero")
}

func TestQuitarProductoStockInsuficiente(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Aspirina", "750100000007", "1.50")
	inventarios.seedRow(inv.ID, producto.ID, 3, 5, 100)

	err := svc.QuitarProducto(context.Background(), dto.AjusteInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     10,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Contains(t, err.Error(), "stock insuficiente: hay 3, se pidió 10")
	assert.Equal(t, 3, inventarios.cantidadDe(inv.ID, producto.ID), "un deficit no debe mover nada")
}

func TestActualizarProducto(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Vitamina C", "750100000008", "6.00")
	inventarios.seedRow(inv.ID, producto.ID, 10, 5, 100)

	cantidad, min := 40, 10
	resp, err := svc.ActualizarProducto(context.Background(), dto.ActualizarInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     &cantidad,
		StockMinimo:  &min,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Cantidad)
	assert.Equal(t, 10, resp.StockMinimo)
	assert.Equal(t, 40, inventarios.cantidadDe(inv.ID, producto.ID))
}

func TestActualizarProductoCantidadCeroEliminaFila(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Jarabe", "750100000009", "5.50")
	inventarios.seedRow(inv.ID, producto.ID, 10, 5, 100)

	cero := 0
	_, err := svc.ActualizarProducto(context.Background(), dto.ActualizarInventarioRequest{
		InventarioID: inv.ID.String(),
		ProductoID:   producto.ID.String(),
		Cantidad:     &cero,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, inventarios.cantidadDe(inv.ID, producto.ID))
}

func TestTrasladarConservaTotal(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	origen := seedInventario(inventarios, "Central")
	destino := seedInventario(inventarios, "Sur")
	producto := seedProducto(productos, "Insulina", "750100000010", "45.00")
	inventarios.seedRow(origen.ID, producto.ID, 50, 8, 60)

	err := svc.Trasladar(context.Background(), dto.TrasladarInventarioRequest{
		OrigenID:   origen.ID.String(),
		DestinoID:  destino.ID.String(),
		ProductoID: producto.ID.String(),
		Cantidad:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, inventarios.cantidadDe(origen.ID, producto.ID))
	assert.Equal(t, 20, inventarios.cantidadDe(destino.ID, producto.ID))

	// The row created in the destination inherits the origin's thresholds.
	fila, err := inventarios.FindProducto(context.Background(), destino.ID, producto.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fila.StockMinimo)
	assert.Equal(t, 60, fila.StockMaximo)
}

func TestTrasladarMismoInventario(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	producto := seedProducto(productos, "Gasas", "750100000011", "0.80")

	err := svc.Trasladar(context.Background(), dto.TrasladarInventarioRequest{
		OrigenID:   inv.ID.String(),
		DestinoID:  inv.ID.String(),
		ProductoID: producto.ID.String(),
		Cantidad:   5,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestTrasladarStockInsuficiente(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	origen := seedInventario(inventarios, "Central")
	destino := seedInventario(inventarios, "Sur")
	producto := seedProducto(productos, "Alcohol gel", "750100000012", "3.00")
	inventarios.seedRow(origen.ID, producto.ID, 5, 5, 100)

	err := svc.Trasladar(context.Background(), dto.TrasladarInventarioRequest{
		OrigenID:   origen.ID.String(),
		DestinoID:  destino.ID.String(),
		ProductoID: producto.ID.String(),
		Cantidad:   12,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Equal(t, 5, inventarios.cantidadDe(origen.ID, producto.ID))
	assert.Equal(t, -1, inventarios.cantidadDe(destino.ID, producto.ID))
}

func TestAlertasStockBajo(t *testing.T) {
	svc, inventarios, productos := newInventarioFixture()
	inv := seedInventario(inventarios, "Central")
	bajo := seedProducto(productos, "Suero oral", "750100000013", "2.10")
	sano := seedProducto(productos, "Curitas", "750100000014", "1.20")
	rowBajo := inventarios.seedRow(inv.ID, bajo.ID, 2, 5, 100)
	rowBajo.Producto = bajo
	inventarios.seedRow(inv.ID, sano.ID, 50, 5, 100)

	alertas, err := svc.Alertas(context.Background(), &inv.ID)
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, bajo.ID.String(), alertas[0].ProductoID)
	assert.Equal(t, "Suero oral", alertas[0].Producto)
	assert.Equal(t, 2, alertas[0].Cantidad)
	assert.Equal(t, 5, alertas[0].StockMinimo)
}
