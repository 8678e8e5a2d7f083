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

type ordenFixture struct {
	svc         OrdenService
	ordenes     *fakeOrdenRepo
	proveedores *fakeProveedorRepo
	sucursales  *fakeSucursalRepo
	inventarios *fakeInventarioRepo
	productos   *fakeProductoRepo
}

func newOrdenFixture() *ordenFixture {
	ordenes := newFakeOrdenRepo()
	proveedores := newFakeProveedorRepo()
	sucursales := newFakeSucursalRepo()
	inventarios := newFakeInventarioRepo()
	productos := newFakeProductoRepo()
	inventarioSvc := NewInventarioService(inventarios, productos)
	return &ordenFixture{
		svc:         NewOrdenService(ordenes, proveedores, sucursales, inventarioSvc),
		ordenes:     ordenes,
		proveedores: proveedores,
		sucursales:  sucursales,
		inventarios: inventarios,
		productos:   productos,
	}
}

func seedProveedor(repo *fakeProveedorRepo, razonSocial string) *model.Proveedor {
	p := &model.Proveedor{ID: uuid.New(), RazonSocial: razonSocial, NIT: uuid.NewString(), Activo: true}
	repo.proveedores[p.ID] = p
	return p
}

func TestCrearOrden(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")
	producto := seedProducto(f.productos, "Amoxicilina", "750300000001", "8.00")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items: []dto.OrdenItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 100, CostoUnitario: mustDecimal("5.40")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 100, resp.Items[0].Cantidad)
}

func TestCrearOrdenProveedorInactivo(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Cerrado SA")
	proveedor.Activo = false
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items:       []dto.OrdenItemRequest{{ProductoID: uuid.NewString(), Cantidad: 1, CostoUnitario: mustDecimal("1")}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestCrearOrdenCostoNegativo(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")

	_, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items:       []dto.OrdenItemRequest{{ProductoID: uuid.NewString(), Cantidad: 1, CostoUnitario: mustDecimal("-2")}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestConfirmarOrdenAgregaStock(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")
	producto := seedProducto(f.productos, "Omeprazol", "750300000002", "4.20")
	f.inventarios.seedRow(sucursal.InventarioID, producto.ID, 10, 5, 100)

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items: []dto.OrdenItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 60, CostoUnitario: mustDecimal("2.80")},
		},
	})
	require.NoError(t, err)

	aprobadorID := uuid.New()
	confirmada, err := f.svc.Confirmar(context.Background(), uuid.MustParse(resp.ID), aprobadorID)
	require.NoError(t, err)
	assert.Equal(t, "completada", confirmada.Estado)
	require.NotNil(t, confirmada.FechaRecepcion)
	assert.Equal(t, 70, f.inventarios.cantidadDe(sucursal.InventarioID, producto.ID))
}

func TestConfirmarOrdenProductoNuevoEnInventario(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")
	producto := seedProducto(f.productos, "Producto nuevo", "750300000003", "9.99")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items: []dto.OrdenItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 25, CostoUnitario: mustDecimal("6.00")},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Confirmar(context.Background(), uuid.MustParse(resp.ID), uuid.New())
	require.NoError(t, err)

	// Row created with default thresholds.
	ip, err := f.inventarios.FindProducto(context.Background(), sucursal.InventarioID, producto.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, ip.Cantidad)
	assert.Equal(t, 5, ip.StockMinimo)
	assert.Equal(t, 100, ip.StockMaximo)
}

func TestConfirmarOrdenNoPendiente(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")
	producto := seedProducto(f.productos, "Aspirina", "750300000004", "1.50")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items: []dto.OrdenItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 10, CostoUnitario: mustDecimal("0.90")},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Confirmar(context.Background(), uuid.MustParse(resp.ID), uuid.New())
	require.NoError(t, err)

	// Confirming twice would double the stock.
	_, err = f.svc.Confirmar(context.Background(), uuid.MustParse(resp.ID), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Equal(t, 10, f.inventarios.cantidadDe(sucursal.InventarioID, producto.ID))
}

func TestAnularOrden(t *testing.T) {
	f := newOrdenFixture()
	proveedor := seedProveedor(f.proveedores, "Droguería Nacional")
	sucursal := seedSucursal(f.sucursales, f.inventarios, "Central")
	producto := seedProducto(f.productos, "Jarabe", "750300000005", "5.50")

	resp, err := f.svc.Crear(context.Background(), uuid.New(), dto.CrearOrdenRequest{
		ProveedorID: proveedor.ID.String(),
		SucursalID:  sucursal.ID.String(),
		Items: []dto.OrdenItemRequest{
			{ProductoID: producto.ID.String(), Cantidad: 10, CostoUnitario: mustDecimal("3.10")},
		},
	})
	require.NoError(t, err)

	err = f.svc.Anular(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	guardada, err := f.ordenes.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAnulada, guardada.Estado)

	err = f.svc.Anular(context.Background(), guardada.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}
