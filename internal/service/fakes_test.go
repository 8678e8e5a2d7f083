package service

import (
	"context"
	"time"

	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// In-memory repository fakes. DB() returns nil so runTx executes the
// transaction body directly against the maps.

// ── AperturaRepository ───────────────────────────────────────────────────────

type fakeAperturaRepo struct {
	aperturas map[uuid.UUID]*model.AperturaCaja
	createErr error // injected failure for the next Create
}

var _ repository.AperturaRepository = (*fakeAperturaRepo)(nil)

func newFakeAperturaRepo() *fakeAperturaRepo {
	return &fakeAperturaRepo{aperturas: make(map[uuid.UUID]*model.AperturaCaja)}
}

func (r *fakeAperturaRepo) Create(_ context.Context, a *model.AperturaCaja) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.aperturas[a.ID] = a
	return nil
}

func (r *fakeAperturaRepo) Update(_ context.Context, a *model.AperturaCaja) error {
	r.aperturas[a.ID] = a
	return nil
}

func (r *fakeAperturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AperturaCaja, error) {
	a, ok := r.aperturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAperturaRepo) FindActivaPorCaja(_ context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error) {
	for _, a := range r.aperturas {
		if a.CajaID == cajaID && a.Activa {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAperturaRepo) FindActivaPorPersona(_ context.Context, personaID uuid.UUID) (*model.AperturaCaja, error) {
	for _, a := range r.aperturas {
		if a.PersonaID == personaID && a.Activa {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAperturaRepo) List(_ context.Context, _, _ int) ([]model.AperturaCaja, int64, error) {
	out := make([]model.AperturaCaja, 0, len(r.aperturas))
	for _, a := range r.aperturas {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

// ── SucursalRepository ───────────────────────────────────────────────────────

type fakeSucursalRepo struct {
	sucursales map[uuid.UUID]*model.Sucursal
	cajas      map[uuid.UUID]*model.Caja
}

var _ repository.SucursalRepository = (*fakeSucursalRepo)(nil)

func newFakeSucursalRepo() *fakeSucursalRepo {
	return &fakeSucursalRepo{
		sucursales: make(map[uuid.UUID]*model.Sucursal),
		cajas:      make(map[uuid.UUID]*model.Caja),
	}
}

func (r *fakeSucursalRepo) CreateConInventario(_ context.Context, s *model.Sucursal, inv *model.Inventario) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.InventarioID = inv.ID
	r.sucursales[s.ID] = s
	return nil
}

func (r *fakeSucursalRepo) Update(_ context.Context, s *model.Sucursal) error {
	r.sucursales[s.ID] = s
	return nil
}

func (r *fakeSucursalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sucursal, error) {
	s, ok := r.sucursales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSucursalRepo) List(_ context.Context, _ dto.ListFilter) ([]model.Sucursal, int64, error) {
	out := make([]model.Sucursal, 0, len(r.sucursales))
	for _, s := range r.sucursales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSucursalRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.sucursales[id]; ok {
		s.Activo = false
	}
	return nil
}

func (r *fakeSucursalRepo) SaveCaja(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *fakeSucursalRepo) FindCajaByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeSucursalRepo) ListCajas(_ context.Context, sucursalID *uuid.UUID, _ string) ([]model.Caja, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		if sucursalID == nil || c.SucursalID == *sucursalID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeSucursalRepo) SoftDeleteCaja(_ context.Context, id uuid.UUID) error {
	if c, ok := r.cajas[id]; ok {
		c.Activo = false
	}
	return nil
}

// ── InventarioRepository ─────────────────────────────────────────────────────

type fakeInventarioRepo struct {
	inventarios map[uuid.UUID]*model.Inventario
	rows        map[uuid.UUID]*model.InventarioProducto
}

var _ repository.InventarioRepository = (*fakeInventarioRepo)(nil)

func newFakeInventarioRepo() *fakeInventarioRepo {
	return &fakeInventarioRepo{
		inventarios: make(map[uuid.UUID]*model.Inventario),
		rows:        make(map[uuid.UUID]*model.InventarioProducto),
	}
}

func (r *fakeInventarioRepo) CreateInventario(_ context.Context, inv *model.Inventario) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.inventarios[inv.ID] = inv
	return nil
}

func (r *fakeInventarioRepo) FindInventarioByID(_ context.Context, id uuid.UUID) (*model.Inventario, error) {
	inv, ok := r.inventarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *fakeInventarioRepo) ListProductos(_ context.Context, inventarioID uuid.UUID) ([]model.InventarioProducto, error) {
	var out []model.InventarioProducto
	for _, ip := range r.rows {
		if ip.InventarioID == inventarioID {
			out = append(out, *ip)
		}
	}
	return out, nil
}

func (r *fakeInventarioRepo) ListStockBajo(_ context.Context, inventarioID *uuid.UUID) ([]model.InventarioProducto, error) {
	var out []model.InventarioProducto
	for _, ip := range r.rows {
		if ip.Cantidad < ip.StockMinimo && (inventarioID == nil || ip.InventarioID == *inventarioID) {
			out = append(out, *ip)
		}
	}
	return out, nil
}

func (r *fakeInventarioRepo) FindProducto(_ context.Context, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error) {
	return r.FindProductoTx(nil, inventarioID, productoID)
}

func (r *fakeInventarioRepo) FindProductoTx(_ *gorm.DB, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error) {
	for _, ip := range r.rows {
		if ip.InventarioID == inventarioID && ip.ProductoID == productoID {
			return ip, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventarioRepo) CreateProductoTx(_ *gorm.DB, ip *model.InventarioProducto) error {
	if ip.ID == uuid.Nil {
		ip.ID = uuid.New()
	}
	r.rows[ip.ID] = ip
	return nil
}

func (r *fakeInventarioRepo) AjustarCantidadTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	ip, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ip.Cantidad += delta
	return nil
}

func (r *fakeInventarioRepo) UpdateProductoTx(_ *gorm.DB, ip *model.InventarioProducto) error {
	r.rows[ip.ID] = ip
	return nil
}

func (r *fakeInventarioRepo) DeleteProductoTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeInventarioRepo) DB() *gorm.DB { return nil }

// cantidadDe reads the quantity of a pair, -1 when the row is gone.
func (r *fakeInventarioRepo) cantidadDe(inventarioID, productoID uuid.UUID) int {
	for _, ip := range r.rows {
		if ip.InventarioID == inventarioID && ip.ProductoID == productoID {
			return ip.Cantidad
		}
	}
	return -1
}

// seedRow inserts an (inventario, producto) row directly.
func (r *fakeInventarioRepo) seedRow(inventarioID, productoID uuid.UUID, cantidad, min, max int) *model.InventarioProducto {
	ip := &model.InventarioProducto{
		ID:           uuid.New(),
		InventarioID: inventarioID,
		ProductoID:   productoID,
		Cantidad:     cantidad,
		StockMinimo:  min,
		StockMaximo:  max,
	}
	r.rows[ip.ID] = ip
	return ip
}

// ── ProductoRepository ───────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Save(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductoRepo) FindByCodigoBarras(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == codigo && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// List mirrors the repository's activo widener: "" = activos, "false" =
// inactivos, "all" = sin filtro.
func (r *fakeProductoRepo) List(_ context.Context, filter dto.ListFilter, _, _ *uuid.UUID) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		switch filter.Activo {
		case "all":
		case "false":
			if p.Activo {
				continue
			}
		default:
			if !p.Activo {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakeProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

// ── TrasladoRepository ───────────────────────────────────────────────────────

type fakeTrasladoRepo struct {
	traslados map[uuid.UUID]*model.Traslado
}

var _ repository.TrasladoRepository = (*fakeTrasladoRepo)(nil)

func newFakeTrasladoRepo() *fakeTrasladoRepo {
	return &fakeTrasladoRepo{traslados: make(map[uuid.UUID]*model.Traslado)}
}

func (r *fakeTrasladoRepo) Create(_ context.Context, t *model.Traslado) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.traslados[t.ID] = t
	return nil
}

func (r *fakeTrasladoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Traslado, error) {
	t, ok := r.traslados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTrasladoRepo) List(_ context.Context, estado *model.EstadoOperacion, _, _ int) ([]model.Traslado, int64, error) {
	var out []model.Traslado
	for _, t := range r.traslados {
		if estado == nil || t.Estado == *estado {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTrasladoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoOperacion, procesado *time.Time) error {
	t, ok := r.traslados[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Estado = estado
	if procesado != nil {
		t.FechaProcesado = procesado
	}
	return nil
}

func (r *fakeTrasladoRepo) DB() *gorm.DB { return nil }

// ── OrdenRepository ──────────────────────────────────────────────────────────

type fakeOrdenRepo struct {
	ordenes map[uuid.UUID]*model.OrdenRestablecimiento
}

var _ repository.OrdenRepository = (*fakeOrdenRepo)(nil)

func newFakeOrdenRepo() *fakeOrdenRepo {
	return &fakeOrdenRepo{ordenes: make(map[uuid.UUID]*model.OrdenRestablecimiento)}
}

func (r *fakeOrdenRepo) Create(_ context.Context, o *model.OrdenRestablecimiento) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *fakeOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenRestablecimiento, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeOrdenRepo) List(_ context.Context, estado *model.EstadoOperacion, _, _ int) ([]model.OrdenRestablecimiento, int64, error) {
	var out []model.OrdenRestablecimiento
	for _, o := range r.ordenes {
		if estado == nil || o.Estado == *estado {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrdenRepo) ConfirmarTx(_ *gorm.DB, id uuid.UUID, aprobadorID uuid.UUID, recepcion time.Time) error {
	o, ok := r.ordenes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Estado = model.EstadoCompletada
	o.AprobadorID = &aprobadorID
	o.FechaRecepcion = &recepcion
	return nil
}

func (r *fakeOrdenRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error {
	o, ok := r.ordenes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Estado = estado
	return nil
}

func (r *fakeOrdenRepo) DB() *gorm.DB { return nil }

// ── FacturaRepository ────────────────────────────────────────────────────────

type fakeFacturaRepo struct {
	facturas map[uuid.UUID]*model.Factura
	seq      int64
}

var _ repository.FacturaRepository = (*fakeFacturaRepo)(nil)

func newFakeFacturaRepo() *fakeFacturaRepo {
	return &fakeFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *fakeFacturaRepo) NextNumero(_ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeFacturaRepo) CreateTx(_ *gorm.DB, f *model.Factura) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	stored := *f
	r.facturas[f.ID] = &stored
	return nil
}

func (r *fakeFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *fakeFacturaRepo) List(_ context.Context, sucursalID *uuid.UUID, _, _ *time.Time, _, _ int) ([]model.Factura, int64, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if sucursalID == nil || f.SucursalID == *sucursalID {
			out = append(out, *f)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeFacturaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error {
	f, ok := r.facturas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Estado = estado
	return nil
}

func (r *fakeFacturaRepo) DB() *gorm.DB { return nil }

// ── PersonaRepository ────────────────────────────────────────────────────────

type fakePersonaRepo struct {
	personas map[uuid.UUID]*model.Persona
}

var _ repository.PersonaRepository = (*fakePersonaRepo)(nil)

func newFakePersonaRepo() *fakePersonaRepo {
	return &fakePersonaRepo{personas: make(map[uuid.UUID]*model.Persona)}
}

func (r *fakePersonaRepo) Save(_ context.Context, p *model.Persona) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.personas[p.ID] = p
	return nil
}

func (r *fakePersonaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Persona, error) {
	p, ok := r.personas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePersonaRepo) FindByEmail(_ context.Context, email string) (*model.Persona, error) {
	for _, p := range r.personas {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePersonaRepo) List(_ context.Context, _ dto.ListFilter) ([]model.Persona, int64, error) {
	out := make([]model.Persona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePersonaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.personas[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakePersonaRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.personas[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *fakePersonaRepo) ReplaceTelefonos(_ context.Context, personaID uuid.UUID, tels []model.Telefono) error {
	if p, ok := r.personas[personaID]; ok {
		p.Telefonos = tels
	}
	return nil
}

func (r *fakePersonaRepo) ReplaceDirecciones(_ context.Context, personaID uuid.UUID, dirs []model.Direccion) error {
	if p, ok := r.personas[personaID]; ok {
		p.Direcciones = dirs
	}
	return nil
}

// ── ProveedorRepository ──────────────────────────────────────────────────────

type fakeProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

var _ repository.ProveedorRepository = (*fakeProveedorRepo)(nil)

func newFakeProveedorRepo() *fakeProveedorRepo {
	return &fakeProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *fakeProveedorRepo) Save(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProveedorRepo) List(_ context.Context, _ dto.ListFilter) ([]model.Proveedor, int64, error) {
	out := make([]model.Proveedor, 0, len(r.proveedores))
	for _, p := range r.proveedores {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.proveedores[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakeProveedorRepo) ReplaceContactos(_ context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error {
	if p, ok := r.proveedores[proveedorID]; ok {
		p.Contactos = contactos
	}
	return nil
}

// ── Seed helpers ─────────────────────────────────────────────────────────────

func seedSucursal(repo *fakeSucursalRepo, invRepo *fakeInventarioRepo, nombre string) *model.Sucursal {
	inv := &model.Inventario{ID: uuid.New(), Nombre: "Inventario " + nombre, Activo: true}
	invRepo.inventarios[inv.ID] = inv
	s := &model.Sucursal{ID: uuid.New(), Nombre: nombre, InventarioID: inv.ID, Activo: true}
	repo.sucursales[s.ID] = s
	return s
}

func seedCaja(repo *fakeSucursalRepo, sucursalID uuid.UUID, nombre string) *model.Caja {
	c := &model.Caja{ID: uuid.New(), Nombre: nombre, SucursalID: sucursalID, Activo: true}
	repo.cajas[c.ID] = c
	return c
}

func seedProducto(repo *fakeProductoRepo, nombre, codigo string, precioVenta string) *model.Producto {
	p := &model.Producto{
		ID:           uuid.New(),
		CodigoBarras: codigo,
		Nombre:       nombre,
		CategoriaID:  uuid.New(),
		PrecioCosto:  mustDecimal("1.00"),
		PrecioVenta:  mustDecimal(precioVenta),
		Activo:       true,
	}
	repo.productos[p.ID] = p
	return p
}
