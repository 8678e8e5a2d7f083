package service

import (
	"context"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"
	"farmavita/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FacturaService interface {
	Emitir(ctx context.Context, personaID uuid.UUID, req dto.EmitirFacturaRequest) (*dto.FacturaResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, sucursalID *uuid.UUID, desde, hasta *time.Time, page, limit int) (*dto.FacturaListResponse, error)
}

type facturaService struct {
	repo         repository.FacturaRepository
	caja         CajaService
	inventario   InventarioService
	productoRepo repository.ProductoRepository
	sucursalRepo repository.SucursalRepository
	dispatcher   *worker.Dispatcher
}

func NewFacturaService(
	repo repository.FacturaRepository,
	caja CajaService,
	inventario InventarioService,
	productoRepo repository.ProductoRepository,
	sucursalRepo repository.SucursalRepository,
	dispatcher *worker.Dispatcher,
) FacturaService {
	return &facturaService{
		repo:         repo,
		caja:         caja,
		inventario:   inventario,
		productoRepo: productoRepo,
		sucursalRepo: sucursalRepo,
		dispatcher:   dispatcher,
	}
}

// ── Emitir ────────────────────────────────────────────────────────────────────
// Full ACID flow:
//   1. Validate the apertura is active and resolve the branch bucket
//   2. Resolve products and compute totals (pre-flight, outside TX)
//   3. BEGIN TX: nextval correlativo, create factura+detalles, descontar stock
//   4. COMMIT
//   5. (async) dispatch PDF/email job

func (s *facturaService) Emitir(ctx context.Context, personaID uuid.UUID, req dto.EmitirFacturaRequest) (*dto.FacturaResponse, error) {
	aperturaID, err := uuid.Parse(req.AperturaID)
	if err != nil {
		return nil, apierror.Invalid("apertura_id inválido")
	}

	apertura, err := s.caja.FindAperturaActiva(ctx, aperturaID)
	if err != nil {
		return nil, err
	}
	if apertura.PersonaID != personaID {
		return nil, apierror.Conflict("la apertura pertenece a otra persona")
	}

	caja, err := s.sucursalRepo.FindCajaByID(ctx, apertura.CajaID)
	if err != nil {
		return nil, apierror.NotFound("caja no encontrada")
	}
	sucursal, err := s.sucursalRepo.FindByID(ctx, caja.SucursalID)
	if err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}

	// Pre-flight: resolve products and totals.
	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero
	descuento := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Invalid("producto_id inválido")
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("producto no encontrado")
		}
		if !p.Activo {
			return nil, apierror.Conflict("el producto " + p.Nombre + " está inactivo")
		}
		if item.Descuento.IsNegative() {
			return nil, apierror.Invalid("el descuento no puede ser negativo")
		}
		lineSubtotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))).Sub(item.Descuento)
		if lineSubtotal.IsNegative() {
			return nil, apierror.Invalid("el descuento supera el valor de la línea")
		}
		subtotal = subtotal.Add(lineSubtotal)
		descuento = descuento.Add(item.Descuento)
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.PrecioVenta,
			cantidad:   item.Cantidad,
			subtotal:   lineSubtotal,
		})
	}

	total := subtotal

	var factura model.Factura
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(tx)
		if err != nil {
			return err
		}

		factura = model.Factura{
			Numero:        numero,
			AperturaID:    aperturaID,
			SucursalID:    sucursal.ID,
			PersonaID:     personaID,
			ClienteNombre: req.ClienteNombre,
			ClienteEmail:  req.ClienteEmail,
			Subtotal:      subtotal,
			Descuento:     descuento,
			Total:         total,
			Estado:        model.EstadoCompletada,
		}
		for _, r := range resolved {
			factura.Detalles = append(factura.Detalles, model.FacturaDetalle{
				ProductoID:     r.productoID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &factura); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.inventario.QuitarStockTx(tx, sucursal.InventarioID, r.productoID, r.cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF + email job. Fire and forget: a queue hiccup never undoes
	// a committed sale.
	if s.dispatcher != nil {
		payload := worker.FacturaJobPayload{FacturaID: factura.ID.String()}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload.ClienteEmail = req.ClienteEmail
		}
		_ = s.dispatcher.EnqueueFactura(ctx, payload)
	}

	resp := facturaToResponse(&factura)
	for i, r := range resolved {
		resp.Items[i].Producto = r.nombre
	}
	return resp, nil
}

// ── Anular ────────────────────────────────────────────────────────────────────
// Restores every line quantity into the branch bucket and marks the invoice
// anulada, in one transaction.

func (s *facturaService) Anular(ctx context.Context, id uuid.UUID) error {
	factura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("factura no encontrada")
	}
	if factura.Estado == model.EstadoAnulada {
		return apierror.Conflict("la factura ya está anulada")
	}

	sucursal, err := s.sucursalRepo.FindByID(ctx, factura.SucursalID)
	if err != nil {
		return apierror.NotFound("sucursal no encontrada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, det := range factura.Detalles {
			if err := s.inventario.AgregarStockTx(tx, sucursal.InventarioID, det.ProductoID, det.Cantidad); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulada)
	})
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *facturaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	factura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("factura no encontrada")
	}
	return facturaToResponse(factura), nil
}

func (s *facturaService) Listar(ctx context.Context, sucursalID *uuid.UUID, desde, hasta *time.Time, page, limit int) (*dto.FacturaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	facturas, total, err := s.repo.List(ctx, sucursalID, desde, hasta, page, limit)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar las facturas")
	}
	data := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		data = append(data, *facturaToResponse(&facturas[i]))
	}
	return &dto.FacturaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:            f.ID.String(),
		Numero:        f.Numero,
		SucursalID:    f.SucursalID.String(),
		ClienteNombre: f.ClienteNombre,
		Subtotal:      f.Subtotal,
		Descuento:     f.Descuento,
		Total:         f.Total,
		Estado:        f.Estado.String(),
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
	}
	for _, det := range f.Detalles {
		item := dto.FacturaItemResponse{
			ProductoID:     det.ProductoID.String(),
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			Subtotal:       det.Subtotal,
		}
		if det.Producto != nil {
			item.Producto = det.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
