package service

import (
	"context"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenService interface {
	Crear(ctx context.Context, solicitanteID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Confirmar(ctx context.Context, id, aprobadorID uuid.UUID) (*dto.OrdenResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, estado *model.EstadoOperacion, page, limit int) (*dto.OrdenListResponse, error)
}

type ordenService struct {
	repo          repository.OrdenRepository
	proveedorRepo repository.ProveedorRepository
	sucursalRepo  repository.SucursalRepository
	inventario    InventarioService
}

func NewOrdenService(
	repo repository.OrdenRepository,
	proveedorRepo repository.ProveedorRepository,
	sucursalRepo repository.SucursalRepository,
	inventario InventarioService,
) OrdenService {
	return &ordenService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		sucursalRepo:  sucursalRepo,
		inventario:    inventario,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *ordenService) Crear(ctx context.Context, solicitanteID uuid.UUID, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, apierror.Invalid("proveedor_id inválido")
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Invalid("sucursal_id inválido")
	}

	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, apierror.NotFound("proveedor no encontrado")
	}
	if !proveedor.Activo {
		return nil, apierror.Conflict("el proveedor está inactivo")
	}
	if _, err := s.sucursalRepo.FindByID(ctx, sucursalID); err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}

	orden := &model.OrdenRestablecimiento{
		ProveedorID:   proveedorID,
		SucursalID:    sucursalID,
		SolicitanteID: solicitanteID,
		Estado:        model.EstadoPendiente,
	}
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Invalid("producto_id inválido")
		}
		if item.CostoUnitario.IsNegative() {
			return nil, apierror.Invalid("costo_unitario no puede ser negativo")
		}
		orden.Detalles = append(orden.Detalles, model.OrdenDetalle{
			ProductoID:    pid,
			Cantidad:      item.Cantidad,
			CostoUnitario: item.CostoUnitario,
		})
	}

	if err := s.repo.Create(ctx, orden); err != nil {
		return nil, apierror.Internal(err, "no se pudo crear la orden")
	}
	return ordenToResponse(orden), nil
}

// ── Confirmar ─────────────────────────────────────────────────────────────────
// Receipt of the goods: every line quantity enters the branch bucket and the
// orden closes with aprobador and fecha_recepcion, all in one transaction.

func (s *ordenService) Confirmar(ctx context.Context, id, aprobadorID uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden no encontrada")
	}
	if orden.Estado != model.EstadoPendiente {
		return nil, apierror.Conflict("solo órdenes pendientes pueden confirmarse")
	}

	sucursal, err := s.sucursalRepo.FindByID(ctx, orden.SucursalID)
	if err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, det := range orden.Detalles {
			if err := s.inventario.AgregarStockTx(tx, sucursal.InventarioID, det.ProductoID, det.Cantidad); err != nil {
				return err
			}
		}
		return s.repo.ConfirmarTx(tx, id, aprobadorID, now)
	})
	if txErr != nil {
		return nil, apierror.Internal(txErr, "no se pudo confirmar la orden")
	}

	orden.Estado = model.EstadoCompletada
	orden.AprobadorID = &aprobadorID
	orden.FechaRecepcion = &now
	return ordenToResponse(orden), nil
}

// ── Anular ────────────────────────────────────────────────────────────────────

func (s *ordenService) Anular(ctx context.Context, id uuid.UUID) error {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("orden no encontrada")
	}
	if orden.Estado != model.EstadoPendiente {
		return apierror.Conflict("solo órdenes pendientes pueden anularse")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulada)
	})
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *ordenService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden no encontrada")
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Listar(ctx context.Context, estado *model.EstadoOperacion, page, limit int) (*dto.OrdenListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	ordenes, total, err := s.repo.List(ctx, estado, page, limit)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar las órdenes")
	}
	data := make([]dto.OrdenResponse, 0, len(ordenes))
	for i := range ordenes {
		data = append(data, *ordenToResponse(&ordenes[i]))
	}
	return &dto.OrdenListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ordenToResponse(o *model.OrdenRestablecimiento) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:          o.ID.String(),
		ProveedorID: o.ProveedorID.String(),
		SucursalID:  o.SucursalID.String(),
		Estado:      o.Estado.String(),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	if o.Proveedor != nil {
		resp.Proveedor = o.Proveedor.RazonSocial
	}
	if o.FechaRecepcion != nil {
		f := o.FechaRecepcion.Format(time.RFC3339)
		resp.FechaRecepcion = &f
	}
	for _, det := range o.Detalles {
		item := dto.OrdenItemResponse{
			ProductoID:    det.ProductoID.String(),
			Cantidad:      det.Cantidad,
			CostoUnitario: det.CostoUnitario,
		}
		if det.Producto != nil {
			item.Producto = det.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
