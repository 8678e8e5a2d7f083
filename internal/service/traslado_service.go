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

type TrasladoService interface {
	Crear(ctx context.Context, solicitanteID uuid.UUID, req dto.CrearTrasladoRequest) (*dto.TrasladoResponse, error)
	Procesar(ctx context.Context, id uuid.UUID) (*dto.TrasladoResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.TrasladoResponse, error)
	Listar(ctx context.Context, estado *model.EstadoOperacion, page, limit int) (*dto.TrasladoListResponse, error)
}

type trasladoService struct {
	repo         repository.TrasladoRepository
	sucursalRepo repository.SucursalRepository
	inventario   InventarioService
}

func NewTrasladoService(
	repo repository.TrasladoRepository,
	sucursalRepo repository.SucursalRepository,
	inventario InventarioService,
) TrasladoService {
	return &trasladoService{repo: repo, sucursalRepo: sucursalRepo, inventario: inventario}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Registers the request in estado pendiente. No stock moves yet.

func (s *trasladoService) Crear(ctx context.Context, solicitanteID uuid.UUID, req dto.CrearTrasladoRequest) (*dto.TrasladoResponse, error) {
	origenID, err := uuid.Parse(req.SucursalOrigenID)
	if err != nil {
		return nil, apierror.Invalid("sucursal_origen_id inválido")
	}
	destinoID, err := uuid.Parse(req.SucursalDestinoID)
	if err != nil {
		return nil, apierror.Invalid("sucursal_destino_id inválido")
	}
	if origenID == destinoID {
		return nil, apierror.Invalid("origen y destino no pueden ser la misma sucursal")
	}

	if _, err := s.sucursalRepo.FindByID(ctx, origenID); err != nil {
		return nil, apierror.NotFound("sucursal origen no encontrada")
	}
	if _, err := s.sucursalRepo.FindByID(ctx, destinoID); err != nil {
		return nil, apierror.NotFound("sucursal destino no encontrada")
	}

	traslado := &model.Traslado{
		SucursalOrigenID:  origenID,
		SucursalDestinoID: destinoID,
		SolicitanteID:     solicitanteID,
		Estado:            model.EstadoPendiente,
		Observaciones:     req.Observaciones,
	}
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Invalid("producto_id inválido")
		}
		traslado.Detalles = append(traslado.Detalles, model.TrasladoDetalle{
			ProductoID: pid,
			Cantidad:   item.Cantidad,
		})
	}

	if err := s.repo.Create(ctx, traslado); err != nil {
		return nil, apierror.Internal(err, "no se pudo crear el traslado")
	}
	return trasladoToResponse(traslado), nil
}

// ── Procesar ──────────────────────────────────────────────────────────────────
// Moves every line between the two branch buckets in one transaction. Any
// deficit aborts the whole traslado with no partial movement; on success the
// estado jumps to completada with the processing timestamp.

func (s *trasladoService) Procesar(ctx context.Context, id uuid.UUID) (*dto.TrasladoResponse, error) {
	traslado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("traslado no encontrado")
	}
	if traslado.Estado != model.EstadoPendiente {
		return nil, apierror.Conflict("solo traslados pendientes pueden procesarse")
	}

	origen, err := s.sucursalRepo.FindByID(ctx, traslado.SucursalOrigenID)
	if err != nil {
		return nil, apierror.NotFound("sucursal origen no encontrada")
	}
	destino, err := s.sucursalRepo.FindByID(ctx, traslado.SucursalDestinoID)
	if err != nil {
		return nil, apierror.NotFound("sucursal destino no encontrada")
	}

	now := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, det := range traslado.Detalles {
			if err := s.inventario.MoverStockTx(tx, origen.InventarioID, destino.InventarioID, det.ProductoID, det.Cantidad); err != nil {
				return err
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoCompletada, &now)
	})
	if txErr != nil {
		return nil, txErr
	}

	traslado.Estado = model.EstadoCompletada
	traslado.FechaProcesado = &now
	return trasladoToResponse(traslado), nil
}

// ── Anular ────────────────────────────────────────────────────────────────────

func (s *trasladoService) Anular(ctx context.Context, id uuid.UUID) error {
	traslado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("traslado no encontrado")
	}
	if traslado.Estado != model.EstadoPendiente {
		return apierror.Conflict("solo traslados pendientes pueden anularse")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoAnulada, nil)
	})
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *trasladoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.TrasladoResponse, error) {
	traslado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("traslado no encontrado")
	}
	return trasladoToResponse(traslado), nil
}

func (s *trasladoService) Listar(ctx context.Context, estado *model.EstadoOperacion, page, limit int) (*dto.TrasladoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	traslados, total, err := s.repo.List(ctx, estado, page, limit)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar los traslados")
	}
	data := make([]dto.TrasladoResponse, 0, len(traslados))
	for i := range traslados {
		data = append(data, *trasladoToResponse(&traslados[i]))
	}
	return &dto.TrasladoListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func trasladoToResponse(t *model.Traslado) *dto.TrasladoResponse {
	resp := &dto.TrasladoResponse{
		ID:                t.ID.String(),
		SucursalOrigenID:  t.SucursalOrigenID.String(),
		SucursalDestinoID: t.SucursalDestinoID.String(),
		Estado:            t.Estado.String(),
		Observaciones:     t.Observaciones,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
	if t.SucursalOrigen != nil {
		resp.SucursalOrigen = t.SucursalOrigen.Nombre
	}
	if t.SucursalDestino != nil {
		resp.SucursalDestino = t.SucursalDestino.Nombre
	}
	if t.FechaProcesado != nil {
		f := t.FechaProcesado.Format(time.RFC3339)
		resp.FechaProcesado = &f
	}
	for _, det := range t.Detalles {
		item := dto.TrasladoItemResponse{
			ProductoID: det.ProductoID.String(),
			Cantidad:   det.Cantidad,
		}
		if det.Producto != nil {
			item.Producto = det.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
