package service

import (
	"context"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
)

type SucursalService interface {
	Guardar(ctx context.Context, req dto.GuardarSucursalRequest) (*dto.SucursalResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter) ([]dto.SucursalResponse, int64, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	GuardarCaja(ctx context.Context, req dto.GuardarCajaRequest) (*dto.CajaResponse, error)
	ListarCajas(ctx context.Context, sucursalID *uuid.UUID, activo string) ([]dto.CajaResponse, error)
	DesactivarCaja(ctx context.Context, id uuid.UUID) error
}

type sucursalService struct {
	repo        repository.SucursalRepository
	personaRepo repository.PersonaRepository
}

func NewSucursalService(repo repository.SucursalRepository, personaRepo repository.PersonaRepository) SucursalService {
	return &sucursalService{repo: repo, personaRepo: personaRepo}
}

// ── Guardar ───────────────────────────────────────────────────────────────────
// Creating a branch also creates its inventario bucket in the same
// transaction; a branch never exists without one.

func (s *sucursalService) Guardar(ctx context.Context, req dto.GuardarSucursalRequest) (*dto.SucursalResponse, error) {
	responsableID, err := parseOptionalUUID(req.ResponsableID, "responsable_id")
	if err != nil {
		return nil, err
	}
	if responsableID != nil {
		if _, err := s.personaRepo.FindByID(ctx, *responsableID); err != nil {
			return nil, apierror.NotFound("responsable no encontrado")
		}
	}
	municipioID, err := parseOptionalUUID(req.MunicipioID, "municipio_id")
	if err != nil {
		return nil, err
	}

	if req.ID == "" {
		sucursal := &model.Sucursal{
			Nombre:        req.Nombre,
			MunicipioID:   municipioID,
			ResponsableID: responsableID,
			Activo:        true,
		}
		if req.HoraApertura != "" {
			sucursal.HoraApertura = req.HoraApertura
		} else {
			sucursal.HoraApertura = "08:00"
		}
		if req.HoraCierre != "" {
			sucursal.HoraCierre = req.HoraCierre
		} else {
			sucursal.HoraCierre = "20:00"
		}
		inv := &model.Inventario{Nombre: "Inventario " + req.Nombre, Activo: true}
		if err := s.repo.CreateConInventario(ctx, sucursal, inv); err != nil {
			return nil, apierror.Conflict("ya existe una sucursal con este nombre")
		}
		return sucursalToResponse(sucursal), nil
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apierror.Invalid("id inválido")
	}
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}
	sucursal.Nombre = req.Nombre
	if req.HoraApertura != "" {
		sucursal.HoraApertura = req.HoraApertura
	}
	if req.HoraCierre != "" {
		sucursal.HoraCierre = req.HoraCierre
	}
	if municipioID != nil {
		sucursal.MunicipioID = municipioID
	}
	if responsableID != nil {
		sucursal.ResponsableID = responsableID
	}
	if err := s.repo.Update(ctx, sucursal); err != nil {
		return nil, apierror.Internal(err, "no se pudo actualizar la sucursal")
	}
	return sucursalToResponse(sucursal), nil
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *sucursalService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SucursalResponse, error) {
	sucursal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}
	return sucursalToResponse(sucursal), nil
}

func (s *sucursalService) Listar(ctx context.Context, filter dto.ListFilter) ([]dto.SucursalResponse, int64, error) {
	filter.Normalize()
	sucursales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apierror.Internal(err, "no se pudo listar sucursales")
	}
	out := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		out = append(out, *sucursalToResponse(&sucursales[i]))
	}
	return out, total, nil
}

// ── Desactivar ────────────────────────────────────────────────────────────────

func (s *sucursalService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("sucursal no encontrada")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo desactivar la sucursal")
	}
	return nil
}

// ── Cajas ─────────────────────────────────────────────────────────────────────

func (s *sucursalService) GuardarCaja(ctx context.Context, req dto.GuardarCajaRequest) (*dto.CajaResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Invalid("sucursal_id inválido")
	}
	if _, err := s.repo.FindByID(ctx, sucursalID); err != nil {
		return nil, apierror.NotFound("sucursal no encontrada")
	}

	caja := &model.Caja{Nombre: req.Nombre, SucursalID: sucursalID, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		existing, err := s.repo.FindCajaByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("caja no encontrada")
		}
		existing.Nombre = req.Nombre
		existing.SucursalID = sucursalID
		caja = existing
	}
	if err := s.repo.SaveCaja(ctx, caja); err != nil {
		return nil, apierror.Internal(err, "no se pudo guardar la caja")
	}
	return cajaToResponse(caja), nil
}

func (s *sucursalService) ListarCajas(ctx context.Context, sucursalID *uuid.UUID, activo string) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.ListCajas(ctx, sucursalID, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar cajas")
	}
	out := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		out = append(out, *cajaToResponse(&cajas[i]))
	}
	return out, nil
}

func (s *sucursalService) DesactivarCaja(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCajaByID(ctx, id); err != nil {
		return apierror.NotFound("caja no encontrada")
	}
	if err := s.repo.SoftDeleteCaja(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo desactivar la caja")
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sucursalToResponse(m *model.Sucursal) *dto.SucursalResponse {
	resp := &dto.SucursalResponse{
		ID:           m.ID.String(),
		Nombre:       m.Nombre,
		HoraApertura: m.HoraApertura,
		HoraCierre:   m.HoraCierre,
		InventarioID: m.InventarioID.String(),
		Activo:       m.Activo,
	}
	if m.ResponsableID != nil {
		r := m.ResponsableID.String()
		resp.ResponsableID = &r
	}
	if m.Responsable != nil {
		resp.Responsable = m.Responsable.NombreCompleto()
	}
	return resp
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:         c.ID.String(),
		Nombre:     c.Nombre,
		SucursalID: c.SucursalID.String(),
		Activo:     c.Activo,
	}
	if c.Sucursal != nil {
		resp.Sucursal = c.Sucursal.Nombre
	}
	return resp
}
