package service

import (
	"context"
	"fmt"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
)

type CajaService interface {
	Abrir(ctx context.Context, personaID uuid.UUID, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error)
	Cerrar(ctx context.Context, personaID uuid.UUID, req dto.CerrarCajaRequest) (*dto.AperturaResponse, error)
	ObtenerActiva(ctx context.Context, personaID uuid.UUID) (*dto.AperturaResponse, error)
	Historial(ctx context.Context, page, limit int) (*dto.AperturaListResponse, error)
	// FindAperturaActiva is called by FacturaService to validate an open session.
	FindAperturaActiva(ctx context.Context, aperturaID uuid.UUID) (*model.AperturaCaja, error)
}

type cajaService struct {
	repo         repository.AperturaRepository
	sucursalRepo repository.SucursalRepository
}

func NewCajaService(repo repository.AperturaRepository, sucursalRepo repository.SucursalRepository) CajaService {
	return &cajaService{repo: repo, sucursalRepo: sucursalRepo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Opens a till session. One active session per caja and per persona; the
// pre-checks here give friendly messages, the partial unique indexes make
// the guarantee hold under concurrency.

func (s *cajaService) Abrir(ctx context.Context, personaID uuid.UUID, req dto.AbrirCajaRequest) (*dto.AperturaResponse, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, apierror.Invalid("caja_id inválido")
	}
	if req.MontoApertura.IsNegative() {
		return nil, apierror.Invalid("el monto de apertura no puede ser negativo")
	}

	caja, err := s.sucursalRepo.FindCajaByID(ctx, cajaID)
	if err != nil {
		return nil, apierror.NotFound("caja no encontrada")
	}
	if !caja.Activo {
		return nil, apierror.Conflict("la caja está inactiva")
	}

	if existing, err := s.repo.FindActivaPorCaja(ctx, cajaID); err == nil && existing != nil {
		return nil, apierror.Conflict("ya existe una apertura activa en esta caja")
	}
	if existing, err := s.repo.FindActivaPorPersona(ctx, personaID); err == nil && existing != nil {
		return nil, apierror.Conflict("la persona ya tiene una caja abierta")
	}

	apertura := &model.AperturaCaja{
		CajaID:        cajaID,
		PersonaID:     personaID,
		MontoApertura: req.MontoApertura,
		FechaApertura: time.Now(),
		Activa:        true,
	}
	if err := s.repo.Create(ctx, apertura); err != nil {
		// The partial unique index fires here when two opens race; any
		// other failure is not a conflict.
		if isUniqueViolation(err) {
			return nil, apierror.Conflict("ya existe una apertura activa en esta caja")
		}
		return nil, apierror.Internal(err, "no se pudo registrar la apertura")
	}
	apertura.Caja = caja
	return aperturaToResponse(apertura), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Only the person who opened the session may close it. Closing remarks are
// appended to any existing observaciones with a " | " separator.

func (s *cajaService) Cerrar(ctx context.Context, personaID uuid.UUID, req dto.CerrarCajaRequest) (*dto.AperturaResponse, error) {
	aperturaID, err := uuid.Parse(req.AperturaID)
	if err != nil {
		return nil, apierror.Invalid("apertura_id inválido")
	}
	if req.MontoCierre.IsNegative() {
		return nil, apierror.Invalid("el monto de cierre no puede ser negativo")
	}

	apertura, err := s.repo.FindByID(ctx, aperturaID)
	if err != nil {
		return nil, apierror.NotFound("apertura no encontrada")
	}
	if !apertura.Activa {
		return nil, apierror.Conflict("la apertura ya está cerrada")
	}
	if apertura.PersonaID != personaID {
		return nil, apierror.Conflict("solo quien abrió la caja puede cerrarla")
	}

	now := time.Now()
	monto := req.MontoCierre
	apertura.MontoCierre = &monto
	apertura.FechaCierre = &now
	apertura.Activa = false

	if req.Observaciones != nil && *req.Observaciones != "" {
		if apertura.Observaciones != nil && *apertura.Observaciones != "" {
			combined := fmt.Sprintf("%s | %s", *apertura.Observaciones, *req.Observaciones)
			apertura.Observaciones = &combined
		} else {
			apertura.Observaciones = req.Observaciones
		}
	}

	if err := s.repo.Update(ctx, apertura); err != nil {
		return nil, apierror.Internal(err, "no se pudo cerrar la apertura")
	}
	return aperturaToResponse(apertura), nil
}

// ── ObtenerActiva ─────────────────────────────────────────────────────────────

func (s *cajaService) ObtenerActiva(ctx context.Context, personaID uuid.UUID) (*dto.AperturaResponse, error) {
	apertura, err := s.repo.FindActivaPorPersona(ctx, personaID)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo consultar la apertura")
	}
	if apertura == nil {
		return nil, apierror.NotFound("no hay caja abierta para esta persona")
	}
	return aperturaToResponse(apertura), nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, page, limit int) (*dto.AperturaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	aperturas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar el historial")
	}
	data := make([]dto.AperturaResponse, 0, len(aperturas))
	for i := range aperturas {
		data = append(data, *aperturaToResponse(&aperturas[i]))
	}
	return &dto.AperturaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── FindAperturaActiva ────────────────────────────────────────────────────────

func (s *cajaService) FindAperturaActiva(ctx context.Context, aperturaID uuid.UUID) (*model.AperturaCaja, error) {
	apertura, err := s.repo.FindByID(ctx, aperturaID)
	if err != nil {
		return nil, apierror.NotFound("apertura no encontrada")
	}
	if !apertura.Activa {
		return nil, apierror.Conflict("no hay apertura de caja activa")
	}
	return apertura, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func aperturaToResponse(a *model.AperturaCaja) *dto.AperturaResponse {
	resp := &dto.AperturaResponse{
		ID:            a.ID.String(),
		CajaID:        a.CajaID.String(),
		PersonaID:     a.PersonaID.String(),
		MontoApertura: a.MontoApertura,
		MontoCierre:   a.MontoCierre,
		FechaApertura: a.FechaApertura.Format(time.RFC3339),
		Activa:        a.Activa,
		Observaciones: a.Observaciones,
	}
	if a.Caja != nil {
		resp.Caja = a.Caja.Nombre
	}
	if a.FechaCierre != nil {
		t := a.FechaCierre.Format(time.RFC3339)
		resp.FechaCierre = &t
	}
	return resp
}
