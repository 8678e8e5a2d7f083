package service

import (
	"context"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type PersonaService interface {
	Guardar(ctx context.Context, req dto.GuardarPersonaRequest) (*dto.PersonaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PersonaResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter) (*dto.PersonaListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type personaService struct {
	repo         repository.PersonaRepository
	catalogoRepo repository.CatalogoRepository
}

func NewPersonaService(repo repository.PersonaRepository, catalogoRepo repository.CatalogoRepository) PersonaService {
	return &personaService{repo: repo, catalogoRepo: catalogoRepo}
}

// ── Guardar ───────────────────────────────────────────────────────────────────
// Add-or-update: an empty req.ID inserts, a present ID updates. Phones and
// addresses are replaced wholesale with what the request carries.

func (s *personaService) Guardar(ctx context.Context, req dto.GuardarPersonaRequest) (*dto.PersonaResponse, error) {
	rolID, err := uuid.Parse(req.RolID)
	if err != nil {
		return nil, apierror.Invalid("rol_id inválido")
	}
	if _, err := s.catalogoRepo.FindRolByID(ctx, rolID); err != nil {
		return nil, apierror.NotFound("rol no encontrado")
	}

	var persona *model.Persona
	creating := req.ID == ""
	if creating {
		if req.Password == "" {
			return nil, apierror.Invalid("password es requerido al crear")
		}
		if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, apierror.Conflict("ya existe una persona con este email")
		}
		persona = &model.Persona{Activo: true}
	} else {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		persona, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("persona no encontrada")
		}
		if persona.Email != req.Email {
			if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
				return nil, apierror.Conflict("ya existe una persona con este email")
			}
		}
	}

	persona.Nombres = req.Nombres
	persona.Apellidos = req.Apellidos
	persona.Email = req.Email
	persona.RolID = rolID

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, apierror.Internal(err, "no se pudo guardar la persona")
		}
		persona.PasswordHash = string(hash)
	}

	if persona.SucursalID, err = parseOptionalUUID(req.SucursalID, "sucursal_id"); err != nil {
		return nil, err
	}
	if persona.GeneroID, err = parseOptionalUUID(req.GeneroID, "genero_id"); err != nil {
		return nil, err
	}
	if persona.EstadoCivilID, err = parseOptionalUUID(req.EstadoCivilID, "estado_civil_id"); err != nil {
		return nil, err
	}
	if persona.TurnoID, err = parseOptionalUUID(req.TurnoID, "turno_id"); err != nil {
		return nil, err
	}
	if req.FechaNacimiento != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, apierror.Invalid("fecha_nacimiento inválida")
		}
		persona.FechaNacimiento = &fecha
	}

	if err := s.repo.Save(ctx, persona); err != nil {
		return nil, apierror.Internal(err, "no se pudo guardar la persona")
	}

	tels := make([]model.Telefono, 0, len(req.Telefonos))
	for _, t := range req.Telefonos {
		tipo := t.Tipo
		if tipo == "" {
			tipo = "movil"
		}
		tels = append(tels, model.Telefono{PersonaID: persona.ID, Numero: t.Numero, Tipo: tipo})
	}
	if err := s.repo.ReplaceTelefonos(ctx, persona.ID, tels); err != nil {
		return nil, apierror.Internal(err, "no se pudieron guardar los teléfonos")
	}

	dirs := make([]model.Direccion, 0, len(req.Direcciones))
	for _, d := range req.Direcciones {
		munID, err := uuid.Parse(d.MunicipioID)
		if err != nil {
			return nil, apierror.Invalid("municipio_id inválido")
		}
		dirs = append(dirs, model.Direccion{PersonaID: persona.ID, MunicipioID: munID, Detalle: d.Detalle})
	}
	if err := s.repo.ReplaceDirecciones(ctx, persona.ID, dirs); err != nil {
		return nil, apierror.Internal(err, "no se pudieron guardar las direcciones")
	}

	saved, err := s.repo.FindByID(ctx, persona.ID)
	if err != nil {
		return personaToResponse(persona), nil
	}
	return personaToResponse(saved), nil
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *personaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PersonaResponse, error) {
	persona, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("persona no encontrada")
	}
	return personaToResponse(persona), nil
}

func (s *personaService) Listar(ctx context.Context, filter dto.ListFilter) (*dto.PersonaListResponse, error) {
	filter.Normalize()
	personas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar personas")
	}
	data := make([]dto.PersonaResponse, 0, len(personas))
	for i := range personas {
		data = append(data, *personaToResponse(&personas[i]))
	}
	return &dto.PersonaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Desactivar / Reactivar ────────────────────────────────────────────────────

func (s *personaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("persona no encontrada")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo desactivar la persona")
	}
	return nil
}

func (s *personaService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo reactivar la persona")
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apierror.Invalid(field + " inválido")
	}
	return &id, nil
}

func personaToResponse(p *model.Persona) *dto.PersonaResponse {
	resp := &dto.PersonaResponse{
		ID:        p.ID.String(),
		Nombres:   p.Nombres,
		Apellidos: p.Apellidos,
		Email:     p.Email,
		RolID:     p.RolID.String(),
		Activo:    p.Activo,
	}
	if p.Rol != nil {
		resp.Rol = p.Rol.Nombre
	}
	if p.SucursalID != nil {
		s := p.SucursalID.String()
		resp.SucursalID = &s
	}
	if p.Sucursal != nil {
		resp.Sucursal = p.Sucursal.Nombre
	}
	for _, t := range p.Telefonos {
		resp.Telefonos = append(resp.Telefonos, dto.TelefonoResponse{
			ID:     t.ID.String(),
			Numero: t.Numero,
			Tipo:   t.Tipo,
		})
	}
	for _, d := range p.Direcciones {
		dir := dto.DireccionResponse{
			ID:          d.ID.String(),
			MunicipioID: d.MunicipioID.String(),
			Detalle:     d.Detalle,
		}
		if d.Municipio != nil {
			dir.Municipio = d.Municipio.Nombre
		}
		resp.Direcciones = append(resp.Direcciones, dir)
	}
	return resp
}
