package service

import (
	"context"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/infra"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
)

// Cache keys, one per catalog. Default (activo-only) listings are the hot
// read path; widened listings always hit the database.
const (
	cacheKeyRoles          = "catalogo:roles"
	cacheKeyDepartamentos  = "catalogo:departamentos"
	cacheKeyGeneros        = "catalogo:generos"
	cacheKeyEstadosCiviles = "catalogo:estados_civiles"
	cacheKeyTurnos         = "catalogo:turnos"
)

type CatalogoService interface {
	ListarRoles(ctx context.Context, activo string) ([]dto.LookupResponse, error)
	GuardarRol(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error)
	EliminarRol(ctx context.Context, id uuid.UUID) error

	ListarDepartamentos(ctx context.Context, activo string) ([]dto.LookupResponse, error)
	GuardarDepartamento(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error)
	EliminarDepartamento(ctx context.Context, id uuid.UUID) error

	ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID, activo string) ([]dto.MunicipioResponse, error)
	GuardarMunicipio(ctx context.Context, req dto.GuardarMunicipioRequest) (*dto.MunicipioResponse, error)
	EliminarMunicipio(ctx context.Context, id uuid.UUID) error

	ListarGeneros(ctx context.Context, activo string) ([]dto.LookupResponse, error)
	GuardarGenero(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error)
	EliminarGenero(ctx context.Context, id uuid.UUID) error

	ListarEstadosCiviles(ctx context.Context, activo string) ([]dto.LookupResponse, error)
	GuardarEstadoCivil(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error)
	EliminarEstadoCivil(ctx context.Context, id uuid.UUID) error

	ListarTurnos(ctx context.Context, activo string) ([]dto.TurnoResponse, error)
	GuardarTurno(ctx context.Context, req dto.GuardarTurnoRequest) (*dto.TurnoResponse, error)
	EliminarTurno(ctx context.Context, id uuid.UUID) error

	ListarCategorias(ctx context.Context, filter dto.ListFilter) ([]dto.LookupResponse, int64, error)
	GuardarCategoria(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error)
	EliminarCategoria(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	repo  repository.CatalogoRepository
	cache *infra.LookupCache
}

func NewCatalogoService(repo repository.CatalogoRepository, cache *infra.LookupCache) CatalogoService {
	return &catalogoService{repo: repo, cache: cache}
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (s *catalogoService) ListarRoles(ctx context.Context, activo string) ([]dto.LookupResponse, error) {
	if activo == "" && s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyRoles); ok {
			return v.([]dto.LookupResponse), nil
		}
	}
	roles, err := s.repo.ListRoles(ctx, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar roles")
	}
	out := make([]dto.LookupResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.LookupResponse{ID: r.ID.String(), Nombre: r.Nombre, Descripcion: r.Descripcion, Activo: r.Activo})
	}
	if activo == "" && s.cache != nil {
		s.cache.Set(cacheKeyRoles, out)
	}
	return out, nil
}

func (s *catalogoService) GuardarRol(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error) {
	rol := &model.Rol{Nombre: req.Nombre, Descripcion: req.Descripcion, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		existing, err := s.repo.FindRolByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("rol no encontrado")
		}
		existing.Nombre = req.Nombre
		existing.Descripcion = req.Descripcion
		rol = existing
	}
	if err := s.repo.SaveRol(ctx, rol); err != nil {
		return nil, apierror.Conflict("ya existe un rol con este nombre")
	}
	s.invalidate(cacheKeyRoles)
	return &dto.LookupResponse{ID: rol.ID.String(), Nombre: rol.Nombre, Descripcion: rol.Descripcion, Activo: rol.Activo}, nil
}

func (s *catalogoService) EliminarRol(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteRol(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el rol")
	}
	s.invalidate(cacheKeyRoles)
	return nil
}

// ── Departamentos ─────────────────────────────────────────────────────────────

func (s *catalogoService) ListarDepartamentos(ctx context.Context, activo string) ([]dto.LookupResponse, error) {
	if activo == "" && s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyDepartamentos); ok {
			return v.([]dto.LookupResponse), nil
		}
	}
	deps, err := s.repo.ListDepartamentos(ctx, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar departamentos")
	}
	out := make([]dto.LookupResponse, 0, len(deps))
	for _, d := range deps {
		out = append(out, dto.LookupResponse{ID: d.ID.String(), Nombre: d.Nombre, Activo: d.Activo})
	}
	if activo == "" && s.cache != nil {
		s.cache.Set(cacheKeyDepartamentos, out)
	}
	return out, nil
}

func (s *catalogoService) GuardarDepartamento(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error) {
	dep := &model.Departamento{Nombre: req.Nombre, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		dep.ID = id
	}
	if err := s.repo.SaveDepartamento(ctx, dep); err != nil {
		return nil, apierror.Conflict("ya existe un departamento con este nombre")
	}
	s.invalidate(cacheKeyDepartamentos)
	return &dto.LookupResponse{ID: dep.ID.String(), Nombre: dep.Nombre, Activo: dep.Activo}, nil
}

func (s *catalogoService) EliminarDepartamento(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteDepartamento(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el departamento")
	}
	s.invalidate(cacheKeyDepartamentos)
	return nil
}

// ── Municipios ────────────────────────────────────────────────────────────────
// Municipios filter by departamento so they skip the cache.

func (s *catalogoService) ListarMunicipios(ctx context.Context, departamentoID *uuid.UUID, activo string) ([]dto.MunicipioResponse, error) {
	municipios, err := s.repo.ListMunicipios(ctx, departamentoID, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar municipios")
	}
	out := make([]dto.MunicipioResponse, 0, len(municipios))
	for _, m := range municipios {
		resp := dto.MunicipioResponse{
			ID:             m.ID.String(),
			Nombre:         m.Nombre,
			DepartamentoID: m.DepartamentoID.String(),
			Activo:         m.Activo,
		}
		if m.Departamento != nil {
			resp.Departamento = m.Departamento.Nombre
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *catalogoService) GuardarMunicipio(ctx context.Context, req dto.GuardarMunicipioRequest) (*dto.MunicipioResponse, error) {
	depID, err := uuid.Parse(req.DepartamentoID)
	if err != nil {
		return nil, apierror.Invalid("departamento_id inválido")
	}
	mun := &model.Municipio{Nombre: req.Nombre, DepartamentoID: depID, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		mun.ID = id
	}
	if err := s.repo.SaveMunicipio(ctx, mun); err != nil {
		return nil, apierror.Internal(err, "no se pudo guardar el municipio")
	}
	return &dto.MunicipioResponse{
		ID:             mun.ID.String(),
		Nombre:         mun.Nombre,
		DepartamentoID: mun.DepartamentoID.String(),
		Activo:         mun.Activo,
	}, nil
}

func (s *catalogoService) EliminarMunicipio(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteMunicipio(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el municipio")
	}
	return nil
}

// ── Géneros ───────────────────────────────────────────────────────────────────

func (s *catalogoService) ListarGeneros(ctx context.Context, activo string) ([]dto.LookupResponse, error) {
	if activo == "" && s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyGeneros); ok {
			return v.([]dto.LookupResponse), nil
		}
	}
	generos, err := s.repo.ListGeneros(ctx, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar géneros")
	}
	out := make([]dto.LookupResponse, 0, len(generos))
	for _, g := range generos {
		out = append(out, dto.LookupResponse{ID: g.ID.String(), Nombre: g.Nombre, Activo: g.Activo})
	}
	if activo == "" && s.cache != nil {
		s.cache.Set(cacheKeyGeneros, out)
	}
	return out, nil
}

func (s *catalogoService) GuardarGenero(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error) {
	genero := &model.Genero{Nombre: req.Nombre, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		genero.ID = id
	}
	if err := s.repo.SaveGenero(ctx, genero); err != nil {
		return nil, apierror.Conflict("ya existe un género con este nombre")
	}
	s.invalidate(cacheKeyGeneros)
	return &dto.LookupResponse{ID: genero.ID.String(), Nombre: genero.Nombre, Activo: genero.Activo}, nil
}

func (s *catalogoService) EliminarGenero(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteGenero(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el género")
	}
	s.invalidate(cacheKeyGeneros)
	return nil
}

// ── Estados civiles ───────────────────────────────────────────────────────────

func (s *catalogoService) ListarEstadosCiviles(ctx context.Context, activo string) ([]dto.LookupResponse, error) {
	if activo == "" && s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyEstadosCiviles); ok {
			return v.([]dto.LookupResponse), nil
		}
	}
	estados, err := s.repo.ListEstadosCiviles(ctx, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar estados civiles")
	}
	out := make([]dto.LookupResponse, 0, len(estados))
	for _, e := range estados {
		out = append(out, dto.LookupResponse{ID: e.ID.String(), Nombre: e.Nombre, Activo: e.Activo})
	}
	if activo == "" && s.cache != nil {
		s.cache.Set(cacheKeyEstadosCiviles, out)
	}
	return out, nil
}

func (s *catalogoService) GuardarEstadoCivil(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error) {
	estado := &model.EstadoCivil{Nombre: req.Nombre, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		estado.ID = id
	}
	if err := s.repo.SaveEstadoCivil(ctx, estado); err != nil {
		return nil, apierror.Conflict("ya existe un estado civil con este nombre")
	}
	s.invalidate(cacheKeyEstadosCiviles)
	return &dto.LookupResponse{ID: estado.ID.String(), Nombre: estado.Nombre, Activo: estado.Activo}, nil
}

func (s *catalogoService) EliminarEstadoCivil(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteEstadoCivil(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el estado civil")
	}
	s.invalidate(cacheKeyEstadosCiviles)
	return nil
}

// ── Turnos ────────────────────────────────────────────────────────────────────

func (s *catalogoService) ListarTurnos(ctx context.Context, activo string) ([]dto.TurnoResponse, error) {
	if activo == "" && s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyTurnos); ok {
			return v.([]dto.TurnoResponse), nil
		}
	}
	turnos, err := s.repo.ListTurnos(ctx, activo)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar turnos")
	}
	out := make([]dto.TurnoResponse, 0, len(turnos))
	for _, t := range turnos {
		out = append(out, dto.TurnoResponse{
			ID:         t.ID.String(),
			Nombre:     t.Nombre,
			HoraInicio: t.HoraInicio,
			HoraFin:    t.HoraFin,
			Activo:     t.Activo,
		})
	}
	if activo == "" && s.cache != nil {
		s.cache.Set(cacheKeyTurnos, out)
	}
	return out, nil
}

func (s *catalogoService) GuardarTurno(ctx context.Context, req dto.GuardarTurnoRequest) (*dto.TurnoResponse, error) {
	if req.HoraInicio >= req.HoraFin {
		return nil, apierror.Invalid("hora_inicio debe ser anterior a hora_fin")
	}
	turno := &model.Turno{Nombre: req.Nombre, HoraInicio: req.HoraInicio, HoraFin: req.HoraFin, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		turno.ID = id
	}
	if err := s.repo.SaveTurno(ctx, turno); err != nil {
		return nil, apierror.Conflict("ya existe un turno con este nombre")
	}
	s.invalidate(cacheKeyTurnos)
	return &dto.TurnoResponse{
		ID:         turno.ID.String(),
		Nombre:     turno.Nombre,
		HoraInicio: turno.HoraInicio,
		HoraFin:    turno.HoraFin,
		Activo:     turno.Activo,
	}, nil
}

func (s *catalogoService) EliminarTurno(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteTurno(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar el turno")
	}
	s.invalidate(cacheKeyTurnos)
	return nil
}

// ── Categorías ────────────────────────────────────────────────────────────────
// Categorías are paginated and searchable, so they bypass the lookup cache.

func (s *catalogoService) ListarCategorias(ctx context.Context, filter dto.ListFilter) ([]dto.LookupResponse, int64, error) {
	filter.Normalize()
	categorias, total, err := s.repo.ListCategorias(ctx, filter)
	if err != nil {
		return nil, 0, apierror.Internal(err, "no se pudo listar categorías")
	}
	out := make([]dto.LookupResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.LookupResponse{ID: c.ID.String(), Nombre: c.Nombre, Descripcion: c.Descripcion, Activo: c.Activo})
	}
	return out, total, nil
}

func (s *catalogoService) GuardarCategoria(ctx context.Context, req dto.GuardarLookupRequest) (*dto.LookupResponse, error) {
	categoria := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion, Activo: true}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		existing, err := s.repo.FindCategoriaByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("categoría no encontrada")
		}
		existing.Nombre = req.Nombre
		existing.Descripcion = req.Descripcion
		categoria = existing
	}
	if err := s.repo.SaveCategoria(ctx, categoria); err != nil {
		return nil, apierror.Conflict("ya existe una categoría con este nombre")
	}
	return &dto.LookupResponse{ID: categoria.ID.String(), Nombre: categoria.Nombre, Descripcion: categoria.Descripcion, Activo: categoria.Activo}, nil
}

func (s *catalogoService) EliminarCategoria(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDeleteCategoria(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo eliminar la categoría")
	}
	return nil
}

func (s *catalogoService) invalidate(key string) {
	if s.cache != nil {
		s.cache.Invalidate(key)
	}
}
