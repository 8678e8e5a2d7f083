package repository

import (
	"context"

	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository covers the simple reference tables. Every lookup type
// gets the same four operations; municipios additionally list by their
// parent departamento.
type CatalogoRepository interface {
	ListRoles(ctx context.Context, activo string) ([]model.Rol, error)
	SaveRol(ctx context.Context, r *model.Rol) error
	FindRolByID(ctx context.Context, id uuid.UUID) (*model.Rol, error)
	SoftDeleteRol(ctx context.Context, id uuid.UUID) error

	ListDepartamentos(ctx context.Context, activo string) ([]model.Departamento, error)
	SaveDepartamento(ctx context.Context, d *model.Departamento) error
	SoftDeleteDepartamento(ctx context.Context, id uuid.UUID) error

	ListMunicipios(ctx context.Context, departamentoID *uuid.UUID, activo string) ([]model.Municipio, error)
	SaveMunicipio(ctx context.Context, m *model.Municipio) error
	SoftDeleteMunicipio(ctx context.Context, id uuid.UUID) error

	ListGeneros(ctx context.Context, activo string) ([]model.Genero, error)
	SaveGenero(ctx context.Context, g *model.Genero) error
	SoftDeleteGenero(ctx context.Context, id uuid.UUID) error

	ListEstadosCiviles(ctx context.Context, activo string) ([]model.EstadoCivil, error)
	SaveEstadoCivil(ctx context.Context, e *model.EstadoCivil) error
	SoftDeleteEstadoCivil(ctx context.Context, id uuid.UUID) error

	ListTurnos(ctx context.Context, activo string) ([]model.Turno, error)
	SaveTurno(ctx context.Context, t *model.Turno) error
	SoftDeleteTurno(ctx context.Context, id uuid.UUID) error

	ListCategorias(ctx context.Context, filter dto.ListFilter) ([]model.Categoria, int64, error)
	SaveCategoria(ctx context.Context, c *model.Categoria) error
	FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	SoftDeleteCategoria(ctx context.Context, id uuid.UUID) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

// activoScope translates the listing widener into a WHERE clause.
// "" (default) = activos, "false" = inactivos, "all" = sin filtro.
func activoScope(q *gorm.DB, activo string) *gorm.DB {
	switch activo {
	case "false":
		return q.Where("activo = false")
	case "all":
		return q
	default:
		return q.Where("activo = true")
	}
}

func (r *catalogoRepo) ListRoles(ctx context.Context, activo string) ([]model.Rol, error) {
	var roles []model.Rol
	err := activoScope(r.db.WithContext(ctx), activo).Order("nombre ASC").Find(&roles).Error
	return roles, err
}

func (r *catalogoRepo) SaveRol(ctx context.Context, m *model.Rol) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) FindRolByID(ctx context.Context, id uuid.UUID) (*model.Rol, error) {
	var rol model.Rol
	err := r.db.WithContext(ctx).First(&rol, id).Error
	return &rol, err
}

func (r *catalogoRepo) SoftDeleteRol(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Rol{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListDepartamentos(ctx context.Context, activo string) ([]model.Departamento, error) {
	var deps []model.Departamento
	err := activoScope(r.db.WithContext(ctx), activo).Order("nombre ASC").Find(&deps).Error
	return deps, err
}

func (r *catalogoRepo) SaveDepartamento(ctx context.Context, m *model.Departamento) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) SoftDeleteDepartamento(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Departamento{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListMunicipios(ctx context.Context, departamentoID *uuid.UUID, activo string) ([]model.Municipio, error) {
	var muns []model.Municipio
	q := activoScope(r.db.WithContext(ctx), activo).Preload("Departamento")
	if departamentoID != nil {
		q = q.Where("departamento_id = ?", *departamentoID)
	}
	err := q.Order("nombre ASC").Find(&muns).Error
	return muns, err
}

func (r *catalogoRepo) SaveMunicipio(ctx context.Context, m *model.Municipio) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) SoftDeleteMunicipio(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Municipio{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListGeneros(ctx context.Context, activo string) ([]model.Genero, error) {
	var gens []model.Genero
	err := activoScope(r.db.WithContext(ctx), activo).Order("nombre ASC").Find(&gens).Error
	return gens, err
}

func (r *catalogoRepo) SaveGenero(ctx context.Context, m *model.Genero) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) SoftDeleteGenero(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Genero{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListEstadosCiviles(ctx context.Context, activo string) ([]model.EstadoCivil, error) {
	var ecs []model.EstadoCivil
	err := activoScope(r.db.WithContext(ctx), activo).Order("nombre ASC").Find(&ecs).Error
	return ecs, err
}

func (r *catalogoRepo) SaveEstadoCivil(ctx context.Context, m *model.EstadoCivil) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) SoftDeleteEstadoCivil(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.EstadoCivil{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListTurnos(ctx context.Context, activo string) ([]model.Turno, error) {
	var turnos []model.Turno
	err := activoScope(r.db.WithContext(ctx), activo).Order("hora_inicio ASC").Find(&turnos).Error
	return turnos, err
}

func (r *catalogoRepo) SaveTurno(ctx context.Context, m *model.Turno) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) SoftDeleteTurno(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Turno{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *catalogoRepo) ListCategorias(ctx context.Context, filter dto.ListFilter) ([]model.Categoria, int64, error) {
	var cats []model.Categoria
	var total int64

	q := activoScope(r.db.WithContext(ctx).Model(&model.Categoria{}), filter.Activo)
	if filter.Buscar != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Buscar+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre " + filter.Orden).Limit(filter.Limit).Offset(offset).Find(&cats).Error
	return cats, total, err
}

func (r *catalogoRepo) SaveCategoria(ctx context.Context, m *model.Categoria) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *catalogoRepo) FindCategoriaByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var cat model.Categoria
	err := r.db.WithContext(ctx).First(&cat, id).Error
	return &cat, err
}

func (r *catalogoRepo) SoftDeleteCategoria(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", id).Update("activo", false).Error
}
