package repository

import (
	"context"

	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonaRepository interface {
	Save(ctx context.Context, p *model.Persona) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Persona, error)
	FindByEmail(ctx context.Context, email string) (*model.Persona, error)
	List(ctx context.Context, filter dto.ListFilter) ([]model.Persona, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	ReplaceTelefonos(ctx context.Context, personaID uuid.UUID, tels []model.Telefono) error
	ReplaceDirecciones(ctx context.Context, personaID uuid.UUID, dirs []model.Direccion) error
}

type personaRepo struct{ db *gorm.DB }

func NewPersonaRepository(db *gorm.DB) PersonaRepository { return &personaRepo{db: db} }

func (r *personaRepo) Save(ctx context.Context, p *model.Persona) error {
	return r.db.WithContext(ctx).Omit("Telefonos", "Direcciones", "Rol", "Sucursal", "Genero", "EstadoCivil", "Turno").Save(p).Error
}

func (r *personaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Persona, error) {
	var p model.Persona
	err := r.db.WithContext(ctx).
		Preload("Rol").Preload("Sucursal").
		Preload("Telefonos").Preload("Direcciones.Municipio").
		First(&p, id).Error
	return &p, err
}

func (r *personaRepo) FindByEmail(ctx context.Context, email string) (*model.Persona, error) {
	var p model.Persona
	err := r.db.WithContext(ctx).Preload("Rol").Where("email = ?", email).First(&p).Error
	return &p, err
}

func (r *personaRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Persona, int64, error) {
	var personas []model.Persona
	var total int64

	q := activoScope(r.db.WithContext(ctx).Model(&model.Persona{}), filter.Activo)
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombres ILIKE ? OR apellidos ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Rol").Preload("Sucursal").
		Order("apellidos " + filter.Orden).Limit(filter.Limit).Offset(offset).
		Find(&personas).Error
	return personas, total, err
}

func (r *personaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Persona{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *personaRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Persona{}).Where("id = ?", id).Update("activo", true).Error
}

// ReplaceTelefonos swaps the full phone set in one transaction; child rows
// have no independent lifecycle in the UI.
func (r *personaRepo) ReplaceTelefonos(ctx context.Context, personaID uuid.UUID, tels []model.Telefono) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("persona_id = ?", personaID).Delete(&model.Telefono{}).Error; err != nil {
			return err
		}
		if len(tels) == 0 {
			return nil
		}
		for i := range tels {
			tels[i].PersonaID = personaID
		}
		return tx.Create(&tels).Error
	})
}

func (r *personaRepo) ReplaceDirecciones(ctx context.Context, personaID uuid.UUID, dirs []model.Direccion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("persona_id = ?", personaID).Delete(&model.Direccion{}).Error; err != nil {
			return err
		}
		if len(dirs) == 0 {
			return nil
		}
		for i := range dirs {
			dirs[i].PersonaID = personaID
		}
		return tx.Create(&dirs).Error
	})
}
