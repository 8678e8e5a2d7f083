package service

import (
	"context"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Guardar(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter) (*dto.ProveedorListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

// ── Guardar ───────────────────────────────────────────────────────────────────
// Add-or-update. Contacts are replaced wholesale with the request's list.

func (s *proveedorService) Guardar(ctx context.Context, req dto.GuardarProveedorRequest) (*dto.ProveedorResponse, error) {
	var proveedor *model.Proveedor
	if req.ID == "" {
		proveedor = &model.Proveedor{Activo: true}
	} else {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		proveedor, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("proveedor no encontrado")
		}
	}

	proveedor.RazonSocial = req.RazonSocial
	proveedor.NIT = req.NIT
	proveedor.Telefono = req.Telefono
	proveedor.Email = req.Email
	proveedor.Direccion = req.Direccion

	if err := s.repo.Save(ctx, proveedor); err != nil {
		return nil, apierror.Conflict("ya existe un proveedor con este NIT")
	}

	contactos := make([]model.ContactoProveedor, 0, len(req.Contactos))
	for _, c := range req.Contactos {
		contactos = append(contactos, model.ContactoProveedor{
			ProveedorID: proveedor.ID,
			Nombre:      c.Nombre,
			Telefono:    c.Telefono,
			Email:       c.Email,
		})
	}
	if err := s.repo.ReplaceContactos(ctx, proveedor.ID, contactos); err != nil {
		return nil, apierror.Internal(err, "no se pudieron guardar los contactos")
	}

	saved, err := s.repo.FindByID(ctx, proveedor.ID)
	if err != nil {
		return proveedorToResponse(proveedor), nil
	}
	return proveedorToResponse(saved), nil
}

// ── Obtener / Listar ──────────────────────────────────────────────────────────

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("proveedor no encontrado")
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Listar(ctx context.Context, filter dto.ListFilter) (*dto.ProveedorListResponse, error) {
	filter.Normalize()
	proveedores, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar proveedores")
	}
	data := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		data = append(data, *proveedorToResponse(&proveedores[i]))
	}
	return &dto.ProveedorListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Desactivar ────────────────────────────────────────────────────────────────

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("proveedor no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo desactivar el proveedor")
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	resp := &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		NIT:         p.NIT,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Activo:      p.Activo,
	}
	for _, c := range p.Contactos {
		resp.Contactos = append(resp.Contactos, dto.ContactoProveedorResponse{
			ID:       c.ID.String(),
			Nombre:   c.Nombre,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	return resp
}
