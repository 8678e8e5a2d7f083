package service

import (
	"context"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorCodigoBarras(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter, categoriaID, proveedorID *uuid.UUID) (*dto.ProductoListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	catalogoRepo  repository.CatalogoRepository
	proveedorRepo repository.ProveedorRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	catalogoRepo repository.CatalogoRepository,
	proveedorRepo repository.ProveedorRepository,
) ProductoService {
	return &productoService{repo: repo, catalogoRepo: catalogoRepo, proveedorRepo: proveedorRepo}
}

// ── Guardar ───────────────────────────────────────────────────────────────────

func (s *productoService) Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.Invalid("categoria_id inválido")
	}
	if _, err := s.catalogoRepo.FindCategoriaByID(ctx, categoriaID); err != nil {
		return nil, apierror.NotFound("categoría no encontrada")
	}
	proveedorID, err := parseOptionalUUID(req.ProveedorID, "proveedor_id")
	if err != nil {
		return nil, err
	}
	if proveedorID != nil {
		if _, err := s.proveedorRepo.FindByID(ctx, *proveedorID); err != nil {
			return nil, apierror.NotFound("proveedor no encontrado")
		}
	}
	if req.PrecioCosto.IsNegative() || req.PrecioVenta.IsNegative() {
		return nil, apierror.Invalid("los precios no pueden ser negativos")
	}

	var producto *model.Producto
	if req.ID == "" {
		if existing, err := s.repo.FindByCodigoBarras(ctx, req.CodigoBarras); err == nil && existing != nil {
			return nil, apierror.Conflict("ya existe un producto con este código de barras")
		}
		producto = &model.Producto{Activo: true}
	} else {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, apierror.Invalid("id inválido")
		}
		producto, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, apierror.NotFound("producto no encontrado")
		}
		if producto.CodigoBarras != req.CodigoBarras {
			if existing, err := s.repo.FindByCodigoBarras(ctx, req.CodigoBarras); err == nil && existing != nil {
				return nil, apierror.Conflict("ya existe un producto con este código de barras")
			}
		}
	}

	producto.CodigoBarras = req.CodigoBarras
	producto.Nombre = req.Nombre
	producto.Descripcion = req.Descripcion
	producto.CategoriaID = categoriaID
	producto.ProveedorID = proveedorID
	producto.PrecioCosto = req.PrecioCosto
	producto.PrecioVenta = req.PrecioVenta

	if err := s.repo.Save(ctx, producto); err != nil {
		return nil, apierror.Internal(err, "no se pudo guardar el producto")
	}
	return productoToResponse(producto), nil
}

// ── Obtener ───────────────────────────────────────────────────────────────────

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

func (s *productoService) ObtenerPorCodigoBarras(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByCodigoBarras(ctx, codigo)
	if err != nil || producto == nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *productoService) Listar(ctx context.Context, filter dto.ListFilter, categoriaID, proveedorID *uuid.UUID) (*dto.ProductoListResponse, error) {
	filter.Normalize()
	productos, total, err := s.repo.List(ctx, filter, categoriaID, proveedorID)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar productos")
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Desactivar / Reactivar ────────────────────────────────────────────────────

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo desactivar el producto")
	}
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return apierror.Internal(err, "no se pudo reactivar el producto")
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID.String(),
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		CategoriaID:  p.CategoriaID.String(),
		PrecioCosto:  p.PrecioCosto,
		PrecioVenta:  p.PrecioVenta,
		Activo:       p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	if p.ProveedorID != nil {
		prov := p.ProveedorID.String()
		resp.ProveedorID = &prov
	}
	return resp
}
