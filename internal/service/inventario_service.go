package service

import (
	"context"
	"fmt"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/model"
	"farmavita/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventarioService interface {
	ObtenerInventario(ctx context.Context, id uuid.UUID) (*dto.InventarioResponse, error)
	AgregarProducto(ctx context.Context, req dto.AjusteInventarioRequest) (*dto.InventarioProductoResponse, error)
	QuitarProducto(ctx context.Context, req dto.AjusteInventarioRequest) error
	ActualizarProducto(ctx context.Context, req dto.ActualizarInventarioRequest) (*dto.InventarioProductoResponse, error)
	Trasladar(ctx context.Context, req dto.TrasladarInventarioRequest) error
	Clonar(ctx context.Context, req dto.ClonarInventarioRequest) (*dto.InventarioResponse, error)
	Alertas(ctx context.Context, inventarioID *uuid.UUID) ([]dto.AlertaStockResponse, error)

	// Tx variants used by facturación, traslados and órdenes inside their
	// own transactions.
	QuitarStockTx(tx *gorm.DB, inventarioID, productoID uuid.UUID, cantidad int) error
	AgregarStockTx(tx *gorm.DB, inventarioID, productoID uuid.UUID, cantidad int) error
	MoverStockTx(tx *gorm.DB, origenID, destinoID, productoID uuid.UUID, cantidad int) error
}

type inventarioService struct {
	repo         repository.InventarioRepository
	productoRepo repository.ProductoRepository
}

func NewInventarioService(repo repository.InventarioRepository, productoRepo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo, productoRepo: productoRepo}
}

// ── ObtenerInventario ─────────────────────────────────────────────────────────

func (s *inventarioService) ObtenerInventario(ctx context.Context, id uuid.UUID) (*dto.InventarioResponse, error) {
	inv, err := s.repo.FindInventarioByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("inventario no encontrado")
	}
	rows, err := s.repo.ListProductos(ctx, id)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo listar el inventario")
	}
	resp := &dto.InventarioResponse{ID: inv.ID.String(), Nombre: inv.Nombre}
	for i := range rows {
		resp.Productos = append(resp.Productos, *inventarioProductoToResponse(&rows[i]))
	}
	return resp, nil
}

// ── AgregarProducto ───────────────────────────────────────────────────────────
// Adds quantity to an (inventario, producto) row, creating the row when the
// product is not yet stocked in that bucket.

func (s *inventarioService) AgregarProducto(ctx context.Context, req dto.AjusteInventarioRequest) (*dto.InventarioProductoResponse, error) {
	inventarioID, productoID, err := parseInventarioPair(req.InventarioID, req.ProductoID)
	if err != nil {
		return nil, err
	}
	if req.StockMinimo != nil && req.StockMaximo != nil && *req.StockMinimo > *req.StockMaximo {
		return nil, apierror.Invalid("stock_minimo no puede superar stock_maximo")
	}

	if _, err := s.repo.FindInventarioByID(ctx, inventarioID); err != nil {
		return nil, apierror.NotFound("inventario no encontrado")
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	if !producto.Activo {
		return nil, apierror.Conflict("el producto está inactivo")
	}

	var result *model.InventarioProducto
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ip, err := s.repo.FindProductoTx(tx, inventarioID, productoID)
		if err != nil {
			// New row for this bucket.
			ip = &model.InventarioProducto{
				InventarioID: inventarioID,
				ProductoID:   productoID,
				Cantidad:     req.Cantidad,
			}
			if req.StockMinimo != nil {
				ip.StockMinimo = *req.StockMinimo
			} else {
				ip.StockMinimo = 5
			}
			if req.StockMaximo != nil {
				ip.StockMaximo = *req.StockMaximo
			} else {
				ip.StockMaximo = 100
			}
			if err := s.repo.CreateProductoTx(tx, ip); err != nil {
				return err
			}
			result = ip
			return nil
		}

		if err := s.repo.AjustarCantidadTx(tx, ip.ID, req.Cantidad); err != nil {
			return err
		}
		ip.Cantidad += req.Cantidad
		if req.StockMinimo != nil || req.StockMaximo != nil {
			if req.StockMinimo != nil {
				ip.StockMinimo = *req.StockMinimo
			}
			if req.StockMaximo != nil {
				ip.StockMaximo = *req.StockMaximo
			}
			if err := s.repo.UpdateProductoTx(tx, ip); err != nil {
				return err
			}
		}
		result = ip
		return nil
	})
	if txErr != nil {
		return nil, apierror.Internal(txErr, "no se pudo agregar el producto al inventario")
	}
	result.Producto = producto
	return inventarioProductoToResponse(result), nil
}

// ── QuitarProducto ────────────────────────────────────────────────────────────
// Removes quantity. Going below zero is rejected; reaching exactly zero
// deletes the row so the bucket only lists stocked products.

func (s *inventarioService) QuitarProducto(ctx context.Context, req dto.AjusteInventarioRequest) error {
	inventarioID, productoID, err := parseInventarioPair(req.InventarioID, req.ProductoID)
	if err != nil {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.QuitarStockTx(tx, inventarioID, productoID, req.Cantidad)
	})
}

// ── ActualizarProducto ────────────────────────────────────────────────────────
// Sets absolute values for cantidad and thresholds. Setting cantidad to zero
// deletes the row, same as QuitarProducto reaching zero.

func (s *inventarioService) ActualizarProducto(ctx context.Context, req dto.ActualizarInventarioRequest) (*dto.InventarioProductoResponse, error) {
	inventarioID, productoID, err := parseInventarioPair(req.InventarioID, req.ProductoID)
	if err != nil {
		return nil, err
	}

	ip, err := s.repo.FindProducto(ctx, inventarioID, productoID)
	if err != nil {
		return nil, apierror.NotFound("el producto no existe en este inventario")
	}

	if req.Cantidad != nil {
		ip.Cantidad = *req.Cantidad
	}
	if req.StockMinimo != nil {
		ip.StockMinimo = *req.StockMinimo
	}
	if req.StockMaximo != nil {
		ip.StockMaximo = *req.StockMaximo
	}
	if ip.StockMinimo > ip.StockMaximo {
		return nil, apierror.Invalid("stock_minimo no puede superar stock_maximo")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if ip.Cantidad == 0 {
			return s.repo.DeleteProductoTx(tx, ip.ID)
		}
		return s.repo.UpdateProductoTx(tx, ip)
	})
	if txErr != nil {
		return nil, apierror.Internal(txErr, "no se pudo actualizar el inventario")
	}
	return inventarioProductoToResponse(ip), nil
}

// ── Trasladar ─────────────────────────────────────────────────────────────────
// Direct bucket-to-bucket move of one product. All-or-nothing: the subtract
// and the add commit together, so total units across buckets never change.

func (s *inventarioService) Trasladar(ctx context.Context, req dto.TrasladarInventarioRequest) error {
	origenID, err := uuid.Parse(req.OrigenID)
	if err != nil {
		return apierror.Invalid("origen_id inválido")
	}
	destinoID, err := uuid.Parse(req.DestinoID)
	if err != nil {
		return apierror.Invalid("destino_id inválido")
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return apierror.Invalid("producto_id inválido")
	}
	if origenID == destinoID {
		return apierror.Invalid("origen y destino no pueden ser el mismo inventario")
	}

	if _, err := s.repo.FindInventarioByID(ctx, destinoID); err != nil {
		return apierror.NotFound("inventario destino no encontrado")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.MoverStockTx(tx, origenID, destinoID, productoID, req.Cantidad)
	})
}

// ── Clonar ────────────────────────────────────────────────────────────────────
// Creates a new bucket copying the product list and thresholds of the origin
// with zero quantities. Used when provisioning a branch from a template.

func (s *inventarioService) Clonar(ctx context.Context, req dto.ClonarInventarioRequest) (*dto.InventarioResponse, error) {
	origenID, err := uuid.Parse(req.OrigenID)
	if err != nil {
		return nil, apierror.Invalid("origen_id inválido")
	}
	rows, err := s.repo.ListProductos(ctx, origenID)
	if err != nil {
		return nil, apierror.NotFound("inventario origen no encontrado")
	}

	nuevo := &model.Inventario{Nombre: req.Nombre, Activo: true}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := tx.Create(nuevo).Error; err != nil {
			return err
		}
		for i := range rows {
			clon := &model.InventarioProducto{
				InventarioID: nuevo.ID,
				ProductoID:   rows[i].ProductoID,
				Cantidad:     0,
				StockMinimo:  rows[i].StockMinimo,
				StockMaximo:  rows[i].StockMaximo,
			}
			if err := s.repo.CreateProductoTx(tx, clon); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, apierror.Internal(txErr, "no se pudo clonar el inventario")
	}
	return &dto.InventarioResponse{ID: nuevo.ID.String(), Nombre: nuevo.Nombre}, nil
}

// ── Alertas ───────────────────────────────────────────────────────────────────

func (s *inventarioService) Alertas(ctx context.Context, inventarioID *uuid.UUID) ([]dto.AlertaStockResponse, error) {
	rows, err := s.repo.ListStockBajo(ctx, inventarioID)
	if err != nil {
		return nil, apierror.Internal(err, "no se pudo consultar las alertas")
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(rows))
	for i := range rows {
		nombre := ""
		if rows[i].Producto != nil {
			nombre = rows[i].Producto.Nombre
		}
		alertas = append(alertas, dto.AlertaStockResponse{
			InventarioID: rows[i].InventarioID.String(),
			ProductoID:   rows[i].ProductoID.String(),
			Producto:     nombre,
			Cantidad:     rows[i].Cantidad,
			StockMinimo:  rows[i].StockMinimo,
		})
	}
	return alertas, nil
}

// ── Tx helpers ────────────────────────────────────────────────────────────────

// QuitarStockTx subtracts cantidad from an (inventario, producto) row inside
// an open transaction. A deficit aborts the caller's whole transaction; a row
// that reaches zero is deleted.
func (s *inventarioService) QuitarStockTx(tx *gorm.DB, inventarioID, productoID uuid.UUID, cantidad int) error {
	ip, err := s.repo.FindProductoTx(tx, inventarioID, productoID)
	if err != nil {
		return apierror.NotFound("el producto no existe en este inventario")
	}
	if ip.Cantidad < cantidad {
		return apierror.Conflict(fmt.Sprintf("stock insuficiente: hay %d, se pidió %d", ip.Cantidad, cantidad))
	}
	if ip.Cantidad == cantidad {
		return s.repo.DeleteProductoTx(tx, ip.ID)
	}
	return s.repo.AjustarCantidadTx(tx, ip.ID, -cantidad)
}

// AgregarStockTx adds cantidad inside an open transaction, creating the row
// with default thresholds when the product is new to the bucket.
func (s *inventarioService) AgregarStockTx(tx *gorm.DB, inventarioID, productoID uuid.UUID, cantidad int) error {
	ip, err := s.repo.FindProductoTx(tx, inventarioID, productoID)
	if err != nil {
		ip = &model.InventarioProducto{
			InventarioID: inventarioID,
			ProductoID:   productoID,
			Cantidad:     cantidad,
			StockMinimo:  5,
			StockMaximo:  100,
		}
		return s.repo.CreateProductoTx(tx, ip)
	}
	return s.repo.AjustarCantidadTx(tx, ip.ID, cantidad)
}

// MoverStockTx moves cantidad between two buckets inside one transaction.
// Unlike QuitarStockTx+AgregarStockTx, a destination row created by the move
// inherits the source row's thresholds instead of the defaults.
func (s *inventarioService) MoverStockTx(tx *gorm.DB, origenID, destinoID, productoID uuid.UUID, cantidad int) error {
	origen, err := s.repo.FindProductoTx(tx, origenID, productoID)
	if err != nil {
		return apierror.NotFound("el producto no existe en este inventario")
	}
	if origen.Cantidad < cantidad {
		return apierror.Conflict(fmt.Sprintf("stock insuficiente: hay %d, se pidió %d", origen.Cantidad, cantidad))
	}
	minimo, maximo := origen.StockMinimo, origen.StockMaximo

	if origen.Cantidad == cantidad {
		if err := s.repo.DeleteProductoTx(tx, origen.ID); err != nil {
			return err
		}
	} else if err := s.repo.AjustarCantidadTx(tx, origen.ID, -cantidad); err != nil {
		return err
	}

	destino, err := s.repo.FindProductoTx(tx, destinoID, productoID)
	if err != nil {
		destino = &model.InventarioProducto{
			InventarioID: destinoID,
			ProductoID:   productoID,
			Cantidad:     cantidad,
			StockMinimo:  minimo,
			StockMaximo:  maximo,
		}
		return s.repo.CreateProductoTx(tx, destino)
	}
	return s.repo.AjustarCantidadTx(tx, destino.ID, cantidad)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parseInventarioPair(inventarioID, productoID string) (uuid.UUID, uuid.UUID, error) {
	invID, err := uuid.Parse(inventarioID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apierror.Invalid("inventario_id inválido")
	}
	prodID, err := uuid.Parse(productoID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apierror.Invalid("producto_id inválido")
	}
	return invID, prodID, nil
}

func inventarioProductoToResponse(ip *model.InventarioProducto) *dto.InventarioProductoResponse {
	resp := &dto.InventarioProductoResponse{
		ID:           ip.ID.String(),
		InventarioID: ip.InventarioID.String(),
		ProductoID:   ip.ProductoID.String(),
		Cantidad:     ip.Cantidad,
		StockMinimo:  ip.StockMinimo,
		StockMaximo:  ip.StockMaximo,
	}
	if ip.Producto != nil {
		resp.Producto = ip.Producto.Nombre
		resp.CodigoBarras = ip.Producto.CodigoBarras
	}
	return resp
}
