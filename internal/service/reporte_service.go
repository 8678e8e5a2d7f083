package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

// ReporteService runs the aggregate reporting queries over a dedicated sqlx
// connection and can export the daily pack as an Excel workbook.
type ReporteService interface {
	VentasDiarias(ctx context.Context, desde, hasta time.Time) ([]dto.VentaDiaria, error)
	ValorizacionInventario(ctx context.Context) ([]dto.ValorizacionInventario, error)
	StockBajo(ctx context.Context) ([]dto.StockBajo, error)
	ExportarDiario(ctx context.Context, fecha time.Time, dir string) (string, error)
}

type reporteService struct {
	db *sqlx.DB
}

func NewReporteService(db *sqlx.DB) ReporteService {
	return &reporteService{db: db}
}

const ventasDiariasQuery = `
SELECT to_char(f.created_at::date, 'YYYY-MM-DD') AS fecha,
       f.sucursal_id::text                       AS sucursal_id,
       s.nombre                                  AS sucursal,
       COUNT(*)                                  AS num_facturas,
       COALESCE(SUM(f.total), 0)                 AS total_vendido
FROM facturas f
JOIN sucursales s ON s.id = f.sucursal_id
WHERE f.estado = 3
  AND f.created_at >= $1
  AND f.created_at < $2
GROUP BY f.created_at::date, f.sucursal_id, s.nombre
ORDER BY fecha, sucursal`

func (s *reporteService) VentasDiarias(ctx context.Context, desde, hasta time.Time) ([]dto.VentaDiaria, error) {
	var rows []dto.VentaDiaria
	if err := s.db.SelectContext(ctx, &rows, ventasDiariasQuery, desde, hasta); err != nil {
		return nil, apierror.Internal(err, "no se pudo generar el reporte de ventas")
	}
	return rows, nil
}

const valorizacionQuery = `
SELECT s.id::text                                        AS sucursal_id,
       s.nombre                                          AS sucursal,
       COALESCE(SUM(ip.cantidad), 0)                     AS unidades,
       COALESCE(SUM(ip.cantidad * p.precio_costo), 0)    AS valor_costo,
       COALESCE(SUM(ip.cantidad * p.precio_venta), 0)    AS valor_venta
FROM sucursales s
LEFT JOIN inventario_productos ip ON ip.inventario_id = s.inventario_id
LEFT JOIN productos p ON p.id = ip.producto_id
WHERE s.activo = true
GROUP BY s.id, s.nombre
ORDER BY s.nombre`

func (s *reporteService) ValorizacionInventario(ctx context.Context) ([]dto.ValorizacionInventario, error) {
	var rows []dto.ValorizacionInventario
	if err := s.db.SelectContext(ctx, &rows, valorizacionQuery); err != nil {
		return nil, apierror.Internal(err, "no se pudo generar la valorización")
	}
	return rows, nil
}

const stockBajoQuery = `
SELECT s.id::text       AS sucursal_id,
       s.nombre         AS sucursal,
       p.id::text       AS producto_id,
       p.nombre         AS producto,
       ip.cantidad      AS cantidad,
       ip.stock_minimo  AS stock_minimo
FROM inventario_productos ip
JOIN sucursales s ON s.inventario_id = ip.inventario_id AND s.activo = true
JOIN productos p ON p.id = ip.producto_id
WHERE ip.cantidad < ip.stock_minimo
ORDER BY s.nombre, p.nombre`

func (s *reporteService) StockBajo(ctx context.Context) ([]dto.StockBajo, error) {
	var rows []dto.StockBajo
	if err := s.db.SelectContext(ctx, &rows, stockBajoQuery); err != nil {
		return nil, apierror.Internal(err, "no se pudo generar el reporte de stock bajo")
	}
	return rows, nil
}

// ── ExportarDiario ────────────────────────────────────────────────────────────
// Builds one workbook with three sheets: ventas del día, valorización and
// stock bajo. Returns the path of the written .xlsx.

func (s *reporteService) ExportarDiario(ctx context.Context, fecha time.Time, dir string) (string, error) {
	desde := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	hasta := desde.AddDate(0, 0, 1)

	ventas, err := s.VentasDiarias(ctx, desde, hasta)
	if err != nil {
		return "", err
	}
	valorizacion, err := s.ValorizacionInventario(ctx)
	if err != nil {
		return "", err
	}
	stockBajo, err := s.StockBajo(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	ventasSheet := "Ventas"
	f.SetSheetName("Sheet1", ventasSheet)
	headers := []string{"Fecha", "Sucursal", "Facturas", "Total vendido"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ventasSheet, cell, h)
	}
	for i, v := range ventas {
		row := i + 2
		f.SetCellValue(ventasSheet, fmt.Sprintf("A%d", row), v.Fecha)
		f.SetCellValue(ventasSheet, fmt.Sprintf("B%d", row), v.Sucursal)
		f.SetCellValue(ventasSheet, fmt.Sprintf("C%d", row), v.NumFacturas)
		f.SetCellValue(ventasSheet, fmt.Sprintf("D%d", row), v.TotalVendido.InexactFloat64())
	}

	valSheet := "Valorizacion"
	f.NewSheet(valSheet)
	valHeaders := []string{"Sucursal", "Unidades", "Valor costo", "Valor venta"}
	for i, h := range valHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(valSheet, cell, h)
	}
	for i, v := range valorizacion {
		row := i + 2
		f.SetCellValue(valSheet, fmt.Sprintf("A%d", row), v.Sucursal)
		f.SetCellValue(valSheet, fmt.Sprintf("B%d", row), v.Unidades)
		f.SetCellValue(valSheet, fmt.Sprintf("C%d", row), v.ValorCosto.InexactFloat64())
		f.SetCellValue(valSheet, fmt.Sprintf("D%d", row), v.ValorVenta.InexactFloat64())
	}

	stockSheet := "Stock bajo"
	f.NewSheet(stockSheet)
	stockHeaders := []string{"Sucursal", "Producto", "Cantidad", "Stock minimo"}
	for i, h := range stockHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(stockSheet, cell, h)
	}
	for i, v := range stockBajo {
		row := i + 2
		f.SetCellValue(stockSheet, fmt.Sprintf("A%d", row), v.Sucursal)
		f.SetCellValue(stockSheet, fmt.Sprintf("B%d", row), v.Producto)
		f.SetCellValue(stockSheet, fmt.Sprintf("C%d", row), v.Cantidad)
		f.SetCellValue(stockSheet, fmt.Sprintf("D%d", row), v.StockMinimo)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apierror.Internal(err, "no se pudo crear el directorio de reportes")
	}
	path := filepath.Join(dir, fmt.Sprintf("reporte_%s.xlsx", desde.Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		return "", apierror.Internal(err, "no se pudo escribir el reporte")
	}
	return path, nil
}
