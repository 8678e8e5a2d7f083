package handler

import (
	"net/http"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// VentasDiarias godoc
// @Summary Ventas por día y sucursal en un rango de fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param hasta query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success 200 {array} dto.VentaDiaria
// @Router /v1/reportes/ventas-diarias [get]
func (h *ReportesHandler) VentasDiarias(c *gin.Context) {
	hoy := time.Now().Truncate(24 * time.Hour)
	desde, hasta := hoy, hoy

	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido, formato YYYY-MM-DD"))
			return
		}
		desde = t
	}
	if raw := c.Query("hasta"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta inválido, formato YYYY-MM-DD"))
			return
		}
		hasta = t
	}
	if hasta.Before(desde) {
		c.JSON(http.StatusBadRequest, apierror.New("hasta no puede ser anterior a desde"))
		return
	}

	resp, err := h.svc.VentasDiarias(c.Request.Context(), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) ValorizacionInventario(c *gin.Context) {
	resp, err := h.svc.ValorizacionInventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) StockBajo(c *gin.Context) {
	resp, err := h.svc.StockBajo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
