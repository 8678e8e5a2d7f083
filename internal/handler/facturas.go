package handler

import (
	"net/http"
	"time"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/middleware"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// Emitir godoc
// @Summary      Emite una factura de venta
// @Description  Venta ACID: numera la factura, descuenta stock de la sucursal de la apertura y despacha PDF + email asíncronos.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EmitirFacturaRequest true "Apertura, cliente y líneas"
// @Success      201  {object} dto.FacturaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/facturas [post]
func (h *FacturasHandler) Emitir(c *gin.Context) {
	var req dto.EmitirFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	personaID, _ := uuid.Parse(claims.PersonaID)

	resp, err := h.svc.Emitir(c.Request.Context(), personaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Anular godoc
// @Summary      Anula una factura y restaura el stock
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/facturas/{id} [delete]
func (h *FacturasHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FacturasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Lista facturas
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        sucursal_id query string false "Filtro por sucursal"
// @Param        desde       query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta       query string false "Fecha YYYY-MM-DD inclusive"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.FacturaListResponse
// @Router       /v1/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var sucursalID *uuid.UUID
	if raw := c.Query("sucursal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("sucursal_id inválido"))
			return
		}
		sucursalID = &id
	}

	var desde, hasta *time.Time
	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido, formato YYYY-MM-DD"))
			return
		}
		desde = &t
	}
	if raw := c.Query("hasta"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta inválido, formato YYYY-MM-DD"))
			return
		}
		// inclusive end of day
		end := t.Add(24*time.Hour - time.Nanosecond)
		hasta = &end
	}

	page, limit := pageLimitFromQuery(c)
	resp, err := h.svc.Listar(c.Request.Context(), sucursalID, desde, hasta, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
