package handler

import (
	"net/http"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerInventario(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarProducto godoc
// @Summary Ingresa stock de un producto a un inventario
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AjusteInventarioRequest true "Inventario, producto y cantidad"
// @Success 200 {object} dto.InventarioProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/inventario/agregar [post]
func (h *InventarioHandler) AgregarProducto(c *gin.Context) {
	var req dto.AjusteInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarProducto godoc
// @Summary Retira stock de un producto de un inventario
// @Description Si la existencia queda en cero la fila del producto se elimina del inventario.
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AjusteInventarioRequest true "Inventario, producto y cantidad"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventario/quitar [post]
func (h *InventarioHandler) QuitarProducto(c *gin.Context) {
	var req dto.AjusteInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.QuitarProducto(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventarioHandler) ActualizarProducto(c *gin.Context) {
	var req dto.ActualizarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Trasladar godoc
// @Summary Mueve stock directamente entre dos inventarios
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TrasladarInventarioRequest true "Origen, destino, producto y cantidad"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventario/trasladar [post]
func (h *InventarioHandler) Trasladar(c *gin.Context) {
	var req dto.TrasladarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Trasladar(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clonar godoc
// @Summary Clona el catálogo de un inventario con cantidades en cero
// @Tags inventario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClonarInventarioRequest true "Inventario origen y nombre del clon"
// @Success 201 {object} dto.InventarioResponse
// @Router /v1/inventario/clonar [post]
func (h *InventarioHandler) Clonar(c *gin.Context) {
	var req dto.ClonarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Clonar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) Alertas(c *gin.Context) {
	var inventarioID *uuid.UUID
	if raw := c.Query("inventario_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("inventario_id inválido"))
			return
		}
		inventarioID = &id
	}
	resp, err := h.svc.Alertas(c.Request.Context(), inventarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
