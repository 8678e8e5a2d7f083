package handler

import (
	"net/http"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SucursalesHandler struct{ svc service.SucursalService }

func NewSucursalesHandler(svc service.SucursalService) *SucursalesHandler {
	return &SucursalesHandler{svc: svc}
}

// Guardar godoc
// @Summary Crea o actualiza una sucursal
// @Description Al crear se provisiona automáticamente un inventario vacío para la sucursal.
// @Tags sucursales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarSucursalRequest true "Datos de la sucursal"
// @Success 200 {object} dto.SucursalResponse
// @Router /v1/sucursales [post]
func (h *SucursalesHandler) Guardar(c *gin.Context) {
	var req dto.GuardarSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *SucursalesHandler) Obtener(c *gin.Context) {
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

func (h *SucursalesHandler) Listar(c *gin.Context) {
	filter := listFilterFromQuery(c)
	data, total, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total, "page": filter.Page, "limit": filter.Limit})
}

func (h *SucursalesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Cajas ─────────────────────────────────────────────────────────────────────

func (h *SucursalesHandler) GuardarCaja(c *gin.Context) {
	var req dto.GuardarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarCaja(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *SucursalesHandler) ListarCajas(c *gin.Context) {
	var sucursalID *uuid.UUID
	if raw := c.Query("sucursal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("sucursal_id inválido"))
			return
		}
		sucursalID = &id
	}
	resp, err := h.svc.ListarCajas(c.Request.Context(), sucursalID, c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SucursalesHandler) DesactivarCaja(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesactivarCaja(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
