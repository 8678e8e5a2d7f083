package handler

import (
	"net/http"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/middleware"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una orden de restablecimiento de stock
// @Tags ordenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearOrdenRequest true "Proveedor, sucursal y líneas"
// @Success 201 {object} dto.OrdenResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	solicitanteID, _ := uuid.Parse(claims.PersonaID)

	resp, err := h.svc.Crear(c.Request.Context(), solicitanteID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Confirmar godoc
// @Summary Confirma la recepción de una orden e ingresa el stock
// @Tags ordenes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la orden"
// @Success 200 {object} dto.OrdenResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/ordenes/{id}/confirmar [post]
func (h *OrdenesHandler) Confirmar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	aprobadorID, _ := uuid.Parse(claims.PersonaID)

	resp, err := h.svc.Confirmar(c.Request.Context(), id, aprobadorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Anular(c *gin.Context) {
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

func (h *OrdenesHandler) Obtener(c *gin.Context) {
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

func (h *OrdenesHandler) Listar(c *gin.Context) {
	estado, ok := estadoFromQuery(c)
	if !ok {
		return
	}
	page, limit := pageLimitFromQuery(c)
	resp, err := h.svc.Listar(c.Request.Context(), estado, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
