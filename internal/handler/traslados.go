package handler

import (
	"net/http"
	"strconv"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/middleware"
	"farmavita/internal/model"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrasladosHandler struct{ svc service.TrasladoService }

func NewTrasladosHandler(svc service.TrasladoService) *TrasladosHandler {
	return &TrasladosHandler{svc: svc}
}

// Crear godoc
// @Summary Crea una solicitud de traslado entre sucursales
// @Description La solicitud queda pendiente; el stock no se mueve hasta procesarla.
// @Tags traslados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTrasladoRequest true "Sucursales y líneas del traslado"
// @Success 201 {object} dto.TrasladoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/traslados [post]
func (h *TrasladosHandler) Crear(c *gin.Context) {
	var req dto.CrearTrasladoRequest
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

// Procesar godoc
// @Summary Procesa un traslado pendiente moviendo el stock
// @Description Todas las líneas se aplican en una sola transacción; si una falla por stock insuficiente no se mueve nada.
// @Tags traslados
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del traslado"
// @Success 200 {object} dto.TrasladoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/traslados/{id}/procesar [post]
func (h *TrasladosHandler) Procesar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Procesar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrasladosHandler) Anular(c *gin.Context) {
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

func (h *TrasladosHandler) Obtener(c *gin.Context) {
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

func (h *TrasladosHandler) Listar(c *gin.Context) {
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

// estadoFromQuery parses the optional numeric "estado" filter. On a bad value
// it writes the 400 response and returns ok=false.
func estadoFromQuery(c *gin.Context) (*model.EstadoOperacion, bool) {
	raw := c.Query("estado")
	if raw == "" {
		return nil, true
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("estado inválido"))
		return nil, false
	}
	estado, err := model.ParseEstado(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("estado inválido"))
		return nil, false
	}
	return &estado, true
}

func pageLimitFromQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
