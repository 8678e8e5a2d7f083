package handler

import (
	"net/http"
	"strconv"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/middleware"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una sesión de caja
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Caja y monto de apertura"
// @Success 201 {object} dto.AperturaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	personaID, _ := uuid.Parse(claims.PersonaID)

	resp, err := h.svc.Abrir(c.Request.Context(), personaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la sesión de caja con el monto contado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Apertura y monto de cierre"
// @Success 200 {object} dto.AperturaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	personaID, _ := uuid.Parse(claims.PersonaID)

	resp, err := h.svc.Cerrar(c.Request.Context(), personaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerActiva returns the open session of the authenticated person, if any.
func (h *CajaHandler) ObtenerActiva(c *gin.Context) {
	claims := middleware.GetClaims(c)
	personaID, err := uuid.Parse(claims.PersonaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de persona inválido"))
		return
	}
	resp, err := h.svc.ObtenerActiva(c.Request.Context(), personaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of past cash sessions.
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
