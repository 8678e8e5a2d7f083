package handler

import (
	"net/http"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PersonasHandler struct{ svc service.PersonaService }

func NewPersonasHandler(svc service.PersonaService) *PersonasHandler {
	return &PersonasHandler{svc: svc}
}

// Guardar godoc
// @Summary Crea o actualiza una persona
// @Tags personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GuardarPersonaRequest true "Datos de la persona"
// @Success 200 {object} dto.PersonaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/personas [post]
func (h *PersonasHandler) Guardar(c *gin.Context) {
	var req dto.GuardarPersonaRequest
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

func (h *PersonasHandler) Obtener(c *gin.Context) {
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
// @Summary Lista personas con paginación y búsqueda
// @Tags personas
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 20)"
// @Param buscar query string false "Búsqueda por nombre, apellido o email"
// @Param activo query string false "'' activos | false inactivos | all todos"
// @Success 200 {object} dto.PersonaListResponse
// @Router /v1/personas [get]
func (h *PersonasHandler) Listar(c *gin.Context) {
	filter := listFilterFromQuery(c)
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PersonasHandler) Desactivar(c *gin.Context) {
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

func (h *PersonasHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
