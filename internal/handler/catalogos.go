package handler

import (
	"net/http"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"
	"farmavita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogosHandler serves the small lookup tables (roles, departamentos,
// municipios, géneros, estados civiles, turnos, categorías de producto).
type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

// ── Roles ─────────────────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarRoles(c *gin.Context) {
	resp, err := h.svc.ListarRoles(c.Request.Context(), c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarRol(c *gin.Context) {
	var req dto.GuardarLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarRol(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarRol(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarRol(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Departamentos ─────────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarDepartamentos(c *gin.Context) {
	resp, err := h.svc.ListarDepartamentos(c.Request.Context(), c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarDepartamento(c *gin.Context) {
	var req dto.GuardarLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarDepartamento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarDepartamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarDepartamento(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Municipios ────────────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarMunicipios(c *gin.Context) {
	var departamentoID *uuid.UUID
	if raw := c.Query("departamento_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("departamento_id inválido"))
			return
		}
		departamentoID = &id
	}
	resp, err := h.svc.ListarMunicipios(c.Request.Context(), departamentoID, c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarMunicipio(c *gin.Context) {
	var req dto.GuardarMunicipioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarMunicipio(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarMunicipio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarMunicipio(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Géneros ───────────────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarGeneros(c *gin.Context) {
	resp, err := h.svc.ListarGeneros(c.Request.Context(), c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarGenero(c *gin.Context) {
	var req dto.GuardarLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarGenero(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarGenero(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarGenero(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Estados civiles ───────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarEstadosCiviles(c *gin.Context) {
	resp, err := h.svc.ListarEstadosCiviles(c.Request.Context(), c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarEstadoCivil(c *gin.Context) {
	var req dto.GuardarLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarEstadoCivil(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarEstadoCivil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarEstadoCivil(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Turnos ────────────────────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarTurnos(c *gin.Context) {
	resp, err := h.svc.ListarTurnos(c.Request.Context(), c.Query("activo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) GuardarTurno(c *gin.Context) {
	var req dto.GuardarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarTurno(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarTurno(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarTurno(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Categorías de producto ────────────────────────────────────────────────────

func (h *CatalogosHandler) ListarCategorias(c *gin.Context) {
	filter := listFilterFromQuery(c)
	data, total, err := h.svc.ListarCategorias(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total, "page": filter.Page, "limit": filter.Limit})
}

func (h *CatalogosHandler) GuardarCategoria(c *gin.Context) {
	var req dto.GuardarLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) EliminarCategoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarCategoria(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
