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

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de persona
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Renueva el token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Token vigente"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarPassword godoc
// @Summary Cambia la contraseña de la persona autenticada
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CambiarPasswordRequest true "Contraseña actual y nueva"
// @Success 204
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/password [put]
func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	var req dto.CambiarPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	personaID, err := uuid.Parse(claims.PersonaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de persona inválido"))
		return
	}
	if err := h.svc.CambiarPassword(c.Request.Context(), personaID, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
