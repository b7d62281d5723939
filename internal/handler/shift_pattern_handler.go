package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/service"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/response"
)

type shiftPatternManager interface {
	List(ctx context.Context, actor *models.JWTClaims, clientID string) ([]models.ShiftPattern, error)
	Create(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.ShiftPatternRequest) (*models.ShiftPattern, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.ShiftPatternRequest) (*models.ShiftPattern, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

// ShiftPatternHandler exposes shift pattern CRUD.
type ShiftPatternHandler struct {
	service shiftPatternManager
}

// NewShiftPatternHandler constructs the handler.
func NewShiftPatternHandler(svc *service.ShiftPatternService) *ShiftPatternHandler {
	return &ShiftPatternHandler{service: svc}
}

// List godoc
// @Summary List the client's shift patterns
// @Tags ShiftPatterns
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Success 200 {object} response.Envelope
// @Router /shift-patterns [get]
func (h *ShiftPatternHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	patterns, err := h.service.List(c.Request.Context(), claims, clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patterns, nil)
}

// Create godoc
// @Summary Create a shift pattern
// @Tags ShiftPatterns
// @Accept json
// @Produce json
// @Param payload body dto.ShiftPatternRequest true "Shift pattern payload"
// @Success 201 {object} response.Envelope
// @Router /shift-patterns [post]
func (h *ShiftPatternHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ShiftPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift pattern payload"))
		return
	}
	pattern, err := h.service.Create(c.Request.Context(), claims, clientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pattern)
}

// Update godoc
// @Summary Update a shift pattern
// @Description Future generation runs follow the new rule; existing shifts are untouched.
// @Tags ShiftPatterns
// @Accept json
// @Produce json
// @Param id path string true "Shift pattern ID"
// @Param payload body dto.ShiftPatternRequest true "Shift pattern payload"
// @Success 200 {object} response.Envelope
// @Router /shift-patterns/{id} [put]
func (h *ShiftPatternHandler) Update(c *gin.Context) {
	var req dto.ShiftPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift pattern payload"))
		return
	}
	pattern, err := h.service.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// Delete godoc
// @Summary Delete a shift pattern
// @Tags ShiftPatterns
// @Param id path string true "Shift pattern ID"
// @Success 204
// @Router /shift-patterns/{id} [delete]
func (h *ShiftPatternHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
