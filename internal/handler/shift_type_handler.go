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

type shiftTypeManager interface {
	List(ctx context.Context, actor *models.JWTClaims, clientID string) ([]models.ShiftType, error)
	Create(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.ShiftTypeRequest) (*models.ShiftType, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.ShiftTypeRequest) (*models.ShiftType, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

// ShiftTypeHandler exposes shift type CRUD.
type ShiftTypeHandler struct {
	service shiftTypeManager
}

// NewShiftTypeHandler constructs the handler.
func NewShiftTypeHandler(svc *service.ShiftTypeService) *ShiftTypeHandler {
	return &ShiftTypeHandler{service: svc}
}

// List godoc
// @Summary List the client's shift types
// @Tags ShiftTypes
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Success 200 {object} response.Envelope
// @Router /shift-types [get]
func (h *ShiftTypeHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	types, err := h.service.List(c.Request.Context(), claims, clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types, nil)
}

// Create godoc
// @Summary Create a shift type
// @Tags ShiftTypes
// @Accept json
// @Produce json
// @Param payload body dto.ShiftTypeRequest true "Shift type payload"
// @Success 201 {object} response.Envelope
// @Router /shift-types [post]
func (h *ShiftTypeHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift type payload"))
		return
	}
	shiftType, err := h.service.Create(c.Request.Context(), claims, clientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, shiftType)
}

// Update godoc
// @Summary Update a shift type
// @Description Already-generated shifts keep the times they were created with.
// @Tags ShiftTypes
// @Accept json
// @Produce json
// @Param id path string true "Shift type ID"
// @Param payload body dto.ShiftTypeRequest true "Shift type payload"
// @Success 200 {object} response.Envelope
// @Router /shift-types/{id} [put]
func (h *ShiftTypeHandler) Update(c *gin.Context) {
	var req dto.ShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shift type payload"))
		return
	}
	shiftType, err := h.service.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shiftType, nil)
}

// Delete godoc
// @Summary Delete an unreferenced shift type
// @Tags ShiftTypes
// @Param id path string true "Shift type ID"
// @Success 204
// @Router /shift-types/{id} [delete]
func (h *ShiftTypeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
