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

type shiftLifecycle interface {
	GetByID(ctx context.Context, actor *models.JWTClaims, id string) (*models.Shift, error)
	Assign(ctx context.Context, actor *models.JWTClaims, shiftID string, req dto.AssignShiftRequest) (*models.Shift, error)
	Complete(ctx context.Context, actor *models.JWTClaims, shiftID string) (*models.Shift, error)
	Cancel(ctx context.Context, actor *models.JWTClaims, shiftID string) (*models.Shift, error)
	SubmitTimeCorrection(ctx context.Context, actor *models.JWTClaims, shiftID string, req dto.TimeCorrectionRequest) (*models.Shift, error)
	SetVerification(ctx context.Context, actor *models.JWTClaims, shiftID string, verified bool) (*models.Shift, error)
}

// ShiftHandler exposes the shift lifecycle endpoints.
type ShiftHandler struct {
	service shiftLifecycle
}

// NewShiftHandler constructs the handler.
func NewShiftHandler(svc *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: svc}
}

// Get godoc
// @Summary Get one shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.service.GetByID(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Assign godoc
// @Summary Assign a caregiver to an unfilled shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body dto.AssignShiftRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/assign [post]
func (h *ShiftHandler) Assign(c *gin.Context) {
	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	shift, err := h.service.Assign(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Complete godoc
// @Summary Mark a filled past shift as worked
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/complete [post]
func (h *ShiftHandler) Complete(c *gin.Context) {
	shift, err := h.service.Complete(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Cancel godoc
// @Summary Cancel an unfilled or filled shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/cancel [post]
func (h *ShiftHandler) Cancel(c *gin.Context) {
	shift, err := h.service.Cancel(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// TimeCorrection godoc
// @Summary Submit actually-worked times for a past shift
// @Description Only the assigned caregiver can submit. The correction lands in PENDING state for client review.
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body dto.TimeCorrectionRequest true "Time correction payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/time-correction [post]
func (h *ShiftHandler) TimeCorrection(c *gin.Context) {
	var req dto.TimeCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time correction payload"))
		return
	}
	shift, err := h.service.SubmitTimeCorrection(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Verify godoc
// @Summary Toggle client verification of a past shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body dto.VerifyShiftRequest true "Verification payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/verify [post]
func (h *ShiftHandler) Verify(c *gin.Context) {
	var req dto.VerifyShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Verified == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "verified flag is required"))
		return
	}
	shift, err := h.service.SetVerification(c.Request.Context(), claimsFromContext(c), c.Param("id"), *req.Verified)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}
