package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/service"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/response"
)

type shiftGenerator interface {
	Generate(ctx context.Context, actor *models.JWTClaims, clientID, patternID string) (*dto.GenerateShiftsResponse, error)
}

type conflictChecker interface {
	CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
}

type overviewProvider interface {
	Overview(ctx context.Context, actor *models.JWTClaims, clientID string) (*dto.SchedulingOverviewResponse, error)
}

type settingsManager interface {
	Get(ctx context.Context, actor *models.JWTClaims, clientID string) (*models.SchedulingSettings, error)
	Update(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.SchedulingSettingsRequest) (*models.SchedulingSettings, error)
}

type rosterExporter interface {
	ExportShifts(ctx context.Context, actor *models.JWTClaims, clientID, format string) (*service.ReportFile, error)
	CreateExportLink(ctx context.Context, actor *models.JWTClaims, clientID, format string) (*dto.ExportLinkResponse, error)
	Download(token string) (*service.ReportFile, error)
}

// SchedulingHandler exposes generation, conflict checking, the statistics
// overview, settings and roster export.
type SchedulingHandler struct {
	generator shiftGenerator
	conflicts conflictChecker
	stats     overviewProvider
	settings  settingsManager
	reports   rosterExporter
}

// NewSchedulingHandler constructs the handler.
func NewSchedulingHandler(generator *service.ShiftGeneratorService, conflicts *service.ConflictService, stats *service.StatsService, settings *service.SchedulingSettingsService, reports *service.ReportService) *SchedulingHandler {
	return &SchedulingHandler{generator: generator, conflicts: conflicts, stats: stats, settings: settings, reports: reports}
}

// Generate godoc
// @Summary Expand active shift patterns into shift instances
// @Description Idempotent: re-running skips dates that already have a shift for the same client and shift type.
// @Tags Scheduling
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Param patternId query string false "Limit generation to one pattern"
// @Success 200 {object} response.Envelope
// @Router /scheduling/generate [post]
func (h *SchedulingHandler) Generate(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.generator.Generate(c.Request.Context(), claims, clientID, c.Query("patternId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Conflicts godoc
// @Summary Check a candidate assignment for overlapping shifts
// @Tags Scheduling
// @Produce json
// @Param caregiverId query string true "Caregiver ID"
// @Param date query string true "Date (2006-01-02)"
// @Param startTime query string true "Start time (HH:mm)"
// @Param endTime query string true "End time (HH:mm)"
// @Param excludeShiftId query string false "Shift to exclude from the check"
// @Success 200 {object} response.Envelope
// @Router /scheduling/conflicts [get]
func (h *SchedulingHandler) Conflicts(c *gin.Context) {
	req := dto.ConflictCheckRequest{
		CaregiverID:    c.Query("caregiverId"),
		Date:           c.Query("date"),
		StartTime:      c.Query("startTime"),
		EndTime:        c.Query("endTime"),
		ExcludeShiftID: c.Query("excludeShiftId"),
	}
	result, err := h.conflicts.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Overview godoc
// @Summary Scheduling statistics for the coming year
// @Tags Scheduling
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Success 200 {object} response.Envelope
// @Router /scheduling/overview [get]
func (h *SchedulingHandler) Overview(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.stats.Overview(c.Request.Context(), claims, clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetSettings godoc
// @Summary Get schedule maintenance settings
// @Tags Scheduling
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Success 200 {object} response.Envelope
// @Router /scheduling/settings [get]
func (h *SchedulingHandler) GetSettings(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	settings, err := h.settings.Get(c.Request.Context(), claims, clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// UpdateSettings godoc
// @Summary Update schedule maintenance settings
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Param payload body dto.SchedulingSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /scheduling/settings [put]
func (h *SchedulingHandler) UpdateSettings(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SchedulingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), claims, clientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Export godoc
// @Summary Export the upcoming roster as CSV or PDF
// @Tags Scheduling
// @Produce text/csv,application/pdf
// @Param clientId query string false "Client ID (admins only)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /scheduling/export [get]
func (h *SchedulingHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.reports.ExportShifts(c.Request.Context(), claims, clientID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// CreateExportLink godoc
// @Summary Create a shareable signed download link for a roster export
// @Tags Scheduling
// @Produce json
// @Param clientId query string false "Client ID (admins only)"
// @Param format query string true "csv or pdf"
// @Success 201 {object} response.Envelope
// @Router /scheduling/export/links [post]
func (h *SchedulingHandler) CreateExportLink(c *gin.Context) {
	claims := claimsFromContext(c)
	clientID, err := resolveClientID(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	link, err := h.reports.CreateExportLink(c.Request.Context(), claims, clientID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Download godoc
// @Summary Download an archived export via a signed token
// @Description No authentication required; the token itself authorizes access until it expires.
// @Tags Scheduling
// @Produce text/csv,application/pdf
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /export/download [get]
func (h *SchedulingHandler) Download(c *gin.Context) {
	file, err := h.reports.Download(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
