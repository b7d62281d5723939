package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/export"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/storage"
)

// ReportFile is a rendered export ready to stream to the caller.
type ReportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ReportService renders the client's upcoming roster as CSV or PDF. Rendered
// files can also be archived to local storage behind signed download links.
type ReportService struct {
	shifts  statsShiftReader
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	archive *storage.LocalStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService wires export dependencies. archive and signer may be nil,
// which disables shareable links.
func NewReportService(shifts statsShiftReader, csv *export.CSVExporter, pdf *export.PDFExporter, archive *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{shifts: shifts, csv: csv, pdf: pdf, archive: archive, signer: signer, logger: logger, now: time.Now}
}

var rosterHeaders = []string{"Date", "Shift Type", "Start", "End", "Caregiver", "Status", "Verified"}

// ExportShifts renders the roster for the coming year in the requested format.
func (s *ReportService) ExportShifts(ctx context.Context, actor *models.JWTClaims, clientID, format string) (*ReportFile, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	return s.render(ctx, clientID, format)
}

// CreateExportLink renders the roster, archives it and returns a signed
// download token that works without authentication until it expires.
func (s *ReportService) CreateExportLink(ctx context.Context, actor *models.JWTClaims, clientID, format string) (*dto.ExportLinkResponse, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	if s.archive == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "export links are not enabled")
	}

	file, err := s.render(ctx, clientID, format)
	if err != nil {
		return nil, err
	}

	relPath := path.Join(clientID, file.Filename)
	if _, err := s.archive.Save(relPath, file.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive export")
	}

	token, expiresAt, err := s.signer.Generate(uuid.NewString(), relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	return &dto.ExportLinkResponse{
		Token:     token,
		Filename:  file.Filename,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Download resolves a signed token to its archived export.
func (s *ReportService) Download(token string) (*ReportFile, error) {
	if s.archive == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export links are not enabled")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	file, err := s.archive.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archived export")
	}

	contentType := "text/csv"
	if strings.HasSuffix(relPath, ".pdf") {
		contentType = "application/pdf"
	}
	return &ReportFile{
		Content:     content,
		ContentType: contentType,
		Filename:    path.Base(relPath),
	}, nil
}

func (s *ReportService) render(ctx context.Context, clientID, format string) (*ReportFile, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	today := dateOnly(s.now())
	windowEnd := today.AddDate(1, 0, 0)
	shifts, err := s.shifts.ListForOverview(ctx, clientID, today, windowEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts for export")
	}

	dataset := export.Dataset{Headers: rosterHeaders, Rows: make([]map[string]string, 0, len(shifts))}
	for _, shift := range shifts {
		caregiver := ""
		if shift.CaregiverName != nil {
			caregiver = *shift.CaregiverName
		}
		verified := "no"
		if shift.ClientVerified {
			verified = "yes"
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":       shift.Date.Format("2006-01-02"),
			"Shift Type": shift.ShiftTypeName,
			"Start":      shift.StartTime,
			"End":        shift.EndTime,
			"Caregiver":  caregiver,
			"Status":     string(shift.Status),
			"Verified":   verified,
		})
	}

	stamp := today.Format("2006-01-02")
	if format == "csv" {
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ReportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("shift-roster-%s.csv", stamp),
		}, nil
	}

	subtitle := fmt.Sprintf("%s through %s", stamp, windowEnd.Format("2006-01-02"))
	content, err := s.pdf.Render(dataset, "Shift Roster", subtitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return &ReportFile{
		Content:     content,
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("shift-roster-%s.pdf", stamp),
	}, nil
}
