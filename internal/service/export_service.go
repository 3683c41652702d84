package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"partsync/internal/config"
	"partsync/internal/domain"
	"partsync/internal/export"
	"partsync/internal/metrics"
	"partsync/internal/port"
)

// ExportOutput describes an uploaded review sheet.
type ExportOutput struct {
	RunID       uuid.UUID           `json:"run_id"`
	Format      domain.ExportFormat `json:"format"`
	FileName    string              `json:"file_name"`
	Key         string              `json:"key"`
	ContentType string              `json:"content_type"`
	Size        int64               `json:"size"`
	URL         string              `json:"url"`
}

// ExportService renders review sheets and stores them in object storage.
type ExportService interface {
	Export(ctx context.Context, runID uuid.UUID, format domain.ExportFormat) (*ExportOutput, error)
	Render(ctx context.Context, runID uuid.UUID, format domain.ExportFormat) ([]byte, string, error)
}

type exportService struct {
	runRepo      port.RunRepository
	decisionRepo port.DecisionRepository
	storage      port.ObjectStorage
	s3Cfg        *config.S3Config
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	runRepo port.RunRepository,
	decisionRepo port.DecisionRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
	logger *zap.Logger,
) ExportService {
	return &exportService{
		runRepo:      runRepo,
		decisionRepo: decisionRepo,
		storage:      storage,
		s3Cfg:        s3Cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Render returns the review sheet bytes and its file name without uploading.
func (s *exportService) Render(ctx context.Context, runID uuid.UUID, format domain.ExportFormat) ([]byte, string, error) {
	if _, ok := domain.ExportContentTypes[format]; !ok {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, format)
	}
	sheet, err := s.loadSheet(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	switch format {
	case domain.ExportFormatCSV:
		err = export.NewCSVWriter(&buf).WriteSheet(sheet)
	case domain.ExportFormatXLSX:
		err = export.WriteXLSX(&buf, sheet)
	}
	if err != nil {
		metrics.RecordExport(format, err)
		return nil, "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	return buf.Bytes(), export.BuildFilename(sheet, format, s.now()), nil
}

func (s *exportService) Export(ctx context.Context, runID uuid.UUID, format domain.ExportFormat) (*ExportOutput, error) {
	data, fileName, err := s.Render(ctx, runID, format)
	if err != nil {
		return nil, err
	}

	contentType := domain.ExportContentTypes[format]
	key := path.Join(s.s3Cfg.KeyPrefix, runID.String(), fileName)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
		FileName:    fileName,
		Metadata:    map[string]string{"run-id": runID.String(), "format": string(format)},
	})
	if err != nil {
		metrics.RecordExport(format, err)
		s.logger.Error("review sheet upload failed", zap.String("run_id", runID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		metrics.RecordExport(format, err)
		if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); delErr != nil {
			s.logger.Warn("removing unreachable review sheet", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("presigning review sheet: %w", err)
	}
	metrics.RecordExport(format, nil)

	s.logger.Info("review sheet exported",
		zap.String("run_id", runID.String()),
		zap.String("format", string(format)),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return &ExportOutput{
		RunID:       runID,
		Format:      format,
		FileName:    fileName,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		URL:         url,
	}, nil
}

func (s *exportService) loadSheet(ctx context.Context, runID uuid.UUID) (*export.ReviewSheet, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	payload, err := decodeRunPayload(run)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decisionRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]domain.SuggestionDecision, len(decisions))
	for _, d := range decisions {
		byKey[d.PropertyKey] = d
	}
	return &export.ReviewSheet{
		RunID:       run.ID,
		Kind:        run.Kind,
		PartNumber:  run.PartNumber,
		FilePath:    run.FilePath,
		Status:      run.Status,
		Summary:     run.Summary,
		CreatedAt:   run.CreatedAt,
		Result:      payload.Result,
		Suggestions: payload.Suggestions,
		Unassigned:  payload.Unassigned,
		Decisions:   byKey,
	}, nil
}
