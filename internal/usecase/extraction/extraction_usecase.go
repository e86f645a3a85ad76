package extraction

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"extraction-api/internal/domain/entity"
	"extraction-api/internal/domain/repository"
)

type ExtractionUsecase struct {
	repo      repository.ExtractionRepository
	extractor *TextExtractor
	logger    *slog.Logger

	defaultPerPage int
	maxPerPage     int
}

func NewExtractionUsecase(
	repo repository.ExtractionRepository,
	logger *slog.Logger,
	defaultPerPage, maxPerPage int,
) *ExtractionUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionUsecase{
		repo:           repo,
		extractor:      NewTextExtractor(),
		logger:         logger,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

// create extraction record
func (uc *ExtractionUsecase) CreateExtraction(ctx context.Context, ext *entity.Extraction) error {
	if err := uc.repo.Create(ctx, ext); err != nil {
		return err
	}
	uc.logger.Info("extraction created", "id", ext.ID, "filename", ext.Filename, "status", ext.Status)
	return nil
}

// list extractions with filters and pagination
func (uc *ExtractionUsecase) ListExtractions(
	ctx context.Context,
	f repository.Filter,
	page, perPage int,
) ([]entity.Extraction, int64, repository.Page, error) {
	p := uc.normalizePage(repository.Page{Number: page, PerPage: perPage})
	exts, total, err := uc.repo.List(ctx, f, p)
	if err != nil {
		return nil, 0, p, err
	}
	return exts, total, p, nil
}

// get extraction by id
func (uc *ExtractionUsecase) GetExtraction(ctx context.Context, id int64) (*entity.Extraction, error) {
	return uc.repo.Get(ctx, id)
}

// delete extraction by id
func (uc *ExtractionUsecase) DeleteExtraction(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("extraction deleted", "id", id)
	return nil
}

// delete all extractions, returning how many were removed
func (uc *ExtractionUsecase) ClearExtractions(ctx context.Context) (int64, error) {
	count, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("extractions cleared", "deleted", count)
	return count, nil
}

// dashboard metrics
func (uc *ExtractionUsecase) Metrics(ctx context.Context) (*entity.Metrics, error) {
	return uc.repo.Metrics(ctx)
}

// export matching extractions as CSV
func (uc *ExtractionUsecase) ExportCSV(ctx context.Context, f repository.Filter) ([]byte, error) {
	exts, err := uc.repo.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out, err := MarshalCSV(exts)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("export csv", "rows", len(exts))
	return out, nil
}

// export matching extractions as XLSX
func (uc *ExtractionUsecase) ExportXLSX(ctx context.Context, f repository.Filter) ([]byte, error) {
	exts, err := uc.repo.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	out, err := MarshalXLSX(exts)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("export xlsx", "rows", len(exts))
	return out, nil
}

type extractionPayload struct {
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
}

// IngestFile extracts plain text from an uploaded file and stores the result.
// Extraction failures are recorded too, as a failed extraction with the error
// in its payload, so the dashboard sees every attempt.
func (uc *ExtractionUsecase) IngestFile(
	ctx context.Context,
	filename, contentType string,
	data []byte,
) (*entity.Extraction, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, entity.NewValidationError("file", "a file is required")
	}

	size := int64(len(data))
	mimeType := ResolveMimeType(filename, contentType)
	ext := &entity.Extraction{
		Filename: filename,
		FileSize: &size,
	}
	if mimeType != "" {
		ext.MimeType = &mimeType
	}

	text, err := uc.extractor.Extract(mimeType, data)
	if err != nil {
		uc.logger.Warn("extraction failed", "filename", filename, "error", err)
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		raw := string(payload)
		ext.Status = entity.StatusFailed
		ext.DataJSON = &raw
	} else {
		payload, _ := json.Marshal(extractionPayload{
			Text:      text,
			CharCount: len(text),
			WordCount: len(strings.Fields(text)),
		})
		raw := string(payload)
		ext.Status = entity.StatusSuccess
		ext.DataJSON = &raw
	}

	if err := uc.repo.Create(ctx, ext); err != nil {
		return nil, err
	}
	uc.logger.Info("file ingested", "id", ext.ID, "filename", filename, "status", ext.Status)
	return ext, nil
}

func (uc *ExtractionUsecase) normalizePage(p repository.Page) repository.Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = uc.defaultPerPage
	}
	if p.PerPage > uc.maxPerPage {
		p.PerPage = uc.maxPerPage
	}
	return p
}
