package handler

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"extraction-api/internal/delivery/http/dto"
	"extraction-api/internal/domain/entity"
	"extraction-api/internal/domain/repository"
	"extraction-api/internal/usecase/extraction"
)

type ExtractionHandler struct {
	uc     *extraction.ExtractionUsecase
	logger *slog.Logger
}

func NewExtractionHandler(uc *extraction.ExtractionUsecase, logger *slog.Logger) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{uc: uc, logger: logger}
}

// List godoc
// @Summary      List extractions
// @Description  Paginated extraction history with optional search and date filtering
// @Tags         Extractions
// @Produce      json
// @Param        page         query  int     false  "Page number" default(1)
// @Param        per_page     query  int     false  "Items per page" default(10)
// @Param        search       query  string  false  "Substring match on filename"
// @Param        date_filter  query  string  false  "today, week or month"
// @Success      200  {object}  dto.ListExtractionsResponse
// @Router       /api/extractions [get]
func (h *ExtractionHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 0)
	filter := repository.Filter{
		Search:    c.Query("search"),
		DateRange: c.Query("date_filter"),
	}

	exts, total, p, err := h.uc.ListExtractions(c.Context(), filter, page, perPage)
	if err != nil {
		return h.respondError(c, err)
	}

	pages := (total + int64(p.PerPage) - 1) / int64(p.PerPage)
	return c.Status(fiber.StatusOK).JSON(dto.ListExtractionsResponse{
		Extractions: dto.FromEntities(exts),
		Pagination: dto.PaginationMeta{
			Page:    p.Number,
			PerPage: p.PerPage,
			Total:   total,
			Pages:   pages,
		},
	})
}

// Create godoc
// @Summary      Create an extraction record
// @Description  Store the result of an external extraction run
// @Tags         Extractions
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.CreateExtractionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/extractions [post]
func (h *ExtractionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateExtractionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	ext := &entity.Extraction{
		Filename: req.Filename,
		FileSize: req.FileSize,
		Status:   req.Status,
		DataJSON: req.DataJSON,
	}
	// external producers are overwhelmingly PDF; match their default
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = extraction.MimePDF
	}
	ext.MimeType = &mimeType

	if err := h.uc.CreateExtraction(c.Context(), ext); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateExtractionResponse{
		ID:      ext.ID,
		Message: "Extraction created successfully",
	})
}

// Upload godoc
// @Summary      Upload a file for extraction
// @Description  Extract text from a PDF, DOCX or plain-text file and store the result
// @Tags         Extractions
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to extract"
// @Success      201  {object}  dto.ExtractionInfo
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/extractions/upload [post]
func (h *ExtractionHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to get file"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to open file"})
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to read file"})
	}

	ext, err := h.uc.IngestFile(c.Context(), file.Filename, file.Header.Get("Content-Type"), buf)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromEntity(*ext))
}

// GetByID godoc
// @Summary      Get an extraction by ID
// @Tags         Extractions
// @Produce      json
// @Param        id  path  int  true  "Extraction ID"
// @Success      200  {object}  dto.ExtractionInfo
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/extractions/{id} [get]
func (h *ExtractionHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid extraction id"})
	}

	ext, err := h.uc.GetExtraction(c.Context(), int64(id))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromEntity(*ext))
}

// Delete godoc
// @Summary      Delete an extraction
// @Tags         Extractions
// @Produce      json
// @Param        id  path  int  true  "Extraction ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/extractions/{id} [delete]
func (h *ExtractionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid extraction id"})
	}

	if err := h.uc.DeleteExtraction(c.Context(), int64(id)); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Extraction deleted successfully"})
}

// Clear godoc
// @Summary      Delete all extractions
// @Tags         Extractions
// @Produce      json
// @Success      200  {object}  dto.ClearExtractionsResponse
// @Router       /api/extractions/clear [delete]
func (h *ExtractionHandler) Clear(c *fiber.Ctx) error {
	deleted, err := h.uc.ClearExtractions(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.ClearExtractionsResponse{
		Deleted: deleted,
		Message: "Extractions cleared successfully",
	})
}

// Metrics godoc
// @Summary      Dashboard metrics
// @Tags         Metrics
// @Produce      json
// @Success      200  {object}  entity.Metrics
// @Router       /api/metrics [get]
func (h *ExtractionHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.uc.Metrics(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *ExtractionHandler) respondError(c *fiber.Ctx, err error) error {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ve.Error()})
	case errors.Is(err, entity.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Extraction not found"})
	default:
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
}
