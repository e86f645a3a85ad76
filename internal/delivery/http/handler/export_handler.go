package handler

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"extraction-api/internal/domain/repository"
	"extraction-api/internal/usecase/extraction"
)

type ExportHandler struct {
	uc     *extraction.ExtractionUsecase
	logger *slog.Logger
}

func NewExportHandler(uc *extraction.ExtractionUsecase, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{uc: uc, logger: logger}
}

// CSV godoc
// @Summary      Export extractions as CSV
// @Description  Full export of the extraction history, optionally filtered
// @Tags         Export
// @Produce      text/csv
// @Param        search       query  string  false  "Substring match on filename"
// @Param        date_filter  query  string  false  "today, week or month"
// @Success      200  {string}  string
// @Router       /api/export/csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	out, err := h.uc.ExportCSV(c.Context(), h.filter(c))
	if err != nil {
		h.logger.Error("csv export failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, attachment("csv"))
	return c.Status(fiber.StatusOK).Send(out)
}

// XLSX godoc
// @Summary      Export extractions as an XLSX workbook
// @Tags         Export
// @Param        search       query  string  false  "Substring match on filename"
// @Param        date_filter  query  string  false  "today, week or month"
// @Success      200  {string}  string
// @Router       /api/export/xlsx [get]
func (h *ExportHandler) XLSX(c *fiber.Ctx) error {
	out, err := h.uc.ExportXLSX(c.Context(), h.filter(c))
	if err != nil {
		h.logger.Error("xlsx export failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment("xlsx"))
	return c.Status(fiber.StatusOK).Send(out)
}

func (h *ExportHandler) filter(c *fiber.Ctx) repository.Filter {
	return repository.Filter{
		Search:    c.Query("search"),
		DateRange: c.Query("date_filter"),
	}
}

// attachment builds a unique download name so saved exports never collide.
func attachment(format string) string {
	return fmt.Sprintf(`attachment; filename="extractions_%s.%s"`, uuid.NewString(), format)
}
