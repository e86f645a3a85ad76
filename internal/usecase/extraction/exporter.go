package extraction

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"extraction-api/internal/domain/entity"
)

// exportColumns mirror the entity's fields, in table order.
var exportColumns = []string{
	"id", "filename", "file_size", "mime_type", "extraction_date",
	"status", "data_json", "created_at", "updated_at",
}

// MarshalCSV renders extractions as CSV in the order given. An empty slice
// still yields the header row.
func MarshalCSV(exts []entity.Extraction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, ext := range exts {
		if err := w.Write(exportRow(ext)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalXLSX renders extractions as an XLSX workbook with a single sheet.
func MarshalXLSX(exts []entity.Extraction) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Extractions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, ext := range exts {
		for col, v := range exportRow(ext) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "B", "B", 32) // filename
	_ = f.SetColWidth(sheet, "E", "E", 20) // extraction_date
	_ = f.SetColWidth(sheet, "G", "G", 48) // data_json
	_ = f.SetColWidth(sheet, "H", "I", 20) // timestamps

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(ext entity.Extraction) []string {
	fileSize := ""
	if ext.FileSize != nil {
		fileSize = strconv.FormatInt(*ext.FileSize, 10)
	}
	mimeType := ""
	if ext.MimeType != nil {
		mimeType = *ext.MimeType
	}
	dataJSON := ""
	if ext.DataJSON != nil {
		dataJSON = *ext.DataJSON
	}
	return []string{
		strconv.FormatInt(ext.ID, 10),
		ext.Filename,
		fileSize,
		mimeType,
		ext.ExtractionDate,
		ext.Status,
		dataJSON,
		ext.CreatedAt,
		ext.UpdatedAt,
	}
}
