package dto

import (
	"encoding/json"

	"extraction-api/internal/domain/entity"
)

type CreateExtractionRequest struct {
	Filename string  `json:"filename"`
	FileSize *int64  `json:"file_size"`
	MimeType string  `json:"mime_type"`
	Status   string  `json:"status"`
	DataJSON *string `json:"data_json"`
}

type CreateExtractionResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ExtractionInfo struct {
	ID             int64           `json:"id"`
	Filename       string          `json:"filename"`
	FileSize       *int64          `json:"file_size"`
	MimeType       *string         `json:"mime_type"`
	ExtractionDate string          `json:"extraction_date"`
	Status         string          `json:"status"`
	Data           json.RawMessage `json:"data,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type ListExtractionsResponse struct {
	Extractions []ExtractionInfo `json:"extractions"`
	Pagination  PaginationMeta   `json:"pagination"`
}

type PaginationMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

type ClearExtractionsResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FromEntity converts a stored extraction for API output. The raw data_json
// column is replaced by a "data" field: embedded verbatim when it holds valid
// JSON, otherwise passed through as a JSON string.
func FromEntity(ext entity.Extraction) ExtractionInfo {
	info := ExtractionInfo{
		ID:             ext.ID,
		Filename:       ext.Filename,
		FileSize:       ext.FileSize,
		MimeType:       ext.MimeType,
		ExtractionDate: ext.ExtractionDate,
		Status:         ext.Status,
		CreatedAt:      ext.CreatedAt,
		UpdatedAt:      ext.UpdatedAt,
	}
	if ext.DataJSON != nil {
		raw := []byte(*ext.DataJSON)
		if json.Valid(raw) {
			info.Data = json.RawMessage(raw)
		} else if quoted, err := json.Marshal(*ext.DataJSON); err == nil {
			info.Data = json.RawMessage(quoted)
		}
	}
	return info
}

func FromEntities(exts []entity.Extraction) []ExtractionInfo {
	infos := make([]ExtractionInfo, 0, len(exts))
	for _, ext := range exts {
		infos = append(infos, FromEntity(ext))
	}
	return infos
}
