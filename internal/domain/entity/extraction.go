package entity

// Status values produced by the extraction pipeline. The column itself is a
// free-form string, so unknown values are preserved as-is.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// TimeLayout is the format timestamps are stored in. It matches SQLite's
// CURRENT_TIMESTAMP output so values stay lexically comparable.
const TimeLayout = "2006-01-02 15:04:05"

type Extraction struct {
	ID             int64   `db:"id" json:"id"`
	Filename       string  `db:"filename" json:"filename"`
	FileSize       *int64  `db:"file_size" json:"file_size"`
	MimeType       *string `db:"mime_type" json:"mime_type"`
	ExtractionDate string  `db:"extraction_date" json:"extraction_date"`
	Status         string  `db:"status" json:"status"`
	DataJSON       *string `db:"data_json" json:"-"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
	UpdatedAt      string  `db:"updated_at" json:"updated_at"`
}

// Metrics is the dashboard summary over the whole table.
type Metrics struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"by_status"`
	Today     int64            `json:"today"`
	ThisWeek  int64            `json:"this_week"`
	TotalSize int64            `json:"total_size_bytes"`
	AvgSize   float64          `json:"avg_size_bytes"`
}
