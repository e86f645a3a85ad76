package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"extraction-api/internal/domain/entity"
	"extraction-api/internal/domain/repository"
)

type extractionRepository struct {
	db *sqlx.DB
}

func NewExtractionRepository(db *sqlx.DB) repository.ExtractionRepository {
	return &extractionRepository{db: db}
}

// create extraction
func (r *extractionRepository) Create(ctx context.Context, ext *entity.Extraction) error {
	if strings.TrimSpace(ext.Filename) == "" {
		return entity.NewValidationError("filename", "filename is required")
	}
	if ext.Status == "" {
		ext.Status = entity.StatusSuccess
	}

	now := time.Now().UTC().Format(entity.TimeLayout)
	ext.ExtractionDate = now
	ext.CreatedAt = now
	ext.UpdatedAt = now

	query := `
		INSERT INTO extractions (filename, file_size, mime_type, extraction_date, status, data_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		ext.Filename, ext.FileSize, ext.MimeType, ext.ExtractionDate, ext.Status, ext.DataJSON, ext.CreatedAt, ext.UpdatedAt)
	if err != nil {
		return &entity.StorageError{Op: "create", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &entity.StorageError{Op: "create", Err: err}
	}
	ext.ID = id
	return nil
}

// find extraction by id
func (r *extractionRepository) Get(ctx context.Context, id int64) (*entity.Extraction, error) {
	var ext entity.Extraction
	query := `SELECT * FROM extractions WHERE id = ?`
	err := r.db.GetContext(ctx, &ext, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, &entity.StorageError{Op: "get", Err: err}
	}
	return &ext, nil
}

// delete extraction; second delete of the same id reports not found
func (r *extractionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM extractions WHERE id = ?`, id)
	if err != nil {
		return &entity.StorageError{Op: "delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &entity.StorageError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// delete all extractions. The AUTOINCREMENT sequence is left alone, so ids
// keep advancing after a clear.
func (r *extractionRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM extractions`)
	if err != nil {
		return 0, &entity.StorageError{Op: "delete_all", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &entity.StorageError{Op: "delete_all", Err: err}
	}
	return affected, nil
}

// list extractions with filters and pagination
func (r *extractionRepository) List(ctx context.Context, f repository.Filter, p repository.Page) ([]entity.Extraction, int64, error) {
	where, args := whereClause(f, time.Now().UTC())

	var total int64
	countQuery := `SELECT COUNT(*) FROM extractions ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, &entity.StorageError{Op: "count", Err: err}
	}

	exts := []entity.Extraction{}
	query := `SELECT * FROM extractions ` + where + ` ORDER BY extraction_date DESC, id DESC LIMIT ? OFFSET ?`
	err := r.db.SelectContext(ctx, &exts, query, append(args, p.PerPage, p.Offset())...)
	if err != nil {
		return nil, 0, &entity.StorageError{Op: "list", Err: err}
	}

	return exts, total, nil
}

// list every extraction matching the filter, for exports
func (r *extractionRepository) ListAll(ctx context.Context, f repository.Filter) ([]entity.Extraction, error) {
	where, args := whereClause(f, time.Now().UTC())

	exts := []entity.Extraction{}
	query := `SELECT * FROM extractions ` + where + ` ORDER BY extraction_date DESC, id DESC`
	if err := r.db.SelectContext(ctx, &exts, query, args...); err != nil {
		return nil, &entity.StorageError{Op: "list_all", Err: err}
	}
	return exts, nil
}

// metrics over the full table
func (r *extractionRepository) Metrics(ctx context.Context) (*entity.Metrics, error) {
	m := &entity.Metrics{ByStatus: map[string]int64{}}
	now := time.Now().UTC()

	if err := r.db.GetContext(ctx, &m.Total, `SELECT COUNT(*) FROM extractions`); err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM extractions GROUP BY status`)
	if err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, &entity.StorageError{Op: "metrics", Err: err}
		}
		m.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}

	sizeQuery := `SELECT COALESCE(SUM(file_size), 0), COALESCE(AVG(file_size), 0) FROM extractions WHERE file_size IS NOT NULL`
	if err := r.db.QueryRowContext(ctx, sizeQuery).Scan(&m.TotalSize, &m.AvgSize); err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}

	todayQuery := `SELECT COUNT(*) FROM extractions WHERE DATE(extraction_date) = ?`
	if err := r.db.GetContext(ctx, &m.Today, todayQuery, now.Format("2006-01-02")); err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}

	weekQuery := `SELECT COUNT(*) FROM extractions WHERE extraction_date >= ?`
	if err := r.db.GetContext(ctx, &m.ThisWeek, weekQuery, now.AddDate(0, 0, -7).Format(entity.TimeLayout)); err != nil {
		return nil, &entity.StorageError{Op: "metrics", Err: err}
	}

	return m, nil
}

// whereClause builds the conjunctive filter. Unknown DateRange values are
// ignored rather than rejected.
func whereClause(f repository.Filter, now time.Time) (string, []any) {
	where := "WHERE 1=1"
	args := []any{}

	if f.Search != "" {
		where += ` AND LOWER(filename) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(f.Search))+"%")
	}

	switch f.DateRange {
	case repository.RangeToday:
		where += ` AND DATE(extraction_date) = ?`
		args = append(args, now.Format("2006-01-02"))
	case repository.RangeWeek:
		where += ` AND extraction_date >= ?`
		args = append(args, now.AddDate(0, 0, -7).Format(entity.TimeLayout))
	case repository.RangeMonth:
		// rolling 30 days, not a calendar month
		where += ` AND extraction_date >= ?`
		args = append(args, now.AddDate(0, 0, -30).Format(entity.TimeLayout))
	}

	return where, args
}

// escapeLike neutralizes LIKE wildcards so a search term only ever matches
// as a literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
