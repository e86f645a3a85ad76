package extraction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"extraction-api/internal/domain/entity"
	"extraction-api/internal/domain/repository"
)

type MockExtractionRepository struct {
	mock.Mock
}

func (m *MockExtractionRepository) Create(ctx context.Context, ext *entity.Extraction) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}

func (m *MockExtractionRepository) Get(ctx context.Context, id int64) (*entity.Extraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Extraction), args.Error(1)
}

func (m *MockExtractionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExtractionRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExtractionRepository) List(ctx context.Context, f repository.Filter, p repository.Page) ([]entity.Extraction, int64, error) {
	args := m.Called(ctx, f, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Extraction), args.Get(1).(int64), args.Error(2)
}

func (m *MockExtractionRepository) ListAll(ctx context.Context, f repository.Filter) ([]entity.Extraction, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Extraction), args.Error(1)
}

func (m *MockExtractionRepository) Metrics(ctx context.Context) (*entity.Metrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Metrics), args.Error(1)
}

func newTestUsecase(repo repository.ExtractionRepository) *ExtractionUsecase {
	return NewExtractionUsecase(repo, nil, 10, 100)
}

func TestListExtractions_NormalizesPagination(t *testing.T) {
	tests := []struct {
		name          string
		page, perPage int
		want          repository.Page
	}{
		{"defaults", 0, 0, repository.Page{Number: 1, PerPage: 10}},
		{"negative page", -3, 5, repository.Page{Number: 1, PerPage: 5}},
		{"per_page capped", 1, 1000, repository.Page{Number: 1, PerPage: 100}},
		{"passthrough", 3, 25, repository.Page{Number: 3, PerPage: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockExtractionRepository)
			repo.On("List", mock.Anything, repository.Filter{}, tt.want).
				Return([]entity.Extraction{}, int64(0), nil).Once()

			uc := newTestUsecase(repo)
			_, _, p, err := uc.ListExtractions(context.Background(), repository.Filter{}, tt.page, tt.perPage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
			repo.AssertExpectations(t)
		})
	}
}

func TestIngestFile_PlainText(t *testing.T) {
	repo := new(MockExtractionRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Extraction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Extraction).ID = 7
		}).
		Return(nil).Once()

	uc := newTestUsecase(repo)
	ext, err := uc.IngestFile(context.Background(), "notes.txt", "text/plain", []byte("hello brave new world"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), ext.ID)
	assert.Equal(t, entity.StatusSuccess, ext.Status)
	assert.Equal(t, "text/plain", *ext.MimeType)
	assert.Equal(t, int64(21), *ext.FileSize)

	var payload extractionPayload
	require.NoError(t, json.Unmarshal([]byte(*ext.DataJSON), &payload))
	assert.Equal(t, "hello brave new world", payload.Text)
	assert.Equal(t, 21, payload.CharCount)
	assert.Equal(t, 4, payload.WordCount)
	repo.AssertExpectations(t)
}

func TestIngestFile_UnsupportedType(t *testing.T) {
	repo := new(MockExtractionRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Extraction")).Return(nil).Once()

	uc := newTestUsecase(repo)
	ext, err := uc.IngestFile(context.Background(), "archive.zip", "application/zip", []byte{0x50, 0x4b})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusFailed, ext.Status)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(*ext.DataJSON), &payload))
	assert.Contains(t, payload["error"], "unsupported file type")
	repo.AssertExpectations(t)
}

func TestIngestFile_MissingFilename(t *testing.T) {
	repo := new(MockExtractionRepository)

	uc := newTestUsecase(repo)
	_, err := uc.IngestFile(context.Background(), "  ", "text/plain", []byte("x"))

	var ve *entity.ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "Create")
}

func TestExportCSV_Empty(t *testing.T) {
	repo := new(MockExtractionRepository)
	repo.On("ListAll", mock.Anything, repository.Filter{}).Return([]entity.Extraction{}, nil).Once()

	uc := newTestUsecase(repo)
	out, err := uc.ExportCSV(context.Background(), repository.Filter{})
	require.NoError(t, err)

	assert.Equal(t, "id,filename,file_size,mime_type,extraction_date,status,data_json,created_at,updated_at\n", string(out))
	repo.AssertExpectations(t)
}
