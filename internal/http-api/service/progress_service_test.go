package service

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockProgressRepository mocks the ProgressRepository interface
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetAllProgress(ctx context.Context, userID string, category models.Category) ([]models.ReadingProgress, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingProgress), args.Error(1)
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, userID, itemID string, category models.Category) (*models.ReadingProgress, error) {
	args := m.Called(ctx, userID, itemID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, progress *models.ReadingProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) DeleteProgress(ctx context.Context, userID, itemID string, category models.Category) error {
	args := m.Called(ctx, userID, itemID, category)
	return args.Error(0)
}

func progressServiceAt(repo *MockProgressRepository, now time.Time) *progressService {
	return &progressService{repo: repo, now: func() time.Time { return now }}
}

func TestUpsert_RequiresBookID(t *testing.T) {
	s := NewProgressService(new(MockProgressRepository))

	_, err := s.Upsert(context.Background(), "user-1", "", models.CategorySingle, ProgressPatch{})
	assert.ErrorIs(t, err, ErrItemIDRequired)
}

func TestUpsert_RejectsUnknownCategoryAndStatus(t *testing.T) {
	s := NewProgressService(new(MockProgressRepository))

	_, err := s.Upsert(context.Background(), "user-1", "b1", models.Category("comics"), ProgressPatch{})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = s.Upsert(context.Background(), "user-1", "b1", models.CategorySingle, ProgressPatch{Status: "abandoned"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	bad := 6
	_, err = s.Upsert(context.Background(), "user-1", "b1", models.CategorySingle, ProgressPatch{Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestUpsert_NewRecordDefaultsToUnread(t *testing.T) {
	repo := new(MockProgressRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := progressServiceAt(repo, now)

	repo.On("GetProgress", mock.Anything, "user-1", "b1", models.CategorySingle).
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("UpsertProgress", mock.Anything, mock.AnythingOfType("*models.ReadingProgress")).
		Return(nil)

	row, err := s.Upsert(context.Background(), "user-1", "b1", models.CategorySingle, ProgressPatch{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusUnread, row.Status)
	assert.Nil(t, row.StartedAt)
	assert.Nil(t, row.CompletedAt)
	assert.Equal(t, now, row.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpsert_FirstReadingSetsStartedAt(t *testing.T) {
	repo := new(MockProgressRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := progressServiceAt(repo, now)

	repo.On("GetProgress", mock.Anything, "user-1", "b1", models.CategorySeriesBook).
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("UpsertProgress", mock.Anything, mock.Anything).Return(nil)

	row, err := s.Upsert(context.Background(), "user-1", "b1", models.CategorySeriesBook,
		ProgressPatch{Status: models.StatusReading})
	require.NoError(t, err)

	require.NotNil(t, row.StartedAt)
	assert.Equal(t, now, *row.StartedAt)
}

func TestUpsert_StartedAtIsSticky(t *testing.T) {
	repo := new(MockProgressRepository)
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)
	s := progressServiceAt(repo, t2)

	existing := &models.ReadingProgress{
		UserID: "user-1", ItemID: "b1", Category: models.CategorySeriesBook,
		Status: models.StatusReading, StartedAt: &t1,
	}
	repo.On("GetProgress", mock.Anything, "user-1", "b1", models.CategorySeriesBook).
		Return(existing, nil)
	repo.On("UpsertProgress", mock.Anything, mock.Anything).Return(nil)

	// re-asserting "reading" must not move started_at
	row, err := s.Upsert(context.Background(), "user-1", "b1", models.CategorySeriesBook,
		ProgressPatch{Status: models.StatusReading})
	require.NoError(t, err)
	require.NotNil(t, row.StartedAt)
	assert.Equal(t, t1, *row.StartedAt)

	// neither must a completion
	row, err = s.Upsert(context.Background(), "user-1", "b1", models.CategorySeriesBook,
		ProgressPatch{Status: models.StatusCompleted})
	require.NoError(t, err)
	require.NotNil(t, row.StartedAt)
	assert.Equal(t, t1, *row.StartedAt)
}

func TestUpsert_CompletedAtRefreshesOnEveryCompletion(t *testing.T) {
	repo := new(MockProgressRepository)
	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t3 := t2.Add(24 * time.Hour)
	s := progressServiceAt(repo, t3)

	existing := &models.ReadingProgress{
		UserID: "user-1", ItemID: "b1", Category: models.CategoryNovella,
		Status: models.StatusCompleted, CompletedAt: &t2,
	}
	repo.On("GetProgress", mock.Anything, "user-1", "b1", models.CategoryNovella).
		Return(existing, nil)
	repo.On("UpsertProgress", mock.Anything, mock.Anything).Return(nil)

	row, err := s.Upsert(context.Background(), "user-1", "b1", models.CategoryNovella,
		ProgressPatch{Status: models.StatusCompleted})
	require.NoError(t, err)

	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, t3, *row.CompletedAt, "re-marking completed refreshes the timestamp")
}

func TestUpsert_RegressionKeepsCompletedAt(t *testing.T) {
	repo := new(MockProgressRepository)
	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t3 := t2.Add(24 * time.Hour)
	s := progressServiceAt(repo, t3)

	existing := &models.ReadingProgress{
		UserID: "user-1", ItemID: "b1", Category: models.CategoryAnthology,
		Status: models.StatusCompleted, CompletedAt: &t2,
	}
	repo.On("GetProgress", mock.Anything, "user-1", "b1", models.CategoryAnthology).
		Return(existing, nil)
	repo.On("UpsertProgress", mock.Anything, mock.Anything).Return(nil)

	// completed -> unread is legal; completed_at keeps the last completion
	row, err := s.Upsert(context.Background(), "user-1", "b1", models.CategoryAnthology,
		ProgressPatch{Status: models.StatusUnread})
	require.NoError(t, err)

	assert.Equal(t, models.StatusUnread, row.Status)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, t2, *row.CompletedAt)
}

// fakeProgressStore is an in-memory keyed store to check upsert-by-natural-key.
type fakeProgressStore struct {
	rows map[[3]string]models.ReadingProgress
}

func (f *fakeProgressStore) GetAllProgress(_ context.Context, userID string, category models.Category) ([]models.ReadingProgress, error) {
	var out []models.ReadingProgress
	for key, row := range f.rows {
		if key[0] == userID && key[2] == string(category) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) GetProgress(_ context.Context, userID, itemID string, category models.Category) (*models.ReadingProgress, error) {
	row, ok := f.rows[[3]string{userID, itemID, string(category)}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeProgressStore) UpsertProgress(_ context.Context, progress *models.ReadingProgress) error {
	f.rows[[3]string{progress.UserID, progress.ItemID, string(progress.Category)}] = *progress
	return nil
}

func (f *fakeProgressStore) DeleteProgress(_ context.Context, userID, itemID string, category models.Category) error {
	delete(f.rows, [3]string{userID, itemID, string(category)})
	return nil
}

func TestUpsert_NaturalKeyProducesOneRow(t *testing.T) {
	store := &fakeProgressStore{rows: make(map[[3]string]models.ReadingProgress)}
	s := NewProgressService(store)

	for i := 0; i < 2; i++ {
		_, err := s.Upsert(context.Background(), "user-1", "b1", models.CategorySingle,
			ProgressPatch{Status: models.StatusReading})
		require.NoError(t, err)
	}

	assert.Len(t, store.rows, 1, "two upserts of the same key must leave one row")

	// same book id in a different category is a different row
	_, err := s.Upsert(context.Background(), "user-1", "b1", models.CategoryNovella,
		ProgressPatch{Status: models.StatusReading})
	require.NoError(t, err)
	assert.Len(t, store.rows, 2)
}
