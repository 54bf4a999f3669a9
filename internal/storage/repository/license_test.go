package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/license-gateway/internal/models"
)

type RowStoreMock struct{ mock.Mock }

func (m *RowStoreMock) Get(ctx context.Context, readRange string) ([][]any, error) {
	args := m.Called(ctx, readRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]any), args.Error(1)
}

func (m *RowStoreMock) Append(ctx context.Context, writeRange string, rows [][]any) (int, error) {
	args := m.Called(ctx, writeRange, rows)
	return args.Int(0), args.Error(1)
}

func (m *RowStoreMock) Update(ctx context.Context, writeRange string, rows [][]any) error {
	return m.Called(ctx, writeRange, rows).Error(0)
}

func TestFindByClientID(t *testing.T) {
	rows := [][]any{
		{"111", "proofA", "CLT-00001", "01/06/2024", "01/06/2025", "01/06/2024", "0"},
		{"222", "proofB", "CLT-00002", "02/06/2024", "02/06/2025", "02/06/2024", "1"},
	}

	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!A:G").Return(rows, nil)

	repo := New(store)

	rec, rowIndex, err := repo.FindByClientID(context.Background(), "CLT-00002")
	require.NoError(t, err)

	assert.Equal(t, 2, rowIndex)
	assert.Equal(t, "222", rec.HolderID)
	assert.Equal(t, "CLT-00002", rec.ClientID)
	assert.Equal(t, 1, rec.RenewalCount)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), rec.ExpiryDate)
}

func TestFindByClientID_NotFound(t *testing.T) {
	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!A:G").Return([][]any{
		{"111", "proofA", "CLT-00001", "01/06/2024", "01/06/2025"},
	}, nil)

	repo := New(store)

	_, _, err := repo.FindByClientID(context.Background(), "CLT-99999")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestListClientIDs(t *testing.T) {
	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!C:C").Return([][]any{
		{"clientId"},
		{"CLT-00001"},
		{},
		{"CLT-00002"},
	}, nil)

	repo := New(store)

	ids, err := repo.ListClientIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"clientId", "CLT-00001", "CLT-00002"}, ids)
}

func TestListAll_StoreError(t *testing.T) {
	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!A:G").Return(nil, errors.New("quota exceeded"))

	repo := New(store)

	_, err := repo.ListAll(context.Background())
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	rec := models.LicenseRecord{
		HolderID:    "111",
		Proof:       "proofA",
		ClientID:    "CLT-00001",
		StartDate:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		CreatedDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	store := new(RowStoreMock)
	store.On("Append", mock.Anything, "FormResponses!A:G", [][]any{rec.ToRow()}).Return(5, nil).Once()

	repo := New(store)

	rowIndex, err := repo.Append(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 5, rowIndex)
	store.AssertExpectations(t)
}

func TestGetRow(t *testing.T) {
	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!A4:G4").Return([][]any{
		{"111", "proofA", "CLT-00001", "01/06/2024", "01/06/2025", "01/06/2024", "0"},
	}, nil).Once()

	repo := New(store)

	rec, err := repo.GetRow(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "CLT-00001", rec.ClientID)
	assert.Equal(t, "111", rec.HolderID)
	store.AssertExpectations(t)
}

func TestGetRow_EmptyRow(t *testing.T) {
	store := new(RowStoreMock)
	store.On("Get", mock.Anything, "FormResponses!A9:G9").Return([][]any{}, nil).Once()

	repo := New(store)

	_, err := repo.GetRow(context.Background(), 9)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateRow_TargetsExactRow(t *testing.T) {
	rec := models.LicenseRecord{
		HolderID:     "111",
		Proof:        "proofC",
		ClientID:     "CLT-00001",
		StartDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		RenewalCount: 1,
	}

	store := new(RowStoreMock)
	store.On("Update", mock.Anything, "FormResponses!A3:G3", [][]any{rec.ToRow()}).Return(nil).Once()

	repo := New(store)

	require.NoError(t, repo.UpdateRow(context.Background(), 3, rec))
	store.AssertExpectations(t)
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := New(new(RowStoreMock))

	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = repo.FindByClientID(ctx, "CLT-00001")
	assert.ErrorIs(t, err, context.Canceled)
}
