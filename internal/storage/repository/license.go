// Package repository реализует доступ к записям лицензий поверх
// табличного хранилища с адресацией диапазонами.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/license-gateway/internal/models"
)

// Диапазоны листа FormResponses: полные записи и колонка идентификаторов.
const (
	sheetName     = "FormResponses"
	recordsRange  = sheetName + "!A:G"
	clientIDRange = sheetName + "!C:C"
)

// ErrClientNotFound возвращается при поиске по несуществующему ID клиента.
var ErrClientNotFound = errors.New("client not found")

// RowStore описывает операции табличного хранилища. Append возвращает
// номер первой добавленной строки листа.
type RowStore interface {
	Get(ctx context.Context, readRange string) ([][]any, error)
	Append(ctx context.Context, writeRange string, rows [][]any) (int, error)
	Update(ctx context.Context, writeRange string, rows [][]any) error
}

// LicenseRepository отображает строки листа в LicenseRecord и обратно.
// Позиция строки стабильна после создания: продление перезаписывает
// ту же строку, записи никогда не удаляются.
type LicenseRepository struct {
	store RowStore
}

// New создает репозиторий поверх хранилища.
func New(store RowStore) *LicenseRepository {
	return &LicenseRepository{store: store}
}

// ListAll возвращает все записи листа в порядке строк.
func (r *LicenseRepository) ListAll(ctx context.Context) ([]models.LicenseRecord, error) {
	const op = "repository.ListAll"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := r.store.Get(ctx, recordsRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records := make([]models.LicenseRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.LicenseFromRow(row))
	}
	return records, nil
}

// ListClientIDs возвращает содержимое колонки идентификаторов.
func (r *LicenseRepository) ListClientIDs(ctx context.Context) ([]string, error) {
	const op = "repository.ListClientIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := r.store.Get(ctx, clientIDRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if s, ok := row[0].(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// FindByClientID ищет запись по точному совпадению идентификатора
// и возвращает ее вместе с номером строки листа (нумерация с единицы).
func (r *LicenseRepository) FindByClientID(ctx context.Context, clientID string) (*models.LicenseRecord, int, error) {
	const op = "repository.FindByClientID"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := r.store.Get(ctx, recordsRange)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	for i, row := range rows {
		rec := models.LicenseFromRow(row)
		if rec.ClientID == clientID {
			return &rec, i + 1, nil
		}
	}
	return nil, 0, fmt.Errorf("%s: %w", op, ErrClientNotFound)
}

// GetRow возвращает запись по номеру строки листа (нумерация с единицы).
// Пустая строка считается отсутствующей записью.
func (r *LicenseRepository) GetRow(ctx context.Context, rowIndex int) (*models.LicenseRecord, error) {
	const op = "repository.GetRow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	readRange := fmt.Sprintf("%s!A%d:G%d", sheetName, rowIndex, rowIndex)
	rows, err := r.store.Get(ctx, readRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrClientNotFound)
	}
	rec := models.LicenseFromRow(rows[0])
	return &rec, nil
}

// Append добавляет новую запись в конец листа и возвращает номер
// занятой строки.
func (r *LicenseRepository) Append(ctx context.Context, rec models.LicenseRecord) (int, error) {
	const op = "repository.Append"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rowIndex, err := r.store.Append(ctx, recordsRange, [][]any{rec.ToRow()})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowIndex, nil
}

// UpdateRow перезаписывает строку листа по ее номеру.
func (r *LicenseRepository) UpdateRow(ctx context.Context, rowIndex int, rec models.LicenseRecord) error {
	const op = "repository.UpdateRow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	writeRange := fmt.Sprintf("%s!A%d:G%d", sheetName, rowIndex, rowIndex)
	if err := r.store.Update(ctx, writeRange, [][]any{rec.ToRow()}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
