// Package sheets оборачивает Google Sheets API в узкий интерфейс
// построчного хранилища с адресацией диапазонами.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Store выполняет чтение, добавление и обновление диапазонов одного
// документа. Транзакций и блокировок у таблицы нет, согласованность
// обеспечивается выше.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New создает клиента Sheets по JSON-ключу сервисного аккаунта.
func New(ctx context.Context, spreadsheetID, credentialsJSON string) (*Store, error) {
	const op = "storage.sheets.New"
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Get возвращает значения диапазона в порядке строк листа.
func (s *Store) Get(ctx context.Context, readRange string) ([][]any, error) {
	const op = "storage.sheets.Get"
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Values, nil
}

// Append добавляет строки после последней заполненной строки диапазона
// и возвращает номер первой добавленной строки листа.
func (s *Store) Append(ctx context.Context, writeRange string, rows [][]any) (int, error) {
	const op = "storage.sheets.Append"
	resp, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, writeRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("%s: empty append response", op)
	}
	rowIndex, err := rowIndexFromRange(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowIndex, nil
}

// rowIndexFromRange извлекает номер строки из диапазона ответа API
// вида "FormResponses!A12:G12".
func rowIndexFromRange(updatedRange string) (int, error) {
	cell := updatedRange
	if i := strings.LastIndex(cell, "!"); i >= 0 {
		cell = cell[i+1:]
	}
	if j := strings.Index(cell, ":"); j >= 0 {
		cell = cell[:j]
	}
	k := 0
	for k < len(cell) && cell[k] >= 'A' && cell[k] <= 'Z' {
		k++
	}
	rowIndex, err := strconv.Atoi(cell[k:])
	if err != nil {
		return 0, fmt.Errorf("unexpected range %q: %w", updatedRange, err)
	}
	return rowIndex, nil
}

// Update перезаписывает значения диапазона на месте.
func (s *Store) Update(ctx context.Context, writeRange string, rows [][]any) error {
	const op = "storage.sheets.Update"
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, writeRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
