// Package models содержит доменные структуры лицензий и преобразование
// записей в строки таблицы и обратно.
package models

import (
	"strconv"
	"time"
)

// DateLayout формат, в котором даты хранятся в таблице.
const DateLayout = "02/01/2006"

// LicenseRecord описывает одну строку листа FormResponses — лицензию
// клиента на год. ClientID неизменен после создания; продление меняет
// Proof, StartDate, ExpiryDate и RenewalCount в той же строке.
type LicenseRecord struct {
	HolderID     string    // Discord ID владельца лицензии
	Proof        string    // ссылка или ID подтверждения оплаты
	ClientID     string    // уникальный идентификатор клиента
	StartDate    time.Time // начало текущего периода
	ExpiryDate   time.Time // конец текущего периода
	CreatedDate  time.Time // дата первичного создания, не меняется
	RenewalCount int       // количество продлений
}

// ToRow сериализует запись в строку листа, колонки A..G.
func (r LicenseRecord) ToRow() []any {
	return []any{
		r.HolderID,
		r.Proof,
		r.ClientID,
		r.StartDate.Format(DateLayout),
		r.ExpiryDate.Format(DateLayout),
		r.CreatedDate.Format(DateLayout),
		strconv.Itoa(r.RenewalCount),
	}
}

// LicenseFromRow разбирает строку листа. Разбор терпим к мусору:
// нечитаемые даты остаются нулевыми, отсутствующие необязательные
// колонки (createdDate, renewalCount) получают нулевые значения.
// Строки-заголовки и битые записи отфильтровывает вызывающий.
func LicenseFromRow(row []any) LicenseRecord {
	rec := LicenseRecord{
		HolderID: cell(row, 0),
		Proof:    cell(row, 1),
		ClientID: cell(row, 2),
	}
	rec.StartDate = parseDate(cell(row, 3))
	rec.ExpiryDate = parseDate(cell(row, 4))
	rec.CreatedDate = parseDate(cell(row, 5))
	if n, err := strconv.Atoi(cell(row, 6)); err == nil && n >= 0 {
		rec.RenewalCount = n
	}
	return rec
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
