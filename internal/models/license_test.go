package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLicenseFromRow(t *testing.T) {
	tests := []struct {
		name string
		row  []any
		want LicenseRecord
	}{
		{
			name: "full row",
			row:  []any{"111222333", "proofA", "CLT-00001", "01/06/2024", "01/06/2025", "01/06/2024", "2"},
			want: LicenseRecord{
				HolderID:     "111222333",
				Proof:        "proofA",
				ClientID:     "CLT-00001",
				StartDate:    date(2024, time.June, 1),
				ExpiryDate:   date(2025, time.June, 1),
				CreatedDate:  date(2024, time.June, 1),
				RenewalCount: 2,
			},
		},
		{
			name: "optional columns missing",
			row:  []any{"111222333", "proofA", "CLT-00001", "01/06/2024", "01/06/2025"},
			want: LicenseRecord{
				HolderID:   "111222333",
				Proof:      "proofA",
				ClientID:   "CLT-00001",
				StartDate:  date(2024, time.June, 1),
				ExpiryDate: date(2025, time.June, 1),
			},
		},
		{
			name: "header row yields zero dates",
			row:  []any{"holderId", "proof", "clientId", "startDate", "expiryDate", "createdDate", "renewalCount"},
			want: LicenseRecord{
				HolderID: "holderId",
				Proof:    "proof",
				ClientID: "clientId",
			},
		},
		{
			name: "empty row",
			row:  []any{},
			want: LicenseRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LicenseFromRow(tt.row))
		})
	}
}

func TestLicenseRecord_ToRow(t *testing.T) {
	rec := LicenseRecord{
		HolderID:     "111222333",
		Proof:        "proofB",
		ClientID:     "CLT-00002",
		StartDate:    date(2025, time.January, 1),
		ExpiryDate:   date(2026, time.January, 1),
		CreatedDate:  date(2024, time.January, 2),
		RenewalCount: 1,
	}

	row := rec.ToRow()

	assert.Equal(t, []any{"111222333", "proofB", "CLT-00002", "01/01/2025", "01/01/2026", "02/01/2024", "1"}, row)
}
