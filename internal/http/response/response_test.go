package response

import (
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/license-gateway/internal/models"
)

func TestPong(t *testing.T) {
	resp := Pong()

	assert.Equal(t, ResponsePong, resp.Type)
	assert.Nil(t, resp.Data)
}

func TestMessage(t *testing.T) {
	resp := Message("bonjour")

	assert.Equal(t, ResponseChannelMessage, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "bonjour", resp.Data.Content)
}

func TestValidationSuccess(t *testing.T) {
	rec := models.LicenseRecord{
		HolderID:   "111222333",
		ClientID:   "CLT-00007",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	resp := ValidationSuccess(rec)

	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Content, "<@111222333>")
	assert.Contains(t, resp.Data.Content, "CLT-00007")
	assert.Contains(t, resp.Data.Content, "01/06/2025")
	assert.Contains(t, resp.Data.Content, "01/06/2026")
}

func TestRenewalSuccess(t *testing.T) {
	rec := models.LicenseRecord{
		ClientID:     "CLT-00007",
		ExpiryDate:   time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		RenewalCount: 2,
	}

	resp := RenewalSuccess(rec)

	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Content, "CLT-00007")
	assert.Contains(t, resp.Data.Content, "01/06/2027")
	assert.Contains(t, resp.Data.Content, "2")
}

func TestUnknownClient(t *testing.T) {
	resp := UnknownClient("CLT-99999")

	require.NotNil(t, resp.Data)
	assert.Contains(t, resp.Data.Content, "CLT-99999")
	assert.Contains(t, resp.Data.Content, "introuvable")
}

func TestValidationError(t *testing.T) {
	type options struct {
		Proof string `validate:"required"`
	}

	v := validator.New()
	err := v.Struct(options{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	require.NotNil(t, resp.Data)
	assert.Equal(t, ResponseChannelMessage, resp.Type)
	assert.Contains(t, resp.Data.Content, "l'option proof est obligatoire")
}
