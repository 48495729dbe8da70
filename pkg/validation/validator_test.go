package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-crm/internal/dto"
)

func TestValidate_CreateInstallation(t *testing.T) {
	v := New()

	payload := dto.CreateInstallationDTO{
		Name:     "СЕС Гатне 10 кВт",
		Priority: "high",
		ClientID: 1,
	}
	assert.NoError(t, v.Validate(&payload))

	payload.Priority = "urgent"
	assert.Error(t, v.Validate(&payload), "приоритет вне словаря отклоняется")
}

// Идентификаторы в формах - BIGINT: значение за пределами int32 должно
// проходить JSON-декодирование и валидацию без искажений.
func TestValidate_NullInt64IDsSurviveLargeValues(t *testing.T) {
	v := New()

	var payload dto.CreateInstallationDTO
	raw := `{"name":"СЕС Агросвіт 150 кВт","priority":"medium","client_id":2,"responsible_id":5000000000}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	require.True(t, payload.ResponsibleID.Valid)
	assert.Equal(t, int64(5000000000), payload.ResponsibleID.Int64)
	assert.NoError(t, v.Validate(&payload))
}

// Невалидный (не присланный) null.Int64 не ломает правила omitempty.
func TestValidate_NullInt64AbsentIsOmitted(t *testing.T) {
	v := New()

	var payload dto.UpdateInstallationDTO
	require.NoError(t, json.Unmarshal([]byte(`{"total_cost":120000.50}`), &payload))

	assert.False(t, payload.ResponsibleID.Valid)
	assert.NoError(t, v.Validate(&payload))
}
