package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivmon/viveiro-dashboard/internal/domain"
)

func TestSerializeAlert(t *testing.T) {
	alert := domain.DivergenceAlert{
		Code:             "VIV-007",
		Name:             "Açude Velho",
		Occurrence:       "Seca",
		PondTotalPlanned: domain.Num(10),
		PondTotalActual:  domain.Num(12),
		PondTotalDiff:    domain.Num(2),
	}

	msg, err := serializeAlert(alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("VIV-007"), msg.Key)
	assert.Contains(t, string(msg.Value), `"code":"VIV-007"`)
	assert.Contains(t, string(msg.Value), `"pond_total_diff":2`)
	assert.Contains(t, string(msg.Value), `"area_ha_diff":null`)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "occurrence", msg.Headers[0].Key)
	assert.Equal(t, []byte("Seca"), msg.Headers[0].Value)
}

func TestSerializeAlert_RoundTrip(t *testing.T) {
	alert := domain.DivergenceAlert{
		Code:          "VIV-001",
		AreaPlanned:   domain.Num(2.5),
		AreaActual:    domain.Num(3),
		AreaDiff:      domain.Num(0.5),
		DepthPlanned:  domain.Absent,
		DepthActual:   domain.Num(1.2),
		DepthDiff:     domain.Absent,
		PondTotalDiff: domain.Absent,
	}

	msg, err := serializeAlert(alert)
	require.NoError(t, err)

	var decoded domain.DivergenceAlert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, alert, decoded)
}
