package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Number
	}{
		{"empty string", "", Absent},
		{"whitespace only", "   ", Absent},
		{"comma decimal", "12,5", Num(12.5)},
		{"dot decimal", "12.5", Num(12.5)},
		{"thousands dot with comma decimal", "1.234,5", Num(1234.5)},
		{"plain integer", "42", Num(42)},
		{"negative comma decimal", "-3,75", Num(-3.75)},
		{"internal whitespace retry", "1 234.5", Num(1234.5)},
		{"garbage", "abc", Absent},
		{"mixed garbage", "12,5ha", Absent},
		{"two commas fall back to dot replacement", "1,2,3", Absent},
		{"leading and trailing space", " 7,25 ", Num(7.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseNumber(tt.text))
		})
	}
}

func TestParseNumber_Idempotent(t *testing.T) {
	// A value already in canonical dot-decimal form passes through unchanged.
	first := ParseNumber("1234.5")
	require.True(t, first.Valid)

	second := ParseNumber("1234.5")
	assert.Equal(t, first, second)
	assert.Equal(t, 1234.5, second.Value)
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Number
	}{
		{"negative comma decimal", "-5,01", Num(-5.01)},
		{"dot decimal", "-39.52", Num(-39.52)},
		{"empty", "", Absent},
		{"garbage", "abc", Absent},
		{"thousands-style input rejected", "1.234,5", Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCoordinate(tt.text))
		})
	}
}

func TestNumber_JSON(t *testing.T) {
	t.Run("absent marshals to null", func(t *testing.T) {
		data, err := json.Marshal(Absent)
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("present marshals to number", func(t *testing.T) {
		data, err := json.Marshal(Num(12.5))
		require.NoError(t, err)
		assert.Equal(t, "12.5", string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		var n Number
		require.NoError(t, json.Unmarshal([]byte("null"), &n))
		assert.Equal(t, Absent, n)

		require.NoError(t, json.Unmarshal([]byte("-2.25"), &n))
		assert.Equal(t, Num(-2.25), n)
	})
}

func TestNumber_OrZero(t *testing.T) {
	assert.Equal(t, 0.0, Absent.OrZero())
	assert.Equal(t, 8.5, Num(8.5).OrZero())
}
