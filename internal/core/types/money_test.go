package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "dollar prefix", in: "$12.50", want: "12.50"},
		{name: "prefix with space", in: "$ 7.25", want: "7.25"},
		{name: "no prefix", in: "3.10", want: "3.10"},
		{name: "integer", in: "$5", want: "5.00"},
		{name: "negative", in: "-2.50", want: "-2.50"},
		{name: "empty", in: "", wantErr: true},
		{name: "symbol only", in: "$", wantErr: true},
		{name: "garbage", in: "$12.5x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseAmountOrZero_MalformedDegradesToZero(t *testing.T) {
	assert.True(t, ParseAmountOrZero("not a number").IsZero())
	assert.True(t, ParseAmountOrZero("").IsZero())
	assert.Equal(t, "12.50", ParseAmountOrZero("$12.50").StringFixed(2))
}

func TestQuantityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Quantity
	}{
		{name: "number", in: `5`, want: 5},
		{name: "null normalizes to zero", in: `null`, want: 0},
		{name: "numeric string", in: `"7"`, want: 7},
		{name: "empty string", in: `""`, want: 0},
		{name: "decimal count truncates", in: `5.0`, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.in), &q))
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQuantityUnmarshalJSON_AbsentField(t *testing.T) {
	var rec struct {
		Quantity Quantity `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rec))
	assert.Equal(t, Quantity(0), rec.Quantity)
}

func TestParseQuantityOrZero(t *testing.T) {
	assert.Equal(t, Quantity(4), ParseQuantityOrZero("4"))
	assert.Equal(t, Quantity(0), ParseQuantityOrZero("abc"))
	assert.Equal(t, Quantity(0), ParseQuantityOrZero("-3"))
	assert.Equal(t, Quantity(0), ParseQuantityOrZero(""))
}
