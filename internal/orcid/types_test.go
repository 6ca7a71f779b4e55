package orcid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"string", `{"value":"2022"}`, "2022"},
		{"number", `{"value":2022}`, "2022"},
		{"float", `{"value":12.5}`, "12.5"},
		{"boolean", `{"value":true}`, "true"},
		{"null value", `{"value":null}`, ""},
		{"missing value", `{}`, ""},
		{"object value", `{"value":{"year":2022}}`, ""},
		{"array value", `{"value":["2022"]}`, ""},
		{"bare string", `"Nature"`, "Nature"},
		{"bare number", `2022`, "2022"},
		{"escaped string", `{"value":"A \"quoted\" title"}`, `A "quoted" title`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.want, v.Value)
		})
	}
}

func TestWorkSummary_NullValueKeepsPointerNil(t *testing.T) {
	var ws WorkSummary
	require.NoError(t, json.Unmarshal([]byte(`{"journal-title":null,"url":{"value":7}}`), &ws))

	assert.Nil(t, ws.JournalTitle)
	require.NotNil(t, ws.URL)
	assert.Equal(t, "7", ws.URL.Value)
}
