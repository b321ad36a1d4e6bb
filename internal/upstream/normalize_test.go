package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name string `json:"name"`
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape ListShape
		wantLen   int
		wantErr   bool
	}{
		{
			name:      "bare array",
			body:      `[{"name":"a"},{"name":"b"}]`,
			wantShape: ShapeBareArray,
			wantLen:   2,
		},
		{
			name:      "data array",
			body:      `{"data":[{"name":"a"}]}`,
			wantShape: ShapeDataArray,
			wantLen:   1,
		},
		{
			name:      "data results",
			body:      `{"data":{"results":[{"name":"a"},{"name":"b"},{"name":"c"}]}}`,
			wantShape: ShapeDataResults,
			wantLen:   3,
		},
		{
			name:      "empty bare array",
			body:      `[]`,
			wantShape: ShapeBareArray,
			wantLen:   0,
		},
		{
			name:    "unknown envelope fails loudly",
			body:    `{"items":[{"name":"a"}]}`,
			wantErr: true,
		},
		{
			name:    "scalar fails loudly",
			body:    `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, shape, err := NormalizeList(json.RawMessage(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestDecodeList(t *testing.T) {
	records, err := DecodeList[testRecord](json.RawMessage(`{"data":{"results":[{"name":"x"},{"name":"y"}]}}`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "x", records[0].Name)
	assert.Equal(t, "y", records[1].Name)
}

func TestDecodeListBadElement(t *testing.T) {
	_, err := DecodeList[testRecord](json.RawMessage(`["not-an-object"]`))
	assert.Error(t, err)
}
