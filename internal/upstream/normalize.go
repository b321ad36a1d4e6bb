package upstream

import (
	"encoding/json"
	"fmt"

	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
)

// The backend wraps list responses in three different envelopes depending on
// which workflow produced them:
//
//	[...]
//	{"data": [...]}
//	{"data": {"results": [...]}}
//
// ListShape records which one was seen; unknown envelopes fail loudly instead
// of silently decoding to an empty list.
type ListShape int

const (
	ShapeBareArray ListShape = iota
	ShapeDataArray
	ShapeDataResults
)

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type resultsEnvelope struct {
	Results json.RawMessage `json:"results"`
}

// NormalizeList extracts the element list from any of the observed envelope
// shapes and reports which shape matched.
func NormalizeList(raw json.RawMessage) ([]json.RawMessage, ListShape, error) {
	if items, ok := tryArray(raw); ok {
		return items, ShapeBareArray, nil
	}

	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		if items, ok := tryArray(env.Data); ok {
			return items, ShapeDataArray, nil
		}
		var inner resultsEnvelope
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.Results != nil {
			if items, ok := tryArray(inner.Results); ok {
				return items, ShapeDataResults, nil
			}
		}
	}

	return nil, 0, apperror.UpstreamMalformed(fmt.Errorf("unrecognized list shape: %s", truncate(raw, 120)))
}

// DecodeList normalizes the envelope and decodes every element into T.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	items, _, err := NormalizeList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, apperror.UpstreamMalformed(fmt.Errorf("decode list element: %w", err))
		}
		out = append(out, v)
	}
	return out, nil
}

func tryArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
