// Package envelope normalizes the wire formats returned by the upstream
// school backend. Endpoints disagree on how they wrap their payload; every
// shape the backend has ever been observed to use is recognized here, and
// nowhere else in the codebase is allowed to sniff response shapes.
package envelope

import (
	"bytes"
	"encoding/json"
)

// Shape tags the recognized envelope conventions.
type Shape int

const (
	// Unrecognized means no known convention matched; the payload is nil and
	// callers must render an empty state, never fail.
	Unrecognized Shape = iota
	// StatusData is {"status":{"returnCode":"00"},"data":{<key>:...}}.
	StatusData
	// NestedData is the double-wrapped {"data":{"data":{<key>:...}}}.
	NestedData
	// SuccessKeyed is {"success":true,<key>:[...]}.
	SuccessKeyed
	// BareArray is a naked JSON array.
	BareArray
	// DataArray is {"data":[...]}.
	DataArray
)

func (s Shape) String() string {
	switch s {
	case StatusData:
		return "status+data"
	case NestedData:
		return "nested data"
	case SuccessKeyed:
		return "success+keyed"
	case BareArray:
		return "bare array"
	case DataArray:
		return "data array"
	}
	return "unrecognized"
}

const okReturnCode = "00"

type head struct {
	Status *struct {
		ReturnCode string `json:"returnCode"`
	} `json:"status"`
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Unwrap extracts the logical payload stored under expectedKey from a raw
// response body of unknown shape. Matching follows a strict precedence; the
// first convention that yields a payload wins. A nil result is not an error,
// it means "no data".
func Unwrap(raw json.RawMessage, expectedKey string) (json.RawMessage, Shape) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, Unrecognized
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		var h head
		// head fields were already proven decodable as part of obj
		_ = json.Unmarshal(raw, &h)

		// 1. {"status":{"returnCode":"00"},"data":{<key>:...}}
		if h.Status != nil && h.Status.ReturnCode == okReturnCode {
			if payload, ok := keyOf(h.Data, expectedKey); ok {
				return payload, StatusData
			}
		}

		// 2. {"data":{"data":{<key>:...}}}
		if inner, ok := keyOf(h.Data, "data"); ok {
			if payload, ok := keyOf(inner, expectedKey); ok {
				return payload, NestedData
			}
		}

		// 3. {"success":true,<key>:[...]}
		if h.Success != nil && *h.Success {
			if payload, ok := obj[expectedKey]; ok && !isNull(payload) {
				return payload, SuccessKeyed
			}
		}

		// 5. {"data":[...]}
		if isArray(h.Data) {
			return bytes.TrimSpace(h.Data), DataArray
		}

		return nil, Unrecognized
	}

	// 4. a naked array
	if isArray(raw) {
		return raw, BareArray
	}

	return nil, Unrecognized
}

// UnwrapInto unwraps raw and decodes the payload into dst. When no shape is
// recognized dst is left untouched so callers keep their fallback value.
func UnwrapInto(raw json.RawMessage, expectedKey string, dst interface{}) (Shape, error) {
	payload, shape := Unwrap(raw, expectedKey)
	if payload == nil {
		return shape, nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return Unrecognized, err
	}
	return shape, nil
}

func keyOf(raw json.RawMessage, key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	payload, ok := obj[key]
	if !ok || isNull(payload) {
		return nil, false
	}
	return payload, true
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
