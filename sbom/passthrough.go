package sbom

import (
	"bytes"
	"encoding/json"
)

// fields keeps the JSON attributes a type does not model itself, so they
// survive a decode/encode round trip unchanged.
type fields map[string]json.RawMessage

func splitFields(blob []byte) (fields, error) {
	if bytes.Equal(bytes.TrimSpace(blob), []byte("null")) {
		return fields{}, nil
	}
	result := make(fields)
	if err := json.Unmarshal(blob, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// take decodes the named attribute into target and moves its raw text into
// received. Attributes that do not fit target stay behind as passthrough.
func (it fields) take(name string, target interface{}, received fields) bool {
	raw, ok := it[name]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false
	}
	received[name] = raw
	delete(it, name)
	return true
}

// put adds a modeled attribute to known. A set value is written as is; an
// unset one goes out as received when it arrived as null or "".
func (it fields) put(known map[string]interface{}, name string, value interface{}, set bool) {
	if set {
		known[name] = value
		return
	}
	raw, ok := it[name]
	if !ok {
		return
	}
	switch string(bytes.TrimSpace(raw)) {
	case "null", `""`:
		known[name] = raw
	}
}

func (it fields) has(name string) bool {
	_, ok := it[name]
	return ok
}

func (it fields) clone() fields {
	if len(it) == 0 {
		return nil
	}
	result := make(fields, len(it))
	for key, value := range it {
		result[key] = value
	}
	return result
}

func (it fields) encode(known map[string]interface{}) ([]byte, error) {
	merged := make(map[string]interface{}, len(it)+len(known))
	for key, value := range it {
		merged[key] = value
	}
	for key, value := range known {
		merged[key] = value
	}
	return json.Marshal(merged)
}
