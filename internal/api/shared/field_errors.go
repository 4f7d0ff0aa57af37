package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldErrorMap is a field→messages map that serializes its keys in
// insertion order, so clients render violations in the order validation
// recorded them rather than alphabetically.
type FieldErrorMap struct {
	order  []string
	fields map[string][]string
}

// NewFieldErrorMap builds a FieldErrorMap from an ordered field list and
// the corresponding messages. Fields absent from the map are skipped.
func NewFieldErrorMap(order []string, fields map[string][]string) *FieldErrorMap {
	m := &FieldErrorMap{fields: make(map[string][]string, len(fields))}
	for _, field := range order {
		messages, ok := fields[field]
		if !ok {
			continue
		}
		m.order = append(m.order, field)
		m.fields[field] = messages
	}
	return m
}

// Get returns the messages recorded for the field, or nil.
func (m *FieldErrorMap) Get(field string) []string {
	if m == nil {
		return nil
	}
	return m.fields[field]
}

// FieldNames returns the field names in insertion order.
func (m *FieldErrorMap) FieldNames() []string {
	if m == nil {
		return nil
	}
	return m.order
}

// Len returns the number of fields carrying violations.
func (m *FieldErrorMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// MarshalJSON emits the fields as a JSON object in insertion order.
func (m *FieldErrorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		messages, err := json.Marshal(m.fields[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(messages)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving its key order.
func (m *FieldErrorMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for field errors, got %v", tok)
	}

	m.order = nil
	m.fields = make(map[string][]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key in field errors, got %v", tok)
		}

		var messages []string
		if err := dec.Decode(&messages); err != nil {
			return err
		}

		m.order = append(m.order, field)
		m.fields[field] = messages
	}

	_, err = dec.Token() // closing brace
	return err
}
