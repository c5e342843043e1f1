package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one JSON object returned by the catalog API. Numbers keep their
// textual form so ids and salaries round-trip without float noise.
type Record map[string]any

// DecodeRecord reads a single JSON object.
func DecodeRecord(r io.Reader) (Record, error) {
	var rec Record
	if err := newDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("record: expected JSON object")
	}
	return rec, nil
}

// DecodeRecords reads a JSON array of objects.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var out []Record
	if err := newDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("records: expected JSON array")
	}
	return out, nil
}

func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// ID returns the record identifier as text, or "" when absent.
func (r Record) ID() string {
	return r.Text("id")
}

// Text returns the field formatted for display or form population.
// Null and missing values become "".
func (r Record) Text(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			return ""
		}
		return strings.TrimSpace(buf.String())
	}
}

// Number returns the numeric value of field. ok is false when the value is
// missing, null, not a number or zero.
func (r Record) Number(field string) (value float64, ok bool) {
	switch v := r[field].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil || f == 0 {
			return 0, false
		}
		return f, true
	case float64:
		return v, v != 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || f == 0 {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// FormValue returns the value used to populate a form input. Absent optional
// values and zero numbers become "".
func (r Record) FormValue(f Field) string {
	if f.Numeric() {
		v, ok := r.Number(f.Name)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return r.Text(f.Name)
}
