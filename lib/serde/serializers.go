package serde

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var _ Serializer = IdentitySerializer{}
var _ Serializer = JSONSerializer{}
var _ Serializer = CSVSerializer{}
var _ Serializer = LibSVMSerializer{}

// IdentitySerializer sends bytes, strings and readers unchanged.
type IdentitySerializer struct {
	// Type overrides the default application/octet-stream content type.
	Type string
}

func (s IdentitySerializer) ContentType() string {
	if s.Type == "" {
		return ContentTypeOctetStream
	}
	return s.Type
}

func (s IdentitySerializer) Serialize(data any) ([]byte, error) {
	switch d := data.(type) {
	case []byte:
		return d, nil
	case string:
		return []byte(d), nil
	case io.Reader:
		return io.ReadAll(d)
	default:
		return nil, fmt.Errorf("identity serializer expects bytes, string or reader but found: %T", data)
	}
}

type JSONSerializer struct{}

func (JSONSerializer) ContentType() string {
	return ContentTypeJSON
}

func (JSONSerializer) Serialize(data any) ([]byte, error) {
	if r, ok := data.(io.Reader); ok {
		return io.ReadAll(r)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json payload: %v", err)
	}
	return raw, nil
}

// CSVSerializer writes one row for a flat slice and one line per row for a
// slice of slices. Strings are sent as is.
type CSVSerializer struct{}

func (CSVSerializer) ContentType() string {
	return ContentTypeCSV
}

func (CSVSerializer) Serialize(data any) ([]byte, error) {
	var rows [][]string
	switch d := data.(type) {
	case string:
		return []byte(d), nil
	case []byte:
		return d, nil
	case io.Reader:
		return io.ReadAll(d)
	case []float64:
		rows = [][]string{formatFloats(d)}
	case [][]float64:
		for _, r := range d {
			rows = append(rows, formatFloats(r))
		}
	case []string:
		rows = [][]string{d}
	case [][]string:
		rows = d
	case []any:
		if len(d) > 0 {
			if _, nested := d[0].([]any); nested {
				return CSVSerializer{}.Serialize(nestedRows(d))
			}
		}
		row, err := formatValues(d)
		if err != nil {
			return nil, err
		}
		rows = [][]string{row}
	case [][]any:
		for _, r := range d {
			row, err := formatValues(r)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	default:
		return nil, fmt.Errorf("csv serializer cannot encode: %T", data)
	}
	buf := bytes.Buffer{}
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %v", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// LibSVMSerializer writes sparse rows as "index:value" pairs, one row per
// line. Rows may be pre-rendered strings or index to value maps.
type LibSVMSerializer struct{}

func (LibSVMSerializer) ContentType() string {
	return ContentTypeLibSVM
}

func (LibSVMSerializer) Serialize(data any) ([]byte, error) {
	payload := bytes.Buffer{}
	switch d := data.(type) {
	case []string:
		for _, row := range d {
			payload.WriteString(row)
			payload.WriteRune('\n')
		}
	case []map[int]float64:
		for _, row := range d {
			payload.WriteString(formatSparse(row))
			payload.WriteRune('\n')
		}
	default:
		return nil, fmt.Errorf("libsvm serializer cannot encode: %T", data)
	}
	return payload.Bytes(), nil
}

// nestedRows turns decoded JSON arrays of arrays into rows. An element that
// is not an array becomes a single-value row.
func nestedRows(d []any) [][]any {
	rows := make([][]any, len(d))
	for i, r := range d {
		if row, ok := r.([]any); ok {
			rows[i] = row
		} else {
			rows[i] = []any{r}
		}
	}
	return rows
}

func formatFloats(row []float64) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

func formatValues(row []any) ([]string, error) {
	out := make([]string, len(row))
	for i, v := range row {
		switch t := v.(type) {
		case string:
			out[i] = t
		case float64:
			out[i] = strconv.FormatFloat(t, 'g', -1, 64)
		case float32:
			out[i] = strconv.FormatFloat(float64(t), 'g', -1, 32)
		case int:
			out[i] = strconv.Itoa(t)
		case int64:
			out[i] = strconv.FormatInt(t, 10)
		case bool:
			out[i] = strconv.FormatBool(t)
		default:
			return nil, fmt.Errorf("csv serializer cannot encode value: %T", v)
		}
	}
	return out, nil
}

func formatSparse(row map[int]float64) string {
	idx := make([]int, 0, len(row))
	for i := range row {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	parts := make([]string, len(idx))
	for j, i := range idx {
		parts[j] = fmt.Sprintf("%d:%s", i, strconv.FormatFloat(row[i], 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}
