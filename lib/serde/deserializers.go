package serde

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/buger/jsonparser"
)

var _ Deserializer = BytesDeserializer{}
var _ Deserializer = StringDeserializer{}
var _ Deserializer = StreamDeserializer{}
var _ Deserializer = JSONDeserializer{}
var _ Deserializer = CSVDeserializer{}
var _ Deserializer = JSONFieldDeserializer{}

// BytesDeserializer returns the response body unchanged.
type BytesDeserializer struct{}

func (BytesDeserializer) Accept() []string {
	return []string{ContentTypeAny}
}

func (BytesDeserializer) Deserialize(body []byte, _ string) (any, error) {
	return body, nil
}

type StringDeserializer struct{}

func (StringDeserializer) Accept() []string {
	return []string{ContentTypeJSON}
}

func (StringDeserializer) Deserialize(body []byte, _ string) (any, error) {
	return string(body), nil
}

// Stream is what StreamDeserializer hands back: the body and the content
// type it was declared with.
type Stream struct {
	Body        io.Reader
	ContentType string
}

type StreamDeserializer struct{}

func (StreamDeserializer) Accept() []string {
	return []string{ContentTypeAny}
}

func (StreamDeserializer) Deserialize(body []byte, contentType string) (any, error) {
	return Stream{Body: bytes.NewReader(body), ContentType: contentType}, nil
}

type JSONDeserializer struct{}

func (JSONDeserializer) Accept() []string {
	return []string{ContentTypeJSON}
}

func (JSONDeserializer) Deserialize(body []byte, _ string) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to parse response as JSON: %v", err)
	}
	return v, nil
}

// JSONFieldDeserializer decodes only the value found under Keys.
type JSONFieldDeserializer struct {
	Keys []string
}

func (JSONFieldDeserializer) Accept() []string {
	return []string{ContentTypeJSON}
}

func (d JSONFieldDeserializer) Deserialize(body []byte, _ string) (any, error) {
	raw, _, _, err := jsonparser.Get(body, d.Keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to find key %v in response: %v", d.Keys, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %v as JSON: %v", d.Keys, err)
	}
	return v, nil
}

// CSVDeserializer returns [][]string, or [][]float64 when ParseFloats is set.
type CSVDeserializer struct {
	ParseFloats bool
}

func (CSVDeserializer) Accept() []string {
	return []string{ContentTypeCSV}
}

func (d CSVDeserializer) Deserialize(body []byte, _ string) (any, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %v", err)
	}
	if !d.ParseFloats {
		return rows, nil
	}
	vals := make([][]float64, len(rows))
	for i, row := range rows {
		vals[i] = make([]float64, len(row))
		for j, cell := range row {
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse csv value %q: %v", cell, err)
			}
			vals[i][j] = f
		}
	}
	return vals, nil
}
