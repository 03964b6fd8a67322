// Package serde converts request data to wire bytes and response bytes back
// into Go values.
package serde

import (
	"fmt"
	"strings"
)

const (
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeJSON        = "application/json"
	ContentTypeCSV         = "text/csv"
	ContentTypeLibSVM      = "text/libsvm"
	ContentTypeAny         = "*/*"
)

type Serializer interface {
	// ContentType is the MIME type of the serialized bytes.
	ContentType() string
	Serialize(data any) ([]byte, error)
}

type Deserializer interface {
	// Accept lists the MIME types this deserializer can decode.
	Accept() []string
	Deserialize(body []byte, contentType string) (any, error)
}

// JoinAccept renders an accept list the way it is sent on the wire.
func JoinAccept(accept []string) string {
	return strings.Join(accept, ", ")
}

// ForFramework returns the serializer and deserializer that fit the default
// inference containers of a framework.
func ForFramework(framework string) (Serializer, Deserializer, error) {
	switch framework {
	case "xgboost":
		return CSVSerializer{}, CSVDeserializer{ParseFloats: true}, nil
	case "sklearn", "pytorch":
		return JSONSerializer{}, JSONDeserializer{}, nil
	case "tensorflow":
		return JSONSerializer{}, JSONFieldDeserializer{Keys: []string{"predictions"}}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported framework: %q", framework)
	}
}
