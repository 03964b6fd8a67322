package serde

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentitySerializer(t *testing.T) {
	s := IdentitySerializer{}
	assert.Equal(t, ContentTypeOctetStream, s.ContentType())
	assert.Equal(t, "image/png", IdentitySerializer{Type: "image/png"}.ContentType())

	b, err := s.Serialize([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), b)

	b, err = s.Serialize("text")
	require.NoError(t, err)
	assert.Equal(t, []byte("text"), b)

	b, err = s.Serialize(strings.NewReader("from reader"))
	require.NoError(t, err)
	assert.Equal(t, []byte("from reader"), b)

	_, err = s.Serialize(42)
	assert.Error(t, err)
}

func TestJSONSerializer(t *testing.T) {
	s := JSONSerializer{}
	assert.Equal(t, ContentTypeJSON, s.ContentType())

	b, err := s.Serialize(map[string]any{"instances": []int{1, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"instances":[1,2]}`, string(b))

	b, err = s.Serialize(strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))

	_, err = s.Serialize(make(chan int))
	assert.Error(t, err)
}

func TestCSVSerializer(t *testing.T) {
	s := CSVSerializer{}
	assert.Equal(t, ContentTypeCSV, s.ContentType())

	b, err := s.Serialize([]float64{1, 2.5, 3})
	require.NoError(t, err)
	assert.Equal(t, "1,2.5,3", string(b))

	b, err = s.Serialize([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, "1,2\n3,4", string(b))

	b, err = s.Serialize([]any{"a", 1, 0.5, true})
	require.NoError(t, err)
	assert.Equal(t, "a,1,0.5,true", string(b))

	b, err = s.Serialize([]any{[]any{1.0, 2.0}, []any{3.0, 4.5}})
	require.NoError(t, err)
	assert.Equal(t, "1,2\n3,4.5", string(b))

	_, err = s.Serialize([]any{[]any{1.0}, []any{map[string]any{}}})
	assert.Error(t, err)

	b, err = s.Serialize("already,csv")
	require.NoError(t, err)
	assert.Equal(t, "already,csv", string(b))

	_, err = s.Serialize(map[string]int{})
	assert.Error(t, err)
}

func TestLibSVMSerializer(t *testing.T) {
	s := LibSVMSerializer{}
	assert.Equal(t, ContentTypeLibSVM, s.ContentType())

	b, err := s.Serialize([]map[int]float64{{9: 1, 1: 0.5}, {3: 2}})
	require.NoError(t, err)
	assert.Equal(t, "1:0.5 9:1\n3:2\n", string(b))

	b, err = s.Serialize([]string{"1:1 9:1"})
	require.NoError(t, err)
	assert.Equal(t, "1:1 9:1\n", string(b))
}

func TestForFramework(t *testing.T) {
	for _, framework := range []string{"xgboost", "sklearn", "tensorflow", "pytorch"} {
		s, d, err := ForFramework(framework)
		require.NoError(t, err, framework)
		assert.NotNil(t, s)
		assert.NotNil(t, d)
	}
	_, _, err := ForFramework("mxnet")
	assert.Error(t, err)
}
