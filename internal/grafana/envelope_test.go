package grafana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapData(t *testing.T) {
	values, err := UnwrapData[[]string]([]byte(`{"status":"success","data":["a","b"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestUnwrapDataIgnoresStatus(t *testing.T) {
	// status is not validated; only the presence of data matters.
	values, err := UnwrapData[[]string]([]byte(`{"status":"error","data":["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, values)
}

func TestUnwrapDataMissingData(t *testing.T) {
	for _, body := range []string{
		`{"status":"error"}`,
		`{"status":"success","data":null}`,
	} {
		_, err := UnwrapData[[]string]([]byte(body))
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr, "body: %s", body)
		assert.Equal(t, body, string(decodeErr.Raw))
	}
}

func TestUnwrapDataMalformed(t *testing.T) {
	_, err := UnwrapData[map[string][]string]([]byte(`not json`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "not json", string(decodeErr.Raw))
}

func TestUnwrapDataWrongShape(t *testing.T) {
	// data present but not decodable as T.
	_, err := UnwrapData[[]string]([]byte(`{"status":"success","data":{"a":1}}`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
