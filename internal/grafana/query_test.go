package grafana

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRoundTrip(t *testing.T) {
	interval := int64(10000)
	q := Query{
		RefID:      "A",
		Datasource: DatasourceRef{UID: "prometheus", Type: "prometheus"},
		QueryType:  "range",
		IntervalMS: &interval,
		Extra: map[string]any{
			"expr":   "node_load1",
			"format": "time_series",
		},
	}

	first, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded Query
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, "A", decoded.RefID)
	assert.Equal(t, DatasourceRef{UID: "prometheus", Type: "prometheus"}, decoded.Datasource)
	assert.Equal(t, "range", decoded.QueryType)
	require.NotNil(t, decoded.IntervalMS)
	assert.Equal(t, interval, *decoded.IntervalMS)
	assert.Equal(t, "node_load1", decoded.Extra["expr"])

	second, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestQueryOmitsUnsetInterval(t *testing.T) {
	q := Query{
		RefID:      "A",
		Datasource: DatasourceRef{UID: "prometheus", Type: "prometheus"},
		QueryType:  "instant",
		Extra:      map[string]any{"expr": "up"},
	}

	b, err := json.Marshal(q)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "intervalMs")
	assert.Equal(t, "up", m["expr"])
}

func TestQueryDecodePreservesUnknownKeys(t *testing.T) {
	wire := `{"datasource":{"type":"prometheus","uid":"prometheus"},"expr":"node_load1","legendFormat":"{{job}}","queryType":"range","refId":"A"}`

	var q Query
	require.NoError(t, json.Unmarshal([]byte(wire), &q))
	assert.Equal(t, "node_load1", q.Extra["expr"])
	assert.Equal(t, "{{job}}", q.Extra["legendFormat"])
	assert.Nil(t, q.IntervalMS)

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, wire, string(out))
}

func TestNewQueryRequestEncodesEpochMilliStrings(t *testing.T) {
	from := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	to := from.Add(time.Hour)

	req := NewQueryRequest(from, to, nil)
	assert.Equal(t, "1704164645000", req.From)
	assert.Equal(t, "1704168245000", req.To)
}

func TestParseDSQueryResponse(t *testing.T) {
	body := `{
		"results": {
			"A": {
				"frames": [{
					"schema": {
						"name": "node_load1",
						"fields": [
							{"name": "Time"},
							{"name": "Value", "labels": {"job": "node"}, "config": {"displayNameFromDS": "node_load1"}}
						]
					},
					"data": {"values": [[1704164645000, 1704164705000], [0.5, 0.75]]}
				}],
				"status": 200
			}
		}
	}`

	resp, err := ParseDSQueryResponse([]byte(body))
	require.NoError(t, err)

	result, ok := resp.Results["A"]
	require.True(t, ok)
	require.Len(t, result.Frames, 1)
	frame := result.Frames[0]
	assert.Equal(t, "node_load1", frame.Schema.Name)
	require.Len(t, frame.Schema.Fields, 2)
	assert.Equal(t, "node_load1", frame.Schema.Fields[1].Config.DisplayNameFromDS)
	require.Len(t, frame.Data.Values, 2)
	assert.Equal(t, []any{0.5, 0.75}, frame.Data.Values[1])
	require.NotNil(t, result.Status)
	assert.Equal(t, 200, *result.Status)
}

func TestParseDSQueryResponseMalformed(t *testing.T) {
	_, err := ParseDSQueryResponse([]byte(`{"results": [`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, string(decodeErr.Raw), `"results"`)
}
