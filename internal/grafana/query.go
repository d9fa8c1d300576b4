package grafana

import (
	"encoding/json"
	"strconv"
	"time"
)

// DatasourceRef identifies the datasource a query runs against.
type DatasourceRef struct {
	// UID is the unique uid of the datasource.
	UID string `json:"uid"`
	// Type is the type of the datasource, e.g. "prometheus".
	Type string `json:"type"`
}

// Query is one entry in a /api/ds/query batch. Besides the modeled fields,
// queries carry an open-ended bag of datasource-specific fields (e.g. "expr"
// for PromQL) which must pass through encoding and decoding untouched; those
// live in Extra.
//
// RefID values within a batch must be unique: the response is keyed by them.
type Query struct {
	RefID      string
	Datasource DatasourceRef
	QueryType  string
	// IntervalMS is the time series interval in milliseconds. Omitted from
	// the wire format when nil.
	IntervalMS *int64
	// Extra holds unmodeled keys, merged back in on encode. A modeled field
	// name appearing in Extra is ignored in favor of the typed field.
	Extra map[string]any
}

// MarshalJSON merges the modeled fields and the Extra map into a single
// object. Key order is deterministic (encoding/json sorts map keys), so
// encode->decode->encode round-trips byte-identically.
func (q Query) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(q.Extra)+4)
	for k, v := range q.Extra {
		m[k] = v
	}
	m["refId"] = q.RefID
	m["datasource"] = q.Datasource
	m["queryType"] = q.QueryType
	if q.IntervalMS != nil {
		m["intervalMs"] = *q.IntervalMS
	} else {
		delete(m, "intervalMs")
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits an object into the modeled fields and the Extra
// remainder map.
func (q *Query) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["refId"]; ok {
		if err := json.Unmarshal(v, &q.RefID); err != nil {
			return err
		}
		delete(raw, "refId")
	}
	if v, ok := raw["datasource"]; ok {
		if err := json.Unmarshal(v, &q.Datasource); err != nil {
			return err
		}
		delete(raw, "datasource")
	}
	if v, ok := raw["queryType"]; ok {
		if err := json.Unmarshal(v, &q.QueryType); err != nil {
			return err
		}
		delete(raw, "queryType")
	}
	if v, ok := raw["intervalMs"]; ok {
		var interval int64
		if err := json.Unmarshal(v, &interval); err != nil {
			return err
		}
		q.IntervalMS = &interval
		delete(raw, "intervalMs")
	}

	if len(raw) == 0 {
		q.Extra = nil
		return nil
	}
	q.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		q.Extra[k] = value
	}
	return nil
}

// QueryRequest is the body of a POST to /api/ds/query. The from/to fields
// are millisecond-epoch integers expressed as decimal strings; this encoding
// is specific to /api/ds/query and is not interchangeable with the RFC3339
// strings used by other body fields.
type QueryRequest struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Queries []Query `json:"queries"`
}

// NewQueryRequest builds a QueryRequest for the given time range and batch.
func NewQueryRequest(from, to time.Time, queries []Query) QueryRequest {
	return QueryRequest{
		From:    strconv.FormatInt(from.UnixMilli(), 10),
		To:      strconv.FormatInt(to.UnixMilli(), 10),
		Queries: queries,
	}
}

// FieldConfig carries per-field display configuration in a frame schema.
type FieldConfig struct {
	DisplayNameFromDS string `json:"displayNameFromDS,omitempty"`
}

// SchemaField describes one column of a frame.
type SchemaField struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Config *FieldConfig      `json:"config,omitempty"`
}

// FrameSchema describes the columns of a frame.
type FrameSchema struct {
	Name   string        `json:"name,omitempty"`
	Fields []SchemaField `json:"fields"`
}

// FrameData holds column-oriented values: Values[0] is typically the epoch
// millisecond timestamp column, subsequent columns are value series aligned
// by index. No reordering or validation of column semantics happens here;
// the decode is a transparent structural one.
type FrameData struct {
	Values [][]any `json:"values"`
}

// Frame is a single data frame in a query result.
type Frame struct {
	Schema FrameSchema `json:"schema"`
	Data   FrameData   `json:"data"`
}

// QueryResult is the result of a single query in a batch.
type QueryResult struct {
	Frames []Frame `json:"frames"`
	Error  string  `json:"error,omitempty"`
	Status *int    `json:"status,omitempty"`
}

// DSQueryResponse is the response of /api/ds/query, keyed by refId.
type DSQueryResponse struct {
	Results map[string]QueryResult `json:"results"`
}

// ParseDSQueryResponse decodes a /api/ds/query response body.
func ParseDSQueryResponse(body []byte) (*DSQueryResponse, error) {
	var resp DSQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Err: err, Raw: body}
	}
	return &resp, nil
}
