package grafana

import (
	"encoding/json"
	"errors"
)

// responseEnvelope is the generic {status, data} wrapper used by several
// Grafana plugin and Prometheus-proxy endpoints.
type responseEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// UnwrapData decodes a {status, data} envelope and returns only the data
// field, typed as T. Envelope fields other than data are discarded, and
// status is deliberately not validated: a status of "error" with an absent
// data field surfaces as a *DecodeError, not a semantic error.
func UnwrapData[T any](body []byte) (T, error) {
	var zero T
	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zero, &DecodeError{Err: err, Raw: body}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return zero, &DecodeError{Err: errors.New("envelope missing data field"), Raw: body}
	}

	var data T
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return zero, &DecodeError{Err: err, Raw: body}
	}
	return data, nil
}
