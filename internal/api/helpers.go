package api

import (
	"bytes"
	"encoding/json"

	"github.com/motortrust/motortrust-go/internal/domain"
)

// ============================================================
// Envelope decode helpers
// ============================================================

func unmarshalEnvelope(body []byte, env *domain.Envelope) error {
	return json.Unmarshal(body, env)
}

// decodeData unmarshals the envelope's data field into T.
func decodeData[T any](env *domain.Envelope, resource string) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &domain.ErrMalformedPayload{Resource: resource, Reason: err.Error()}
	}
	return out, nil
}

// jsonBody marshals a request payload for a plain JSON write.
func jsonBody(payload any) (*bytes.Reader, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}
