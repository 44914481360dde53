package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadField is the reserved member holding the payload in the sealed plaintext.
const PayloadField = "payload"

// Metadata is the set of string values sealed together with a payload.
type Metadata map[string]string

// EncodePlaintext produces the canonical plaintext for a payload and its metadata:
// a JSON object with each metadata entry as a string member and the compacted
// payload under "payload", members sorted by key.
func EncodePlaintext(payload []byte, metadata Metadata) ([]byte, error) {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	members := make(map[string]json.RawMessage, len(metadata)+1)
	for k, v := range metadata {
		if k == PayloadField {
			return nil, fmt.Errorf("%w: key %q is reserved", ErrInvalidMetadata, PayloadField)
		}
		encoded, err := marshalUnescaped(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
		members[k] = encoded
	}
	members[PayloadField] = compacted.Bytes()

	return marshalUnescaped(members)
}

// marshalUnescaped encodes v without HTML escaping so "<", ">" and "&" are kept
// as written by the caller.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodePlaintext is the inverse of EncodePlaintext.
func DecodePlaintext(plaintext []byte) ([]byte, Metadata, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &members); err != nil || members == nil {
		return nil, nil, ErrDeserialization
	}

	payload, ok := members[PayloadField]
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing %s member", ErrDeserialization, PayloadField)
	}
	delete(members, PayloadField)

	metadata := make(Metadata, len(members))
	for k, raw := range members {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, nil, fmt.Errorf("%w: metadata %q is not a string", ErrDeserialization, k)
		}
		metadata[k] = v
	}

	return []byte(payload), metadata, nil
}
