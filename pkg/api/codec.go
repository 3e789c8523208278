// Package api defines the wire messages of the kaskos RPC surface and the
// JSON codec that carries them over Connect.
package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name; it maps to application/json.
const CodecName = "json"

// Codec marshals plain Go structs as JSON. It replaces Connect's default
// protojson codec, which only accepts proto.Message values.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
