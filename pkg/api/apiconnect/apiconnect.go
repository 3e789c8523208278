// Package apiconnect wires the api messages to Connect handlers and clients.
// It follows the layout of protoc-gen-connect-go output so handlers mount
// the same way generated services do.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/pkg/api"
)

// codecOption forces the JSON codec ahead of caller options.
func codecOption() connect.Option {
	return connect.WithCodec(api.Codec{})
}
