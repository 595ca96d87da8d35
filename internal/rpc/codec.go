// Package rpc defines the gliphic gRPC service: its wire messages, a JSON
// codec for them, the service descriptor and a typed client.
//
// The service does not use protobuf messages. Its messages are plain Go
// structs, and a custom gRPC codec (jsonCodec, content subtype CodecName)
// marshals them with encoding/json. The codec is registered in init and the
// client stub selects it on every call, so both ends agree without generated
// code. Status details are still protobuf values (wrapperspb).
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype used by every gliphic call.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }
