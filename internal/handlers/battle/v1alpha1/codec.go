// Package v1alpha1 serves the battle and creature gRPC services.
//
// Messages travel as google.protobuf.Struct; each method decodes its struct
// into a request type declared here and encodes the response the same way.
package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// ToStruct encodes a message as a protobuf Struct
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return s, nil
}

// FromStruct decodes a protobuf Struct into out. Unknown fields are rejected.
func FromStruct(s *structpb.Struct, out any) error {
	if s == nil {
		return errors.InvalidArgument("message is required")
	}

	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}
	return nil
}
