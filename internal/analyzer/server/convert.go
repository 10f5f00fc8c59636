package server

import (
	"encoding/json"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/internal/analyzer/service"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewRequest builds the request message for text and locale
func NewRequest(text, locale string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"text":   structpb.NewStringValue(text),
		"locale": structpb.NewStringValue(locale),
	}}
}

// requestFields extracts text and locale. Both are optional; a present
// field must be a string.
func requestFields(in *structpb.Struct) (text, locale string, err error) {
	for name, dst := range map[string]*string{"text": &text, "locale": &locale} {
		v, ok := in.GetFields()[name]
		if !ok {
			continue
		}
		s, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return "", "", mdwerror.New("request field must be a string").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("server.requestFields").
				WithDetail("field", name)
		}
		*dst = s.StringValue
	}
	return text, locale, nil
}

// toStruct converts a response into a Struct through its JSON form
func toStruct(resp *service.Response) (*structpb.Struct, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode report").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.toStruct")
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, mdwerror.Wrap(err, "failed to convert report").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.toStruct")
	}
	return out, nil
}

// fromStruct decodes a response received by a client
func fromStruct(in *structpb.Struct) (*service.Response, error) {
	data, err := protojson.Marshal(in)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read report").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.fromStruct")
	}

	var resp service.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode report").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.fromStruct")
	}
	return &resp, nil
}
