// Package collcodec provides collections value codecs for the engine's value
// types.
package collcodec

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections/codec"
	"cosmossdk.io/math"
)

// IntValue encodes math.Int values in their canonical binary form.
var IntValue codec.ValueCodec[math.Int] = intValueCodec{}

type intValueCodec struct{}

func (intValueCodec) Encode(value math.Int) ([]byte, error) {
	if value.IsNil() {
		return nil, fmt.Errorf("%w: nil math.Int", codec.ErrEncoding)
	}
	return value.Marshal()
}

func (intValueCodec) Decode(b []byte) (math.Int, error) {
	v := new(math.Int)
	if err := v.Unmarshal(b); err != nil {
		return math.Int{}, fmt.Errorf("%w: %w", codec.ErrEncoding, err)
	}
	return *v, nil
}

func (intValueCodec) EncodeJSON(value math.Int) ([]byte, error) {
	return value.MarshalJSON()
}

func (intValueCodec) DecodeJSON(b []byte) (math.Int, error) {
	v := new(math.Int)
	if err := v.UnmarshalJSON(b); err != nil {
		return math.Int{}, err
	}
	return *v, nil
}

func (intValueCodec) Stringify(value math.Int) string {
	return value.String()
}

func (intValueCodec) ValueType() string {
	return "math.Int"
}

// JSONValue returns a codec storing T as its JSON encoding.
func JSONValue[T any]() codec.ValueCodec[T] {
	return jsonValueCodec[T]{}
}

type jsonValueCodec[T any] struct{}

func (jsonValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValueCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%w: %w", codec.ErrEncoding, err)
	}
	return v, nil
}

func (c jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (jsonValueCodec[T]) Stringify(value T) string {
	return fmt.Sprintf("%+v", value)
}

func (jsonValueCodec[T]) ValueType() string {
	var v T
	return fmt.Sprintf("json(%T)", v)
}
