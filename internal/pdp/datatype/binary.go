// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
)

type hexBinaryType struct{}

func (hexBinaryType) ID() ID { return HexBinary }

func (hexBinaryType) Parse(lexical string) (any, error) {
	b, err := hex.DecodeString(lexical)
	if err != nil {
		return nil, &SyntaxError{Datatype: HexBinary, Lexical: lexical, Reason: "not valid hex"}
	}
	return b, nil
}

func (hexBinaryType) Serialize(value any) (string, error) {
	b, ok := value.([]byte)
	if !ok {
		return "", &SyntaxError{Datatype: HexBinary, Reason: "value is not []byte"}
	}
	return hex.EncodeToString(b), nil
}

func (hexBinaryType) Equal(a, b any) bool { return bytes.Equal(a.([]byte), b.([]byte)) }
func (hexBinaryType) Orderable() bool     { return false }
func (hexBinaryType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: HexBinary, Reason: "hexBinary has no total order"}
}

type base64BinaryType struct{}

func (base64BinaryType) ID() ID { return Base64Binary }

func (base64BinaryType) Parse(lexical string) (any, error) {
	b, err := base64.StdEncoding.DecodeString(lexical)
	if err != nil {
		return nil, &SyntaxError{Datatype: Base64Binary, Lexical: lexical, Reason: "not valid base64"}
	}
	return b, nil
}

func (base64BinaryType) Serialize(value any) (string, error) {
	b, ok := value.([]byte)
	if !ok {
		return "", &SyntaxError{Datatype: Base64Binary, Reason: "value is not []byte"}
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (base64BinaryType) Equal(a, b any) bool { return bytes.Equal(a.([]byte), b.([]byte)) }
func (base64BinaryType) Orderable() bool     { return false }
func (base64BinaryType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: Base64Binary, Reason: "base64Binary has no total order"}
}

func init() {
	register(hexBinaryType{})
	register(base64BinaryType{})
}
