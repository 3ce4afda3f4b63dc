// Copyright 2026 The daml-sast Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wire provides a schema-less protobuf wire-format reader used to
// decode the two Daml-LF archive dialects without generated message code.
// It counts message nodes and tracks nesting depth while it parses, and
// aborts as soon as either bound is exceeded, so a hostile payload cannot
// blow the stack or the heap before any semantic interpretation happens.
//
// Every length-delimited field is speculatively re-parsed as a nested
// message; callers pick whichever interpretation (string, bytes, message)
// matches the field they asked for. This mirrors how descriptor-less
// protobuf inspection tools work and needs no .proto source.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	lferrors "github.com/daml-sast/daml-sast/internal/lf/errors"
)

// Field is one decoded (number, wire-type) occurrence within a Message.
type Field struct {
	Number  protowire.Number
	Type    protowire.Type
	Varint  uint64
	Fixed32 uint32
	Fixed64 uint64
	Raw     []byte   // populated for BytesType
	Sub     *Message // populated when Raw parses cleanly as a nested message
}

// Message groups every field occurrence at one nesting level by field
// number, analogous to a descriptor-less DynamicMessage.
type Message struct {
	fields map[protowire.Number][]*Field
}

type budget struct {
	nodes    int
	maxNodes int
	maxDepth int
}

// errBudget marks a failure that must abort the whole parse, as opposed to
// a speculative nested-message attempt simply not panning out.
type errBudget struct{ err error }

func (e *errBudget) Error() string { return e.err.Error() }
func (e *errBudget) Unwrap() error { return e.err }

// Parse decodes data as a top-level protobuf message, enforcing maxNodes
// total fields and maxDepth nesting across the whole tree.
func Parse(data []byte, maxDepth, maxNodes int) (*Message, error) {
	b := &budget{maxNodes: maxNodes, maxDepth: maxDepth}
	m, err := parseMessage(data, 0, b)
	if be, ok := err.(*errBudget); ok {
		return nil, be.err
	}
	if err != nil {
		return nil, lferrors.Wrap(lferrors.Decode, "malformed protobuf message", err)
	}
	return m, nil
}

func parseMessage(data []byte, depth int, b *budget) (*Message, error) {
	if depth > b.maxDepth {
		return nil, &errBudget{lferrors.Newf(lferrors.StructureLimit, "protobuf nesting exceeds depth limit of %d", b.maxDepth)}
	}
	m := &Message{fields: map[protowire.Number][]*Field{}}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, lferrors.New(lferrors.Decode, "invalid protobuf tag")
		}
		data = data[n:]

		b.nodes++
		if b.nodes > b.maxNodes {
			return nil, &errBudget{lferrors.Newf(lferrors.StructureLimit, "protobuf message exceeds node limit of %d", b.maxNodes)}
		}

		f := &Field{Number: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, lferrors.New(lferrors.Decode, "invalid varint field")
			}
			f.Varint = v
			data = data[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return nil, lferrors.New(lferrors.Decode, "invalid fixed32 field")
			}
			f.Fixed32 = v
			data = data[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, lferrors.New(lferrors.Decode, "invalid fixed64 field")
			}
			f.Fixed64 = v
			data = data[n:]
		case protowire.BytesType:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, lferrors.New(lferrors.Decode, "invalid length-delimited field")
			}
			f.Raw = raw
			data = data[n:]
			if sub, err := parseMessage(raw, depth+1, b); err != nil {
				if be, ok := err.(*errBudget); ok {
					return nil, be
				}
				// Not a valid nested message: leave Sub nil, this field is
				// a plain string/bytes leaf.
			} else {
				f.Sub = sub
			}
		default:
			return nil, lferrors.Newf(lferrors.Decode, "unsupported protobuf wire type %d", typ)
		}
		m.fields[num] = append(m.fields[num], f)
	}
	return m, nil
}

// All returns every occurrence of field number num, in wire order.
func (m *Message) All(num protowire.Number) []*Field {
	if m == nil {
		return nil
	}
	return m.fields[num]
}

// Has reports whether field num occurred at all.
func (m *Message) Has(num protowire.Number) bool {
	return len(m.All(num)) > 0
}

// last returns the last occurrence of num, which is protobuf's rule for
// resolving a duplicated non-repeated scalar field.
func (m *Message) last(num protowire.Number) *Field {
	all := m.All(num)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// Varint returns the last varint-typed occurrence of num.
func (m *Message) Varint(num protowire.Number) (uint64, bool) {
	f := m.last(num)
	if f == nil {
		return 0, false
	}
	return f.Varint, true
}

// Int32 returns Varint(num) truncated to int32, zig-zag-free (plain int32).
func (m *Message) Int32(num protowire.Number) (int32, bool) {
	v, ok := m.Varint(num)
	return int32(v), ok
}

// Bool returns Varint(num) interpreted as a protobuf bool.
func (m *Message) Bool(num protowire.Number) (bool, bool) {
	v, ok := m.Varint(num)
	return v != 0, ok
}

// Bytes returns the last length-delimited occurrence's raw bytes.
func (m *Message) Bytes(num protowire.Number) ([]byte, bool) {
	f := m.last(num)
	if f == nil || f.Type != protowire.BytesType {
		return nil, false
	}
	return f.Raw, true
}

// String returns Bytes(num) as a string.
func (m *Message) String(num protowire.Number) (string, bool) {
	b, ok := m.Bytes(num)
	if !ok {
		return "", false
	}
	return string(b), true
}

// Sub returns the last occurrence of num reinterpreted as a nested message.
func (m *Message) Sub(num protowire.Number) (*Message, bool) {
	f := m.last(num)
	if f == nil || f.Sub == nil {
		return nil, false
	}
	return f.Sub, true
}

// RepeatedSub returns every occurrence of num reinterpreted as nested
// messages, in wire order, skipping any occurrence that didn't parse as a
// message.
func (m *Message) RepeatedSub(num protowire.Number) []*Message {
	var out []*Message
	for _, f := range m.All(num) {
		if f.Sub != nil {
			out = append(out, f.Sub)
		}
	}
	return out
}

// RepeatedVarint returns every varint-typed occurrence of num, in wire
// order, including values packed into a single length-delimited field
// (the wire encoding protobuf uses for `repeated` scalar fields by
// default).
func (m *Message) RepeatedVarint(num protowire.Number) []uint64 {
	var out []uint64
	for _, f := range m.All(num) {
		switch f.Type {
		case protowire.VarintType:
			out = append(out, f.Varint)
		case protowire.BytesType:
			data := f.Raw
			for len(data) > 0 {
				v, n := protowire.ConsumeVarint(data)
				if n < 0 {
					break
				}
				out = append(out, v)
				data = data[n:]
			}
		}
	}
	return out
}

// RepeatedInt32 is RepeatedVarint narrowed to int32.
func (m *Message) RepeatedInt32(num protowire.Number) []int32 {
	vs := m.RepeatedVarint(num)
	out := make([]int32, len(vs))
	for i, v := range vs {
		out[i] = int32(v)
	}
	return out
}

// RepeatedString returns every length-delimited occurrence of num as a
// string, in wire order.
func (m *Message) RepeatedString(num protowire.Number) []string {
	var out []string
	for _, f := range m.All(num) {
		if f.Type == protowire.BytesType {
			out = append(out, string(f.Raw))
		}
	}
	return out
}
