package hapi

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Field access helpers over dynamic messages. Field names come from the
// embedded schema, so an unknown name is a programming error and panics with
// the offending message/field rather than returning an error at every call
// site.

func fieldOf(m protoreflect.Message, name string) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		panic(fmt.Sprintf("hapi: message %s has no field %q", m.Descriptor().FullName(), name))
	}
	return fd
}

// SetMessage sets a message-typed field.
func SetMessage(m *dynamicpb.Message, field string, v proto.Message) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfMessage(v.ProtoReflect()))
}

// AppendMessage appends to a repeated message field.
func AppendMessage(m *dynamicpb.Message, field string, v proto.Message) {
	m.Mutable(fieldOf(m, field)).List().Append(protoreflect.ValueOfMessage(v.ProtoReflect()))
}

// SetUint64 sets a uint64 field.
func SetUint64(m *dynamicpb.Message, field string, v uint64) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfUint64(v))
}

// SetInt64 sets an int64 field.
func SetInt64(m *dynamicpb.Message, field string, v int64) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfInt64(v))
}

// SetInt32 sets an int32 field.
func SetInt32(m *dynamicpb.Message, field string, v int32) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfInt32(v))
}

// SetBool sets a bool field.
func SetBool(m *dynamicpb.Message, field string, v bool) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfBool(v))
}

// SetString sets a string field.
func SetString(m *dynamicpb.Message, field string, v string) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfString(v))
}

// SetBytes sets a bytes field.
func SetBytes(m *dynamicpb.Message, field string, v []byte) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfBytes(v))
}

// SetEnum sets an enum field by number. Numbers outside the named range are
// valid (proto3 enums are open), which is how codes newer than this SDK's
// schema subset travel through.
func SetEnum(m *dynamicpb.Message, field string, v int32) {
	m.Set(fieldOf(m, field), protoreflect.ValueOfEnum(protoreflect.EnumNumber(v)))
}

// Has reports whether a field is populated.
func Has(m protoreflect.Message, field string) bool {
	return m.Has(fieldOf(m, field))
}

// GetMessage reads a message-typed field.
func GetMessage(m protoreflect.Message, field string) protoreflect.Message {
	return m.Get(fieldOf(m, field)).Message()
}

// GetList reads a repeated field.
func GetList(m protoreflect.Message, field string) protoreflect.List {
	return m.Get(fieldOf(m, field)).List()
}

// GetUint64 reads a uint64 field.
func GetUint64(m protoreflect.Message, field string) uint64 {
	return m.Get(fieldOf(m, field)).Uint()
}

// GetInt64 reads an int64 field.
func GetInt64(m protoreflect.Message, field string) int64 {
	return m.Get(fieldOf(m, field)).Int()
}

// GetInt32 reads an int32 field.
func GetInt32(m protoreflect.Message, field string) int32 {
	return int32(m.Get(fieldOf(m, field)).Int())
}

// GetBool reads a bool field.
func GetBool(m protoreflect.Message, field string) bool {
	return m.Get(fieldOf(m, field)).Bool()
}

// GetString reads a string field.
func GetString(m protoreflect.Message, field string) string {
	return m.Get(fieldOf(m, field)).String()
}

// GetBytes reads a bytes field.
func GetBytes(m protoreflect.Message, field string) []byte {
	return m.Get(fieldOf(m, field)).Bytes()
}

// GetEnum reads an enum field as its number.
func GetEnum(m protoreflect.Message, field string) int32 {
	return int32(m.Get(fieldOf(m, field)).Enum())
}
