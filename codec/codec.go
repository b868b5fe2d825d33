package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cottand/rebind/description"
	"github.com/vmihailenco/msgpack/v5"
)

// Encode builds the record of fields and methods attached to ctx and serializes it
func Encode(ctx description.InstrumentedType, fields []description.FieldDescription, methods []description.MethodDescription) ([]byte, error) {
	r, err := NewRecord(ctx, fields, methods)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decode(data []byte) (*Record, error) {
	return Read(bytes.NewReader(data))
}

func Write(w io.Writer, r *Record) error {
	return msgpack.NewEncoder(w).Encode(r)
}

// Read decodes a record, failing on records written with another schema
func Read(reader io.Reader) (*Record, error) {
	var r Record
	if err := msgpack.NewDecoder(reader).Decode(&r); err != nil {
		return nil, err
	}
	if r.Schema != SchemaVersion {
		return nil, fmt.Errorf("record of %s has schema %d, expected %d", r.Type, r.Schema, SchemaVersion)
	}
	return &r, nil
}
