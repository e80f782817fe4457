package value

import (
	"fmt"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
)

const objectIDLength = 4

// Keys of the map form of an object identifier
const (
	TypeKey     = "type"
	InstanceKey = "instance"
)

type ObjectIdentifier struct {
	tag encoding.Tag
	id  bacnet.ObjectID
}

//NewObjectIdentifier fails if the type or the instance are out of range
func NewObjectIdentifier(id bacnet.ObjectID) (*ObjectIdentifier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &ObjectIdentifier{tag: encoding.NewApplicationTag(bacnet.TagObjectID, objectIDLength), id: id}, nil
}

func (o *ObjectIdentifier) ReadValue(r *encoding.Reader, opts encoding.Options) error {
	t, start, err := readTag(r, "object-identifier")
	if err != nil {
		return err
	}
	if !t.IsContext() && !t.IsApplication(bacnet.TagObjectID) {
		return unsupported("object-identifier", t, start)
	}
	if t.Length != objectIDLength {
		return &bacnet.MalformedEncodingError{
			Field:  "object-identifier",
			Offset: start,
			Reason: fmt.Sprintf("length %d, expected %d", t.Length, objectIDLength),
		}
	}
	word, err := r.ReadUint32()
	if err != nil {
		return fmt.Errorf("read object-identifier payload: %w", err)
	}
	o.tag = t
	o.id = bacnet.ObjectIDFromUint32(word)
	return nil
}

func (o *ObjectIdentifier) write(w *encoding.Writer, t encoding.Tag) (int, error) {
	word, err := o.id.Encode()
	if err != nil {
		return 0, err
	}
	if err := w.Require("object-identifier", encoding.TagSize(t)+objectIDLength); err != nil {
		return 0, err
	}
	n, err := encoding.EncodeTag(w, t)
	if err != nil {
		return 0, err
	}
	if err := w.WriteUint32(word); err != nil {
		return n, err
	}
	o.tag = t
	return n + objectIDLength, nil
}

func (o *ObjectIdentifier) WriteValue(w *encoding.Writer) (int, error) {
	return o.write(w, encoding.NewApplicationTag(bacnet.TagObjectID, objectIDLength))
}

func (o *ObjectIdentifier) WriteParam(w *encoding.Writer, tagNumber byte) (int, error) {
	return o.write(w, encoding.NewContextTag(tagNumber, objectIDLength))
}

func (o *ObjectIdentifier) ObjectID() bacnet.ObjectID {
	return o.id
}

func (o *ObjectIdentifier) Value() interface{} {
	return o.id
}

//SetValue accepts a bacnet.ObjectID or a map holding both the type and
//the instance
func (o *ObjectIdentifier) SetValue(v interface{}) error {
	var id bacnet.ObjectID
	switch x := v.(type) {
	case bacnet.ObjectID:
		id = x
	case *bacnet.ObjectID:
		if x == nil {
			return &bacnet.ValidationError{Field: "object-identifier", Value: v, Reason: "nil pointer"}
		}
		id = *x
	case map[string]uint32:
		var err error
		if id, err = objectIDFromMap(x); err != nil {
			return err
		}
	default:
		return &bacnet.ValidationError{Field: "object-identifier", Value: v, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ObjectIdentifier) Tag() encoding.Tag {
	return o.tag
}

//IsEqual compares the type and instance with other, which can be an
//*ObjectIdentifier, a bacnet.ObjectID or its map form. Anything else is
//never equal.
func (o *ObjectIdentifier) IsEqual(other interface{}) bool {
	switch x := other.(type) {
	case *ObjectIdentifier:
		return x != nil && x.id == o.id
	case bacnet.ObjectID:
		return x == o.id
	case *bacnet.ObjectID:
		return x != nil && *x == o.id
	case map[string]uint32:
		t, okType := x[TypeKey]
		i, okInstance := x[InstanceKey]
		return okType && okInstance && t == uint32(o.id.Type) && i == uint32(o.id.Instance)
	}
	return false
}

func (o *ObjectIdentifier) String() string {
	return o.id.String()
}

func objectIDFromMap(m map[string]uint32) (bacnet.ObjectID, error) {
	t, ok := m[TypeKey]
	if !ok {
		return bacnet.ObjectID{}, &bacnet.ValidationError{Field: "object-identifier", Value: m, Reason: "missing type"}
	}
	i, ok := m[InstanceKey]
	if !ok {
		return bacnet.ObjectID{}, &bacnet.ValidationError{Field: "object-identifier", Value: m, Reason: "missing instance"}
	}
	if t > bacnet.MaxObjectType {
		return bacnet.ObjectID{}, &bacnet.ValidationError{Field: "object-type", Value: t, Reason: "out of range"}
	}
	if i > bacnet.MaxInstance {
		return bacnet.ObjectID{}, &bacnet.ValidationError{Field: "object-instance", Value: i, Reason: "out of range"}
	}
	return bacnet.ObjectID{Type: bacnet.ObjectType(t), Instance: bacnet.ObjectInstance(i)}, nil
}
