package bacnet

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectIDEncode(t *testing.T) {
	for _, typ := range []ObjectType{0, 1, MaxObjectType} {
		for _, inst := range []ObjectInstance{0, 1, MaxInstance} {
			t.Run(fmt.Sprintf("%d:%d", typ, inst), func(t *testing.T) {
				o := ObjectID{Type: typ, Instance: inst}
				v, err := o.Encode()
				assert.NoError(t, err)
				assert.Equal(t, uint32(typ)<<22|uint32(inst), v)
				assert.Equal(t, o, ObjectIDFromUint32(v))
			})
		}
	}
}

func TestObjectIDEncodeOutOfRange(t *testing.T) {
	_, err := ObjectID{Type: MaxObjectType + 1}.Encode()
	assert.True(t, errors.Is(err, ErrValidation))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "object-type", ve.Field)

	_, err = ObjectID{Instance: MaxInstance + 1}.Encode()
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "object-instance", ve.Field)
}

func TestObjectIDString(t *testing.T) {
	assert.Equal(t, "8:30185", ObjectID{Type: BacnetDevice, Instance: 30185}.String())
}

func TestErrors(t *testing.T) {
	inner := errors.New("eof")
	err := fmt.Errorf("read tag: %w", &MalformedEncodingError{Field: "tag", Offset: 3, Reason: "buffer exhausted", Err: inner})
	assert.True(t, errors.Is(err, ErrMalformedEncoding))
	assert.True(t, errors.Is(err, inner))
	assert.False(t, errors.Is(err, ErrUnsupportedTag))
	assert.Equal(t, "read tag: malformed tag at offset 3: buffer exhausted: eof", err.Error())

	err = &UnsupportedTagError{Field: "status-flags", Number: 2, Class: ApplicationClass, Offset: 0}
	assert.True(t, errors.Is(err, ErrUnsupportedTag))
	assert.Equal(t, "unsupported application tag 2 for status-flags at offset 0", err.Error())
}
