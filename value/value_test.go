package value

import (
	"encoding/hex"
	"errors"
	"io/ioutil"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v2"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
)

type vector struct {
	Name             string            `yaml:"name"`
	Kind             Kind              `yaml:"kind"`
	Hex              string            `yaml:"hex"`
	Context          *uint8            `yaml:"context"`
	Boolean          bool              `yaml:"boolean"`
	StatusFlags      map[string]bool   `yaml:"statusFlags"`
	ObjectIdentifier map[string]uint32 `yaml:"objectIdentifier"`
}

func (v vector) expected() interface{} {
	switch v.Kind {
	case KindStatusFlags:
		return v.StatusFlags
	case KindObjectIdentifier:
		return v.ObjectIdentifier
	}
	return v.Boolean
}

func loadVectors(t *testing.T) []vector {
	data, err := ioutil.ReadFile("testdata/vectors.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var vectors []vector
	if err := yaml.Unmarshal(data, &vectors); err != nil {
		t.Fatal(err)
	}
	return vectors
}

func TestVectors(t *testing.T) {
	for _, tc := range loadVectors(t) {
		t.Run(tc.Name, func(t *testing.T) {
			is := is.New(t)
			b, err := hex.DecodeString(tc.Hex)
			is.NoErr(err)

			want, err := FromValue(tc.Kind, tc.expected())
			is.NoErr(err)

			got, err := FromValue(tc.Kind, want.Value())
			is.NoErr(err)
			next, err := Read(got, b, 0, encoding.DefaultOptions())
			is.NoErr(err)
			is.Equal(next, len(b))
			is.Equal(got.Value(), want.Value())
			is.Equal(got.Tag().IsContext(), tc.Context != nil)

			out := make([]byte, len(b))
			w := encoding.NewWriter(out, 0)
			var n int
			if tc.Context != nil {
				n, err = want.WriteParam(w, *tc.Context)
			} else {
				n, err = want.WriteValue(w)
			}
			is.NoErr(err)
			is.Equal(n, len(b))
			is.Equal(hex.EncodeToString(out), tc.Hex)
		})
	}
}

func TestDecode(t *testing.T) {
	is := is.New(t)
	b, err := hex.DecodeString("11820460c402000001")
	is.NoErr(err)
	r := encoding.NewReader(b, 0)

	v, err := Decode(r, encoding.Options{})
	is.NoErr(err)
	is.Equal(v.Value(), true)

	v, err = Decode(r, encoding.Options{})
	is.NoErr(err)
	is.Equal(v.Value(), bacnet.StatusFlags{Fault: true, Overridden: true})

	v, err = Decode(r, encoding.Options{})
	is.NoErr(err)
	is.Equal(v.Value(), bacnet.ObjectID{Type: bacnet.BacnetDevice, Instance: 1})
	is.Equal(r.Remaining(), 0)
}

func TestDecodeUnsupported(t *testing.T) {
	ttc := []struct {
		data   string
		offset int
	}{
		{data: "2205c4"},
		{data: "0901"},
		{data: "0e"},
		{data: "aa7511", offset: 1},
	}
	for _, tc := range ttc {
		t.Run(tc.data, func(t *testing.T) {
			is := is.New(t)
			b, err := hex.DecodeString(tc.data)
			is.NoErr(err)
			r := encoding.NewReader(b, tc.offset)
			_, err = Decode(r, encoding.Options{})
			is.True(errors.Is(err, bacnet.ErrUnsupportedTag))
			var e *bacnet.UnsupportedTagError
			is.True(errors.As(err, &e))
			is.Equal(e.Offset, tc.offset)
			is.Equal(r.Pos(), tc.offset)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	is := is.New(t)
	_, err := Decode(encoding.NewReader([]byte{0xc4, 0x02, 0x00}, 0), encoding.Options{})
	is.True(errors.Is(err, bacnet.ErrMalformedEncoding))
	_, err = Decode(encoding.NewReader(nil, 0), encoding.Options{})
	is.True(errors.Is(err, bacnet.ErrMalformedEncoding))
}

func TestFromValueUnknownKind(t *testing.T) {
	is := is.New(t)
	_, err := FromValue("real", 1.5)
	is.True(errors.Is(err, bacnet.ErrValidation))
}

func TestReadLeavesOffsetOnError(t *testing.T) {
	is := is.New(t)
	b := NewBoolean(true)
	next, err := Read(b, []byte{0x00, 0x0a, 0x01}, 1, encoding.Options{})
	is.True(errors.Is(err, bacnet.ErrMalformedEncoding))
	is.Equal(next, 1)
	is.Equal(b.Bool(), true)
}
