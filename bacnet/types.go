//Package bacnet provides the types shared by the BACnet codec packages:
//object identifiers, status flags, tag classes and the codec errors.
package bacnet

import (
	"fmt"

	"github.com/baetyl/baetyl-bacnet-codec/internal/bitrange"
)

const (
	MaxInstance   = 0x3FFFFF
	MaxObjectType = 0x3FF
	instanceBits  = 22
	typeBits      = 10
)

//ObjectType is the category of an object
type ObjectType uint16

//ObjectInstance is a unique identifier of a BACnet object inside a
//device for a given ObjectType
type ObjectInstance uint32

const (
	AnalogInput           ObjectType = 0x00
	AnalogOutput          ObjectType = 0x01
	AnalogValue           ObjectType = 0x02
	BinaryInput           ObjectType = 0x03
	BinaryOutput          ObjectType = 0x04
	BinaryValue           ObjectType = 0x05
	Calendar              ObjectType = 0x06
	Command               ObjectType = 0x07
	BacnetDevice          ObjectType = 0x08
	EventEnrollment       ObjectType = 0x09
	File                  ObjectType = 0x0A
	Group                 ObjectType = 0x0B
	Loop                  ObjectType = 0x0C
	MultiStateInput       ObjectType = 0x0D
	MultiStateOutput      ObjectType = 0x0E
	NotificationClass     ObjectType = 0x0F
	Program               ObjectType = 0x10
	Schedule              ObjectType = 0x11
	Averaging             ObjectType = 0x12
	MultiStateValue       ObjectType = 0x13
	Trendlog              ObjectType = 0x14
	LifeSafetyPoint       ObjectType = 0x15
	LifeSafetyZone        ObjectType = 0x16
	Accumulator           ObjectType = 0x17
	PulseConverter        ObjectType = 0x18
	EventLog              ObjectType = 0x19
	GlobalGroup           ObjectType = 0x1A
	TrendLogMultiple      ObjectType = 0x1B
	LoadControl           ObjectType = 0x1C
	StructuredView        ObjectType = 0x1D
	AccessDoor            ObjectType = 0x1E
	Timer                 ObjectType = 0x1F
	AccessCredential      ObjectType = 0x20 // Addendum 2008-j
	AccessPoint           ObjectType = 0x21
	AccessRights          ObjectType = 0x22
	AccessUser            ObjectType = 0x23
	AccessZone            ObjectType = 0x24
	CredentialDataInput   ObjectType = 0x25 // Authentication-factor-input
	NetworkSecurity       ObjectType = 0x26 // Addendum 2008-g
	BitstringValue        ObjectType = 0x27 // Addendum 2008-w
	CharacterstringValue  ObjectType = 0x28 // Addendum 2008-w
	DatePatternValue      ObjectType = 0x29 // Addendum 2008-w
	DateValue             ObjectType = 0x2a // Addendum 2008-w
	DatetimePatternValue  ObjectType = 0x2b // Addendum 2008-w
	DatetimeValue         ObjectType = 0x2c // Addendum 2008-w
	IntegerValue          ObjectType = 0x2d // Addendum 2008-w
	LargeAnalogValue      ObjectType = 0x2e // Addendum 2008-w
	OctetstringValue      ObjectType = 0x2f // Addendum 2008-w
	PositiveIntegerValue  ObjectType = 0x30 // Addendum 2008-w
	TimePatternValue      ObjectType = 0x31 // Addendum 2008-w
	TimeValue             ObjectType = 0x32 // Addendum 2008-w
	NotificationForwarder ObjectType = 0x33 // Addendum 2010-af
	AlertEnrollment       ObjectType = 0x34 // Addendum 2010-af
	Channel               ObjectType = 0x35 // Addendum 2010-aa
	LightingOutput        ObjectType = 0x36 // Addendum 2010-i
	BinaryLightingOutput  ObjectType = 0x37 // Addendum 135-2012az
	NetworkPort           ObjectType = 0x38 // Addendum 135-2012az
	ProprietaryMin        ObjectType = 0x80
	ProprietaryMax        ObjectType = 0x3ff
)

//ObjectID represent the type of a BACnet object and it's instance number
type ObjectID struct {
	Type     ObjectType
	Instance ObjectInstance
}

//Validate checks that both fields fit their bit range on the wire
func (o ObjectID) Validate() error {
	if o.Type > MaxObjectType {
		return &ValidationError{Field: "object-type", Value: o.Type, Reason: "exceeds 10 bits"}
	}
	if o.Instance > MaxInstance {
		return &ValidationError{Field: "object-instance", Value: o.Instance, Reason: "exceeds 22 bits"}
	}
	return nil
}

//Encode turns the object ID into a uint32 for encoding.  Returns an
//error if the ObjectID is invalid
func (o ObjectID) Encode() (uint32, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	v := bitrange.Set(0, instanceBits, typeBits, uint32(o.Type))
	return bitrange.Set(v, 0, instanceBits, uint32(o.Instance)), nil
}

func (o ObjectID) String() string {
	return fmt.Sprintf("%d:%d", o.Type, o.Instance)
}

func ObjectIDFromUint32(v uint32) ObjectID {
	return ObjectID{
		Type:     ObjectType(bitrange.Get(v, instanceBits, typeBits)),
		Instance: ObjectInstance(bitrange.Get(v, 0, instanceBits)),
	}
}

//StatusFlags are the four summary flags carried by the Status_Flags
//property of most objects
type StatusFlags struct {
	InAlarm      bool
	Fault        bool
	Overridden   bool
	OutOfService bool
}

func (s StatusFlags) String() string {
	return fmt.Sprintf("{in-alarm:%v, fault:%v, overridden:%v, out-of-service:%v}",
		s.InAlarm, s.Fault, s.Overridden, s.OutOfService)
}

//TagClass is the class bit of a tag header
type TagClass byte

const (
	ApplicationClass TagClass = 0
	ContextClass     TagClass = 1
)

func (c TagClass) String() string {
	if c == ContextClass {
		return "context"
	}
	return "application"
}

//ApplicationTag is the tag number of an application class tag, it
//gives the type of the value that follows
type ApplicationTag byte

const (
	TagNull            ApplicationTag = 0
	TagBoolean         ApplicationTag = 1
	TagUnsignedInt     ApplicationTag = 2
	TagSignedInt       ApplicationTag = 3
	TagReal            ApplicationTag = 4
	TagDouble          ApplicationTag = 5
	TagOctetString     ApplicationTag = 6
	TagCharacterString ApplicationTag = 7
	TagBitString       ApplicationTag = 8
	TagEnumerated      ApplicationTag = 9
	TagDate            ApplicationTag = 10
	TagTime            ApplicationTag = 11
	TagObjectID        ApplicationTag = 12
)
