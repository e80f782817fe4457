package apdu

import (
	"fmt"
	"io"

	"github.com/baetyl/baetyl-go/v2/log"

	"github.com/baetyl/baetyl-bacnet-codec/bacnet"
	"github.com/baetyl/baetyl-bacnet-codec/encoding"
	"github.com/baetyl/baetyl-bacnet-codec/internal/bitrange"
)

const (
	segmentedBit                 = 3
	moreFollowsBit               = 2
	segmentedResponseAcceptedBit = 1
	negativeAckBit               = 1
	serverBit                    = 0

	maxAPDUCode = 0x0F
)

//APDU is the application layer envelope. Fields that don't belong to
//the PDU type are left to their zero value.
type APDU struct {
	Type PDUType
	// Confirmed-Request and Complex-ACK only
	Segmented   bool
	MoreFollows bool
	// Confirmed-Request only
	SegmentedResponseAccepted bool
	MaxSegments               MaxSegments
	MaxAPDU                   MaxAPDU

	InvokeID byte
	// Present when Segmented, and on every Segment-ACK
	SequenceNumber byte
	WindowSize     byte

	ServiceChoice ServiceType
	// Segment-ACK only
	NegativeAck bool
	// Segment-ACK and Abort
	Server bool
	// Reject and Abort
	Reason byte

	// Bytes after the header of Confirmed-Request, Unconfirmed-Request,
	// Complex-ACK and Error PDUs. A decoded APDU shares them with the
	// input buffer. Segments are not reassembled.
	ServiceData []byte
}

func segmentable(t PDUType) bool {
	return t == ConfirmedServiceRequest || t == ComplexAck
}

func hasServiceData(t PDUType) bool {
	switch t {
	case ConfirmedServiceRequest, UnconfirmedServiceRequest, ComplexAck, Error:
		return true
	}
	return false
}

//headerLen returns the size of the fixed part of a PDU, which is also
//the smallest valid PDU of that type
func headerLen(t PDUType, segmented bool) int {
	switch t {
	case ConfirmedServiceRequest:
		if segmented {
			return 6
		}
		return 4
	case UnconfirmedServiceRequest:
		return 2
	case ComplexAck:
		if segmented {
			return 5
		}
		return 3
	case SegmentAck:
		return 4
	}
	return 3
}

//Decode reads the APDU starting at offset. Every byte up to the end of
//buf belongs to the APDU.
func Decode(buf []byte, offset int, opts encoding.Options) (*APDU, error) {
	a, err := decode(buf, offset, opts)
	if err != nil {
		opts.Log().Debug("apdu rejected", log.Any("offset", offset), log.Any("length", len(buf)), log.Error(err))
		return nil, err
	}
	return a, nil
}

func decode(buf []byte, offset int, opts encoding.Options) (*APDU, error) {
	r := encoding.NewReader(buf, offset)
	size := r.Remaining()
	if opts.Strict && opts.MaxAPDULength > 0 && size > int(opts.MaxAPDULength) {
		return nil, &bacnet.MalformedEncodingError{
			Field:  "apdu",
			Offset: offset,
			Reason: fmt.Sprintf("%d bytes, more than the %d allowed", size, opts.MaxAPDULength),
		}
	}
	first, err := r.ReadUint8()
	if err != nil {
		return nil, &bacnet.MalformedEncodingError{Field: "apdu", Offset: offset, Reason: "empty buffer", Err: io.ErrUnexpectedEOF}
	}

	a := &APDU{Type: PDUType(bitrange.Get(uint32(first), 4, 4))}
	if a.Type > maxPDUType {
		return nil, &bacnet.UnsupportedTagError{Field: "pdu-type", Number: byte(a.Type), Offset: offset}
	}
	if segmentable(a.Type) {
		a.Segmented = bitrange.Bit(first, segmentedBit)
		a.MoreFollows = bitrange.Bit(first, moreFollowsBit)
	}
	if need := headerLen(a.Type, a.Segmented); size < need {
		return nil, &bacnet.MalformedEncodingError{
			Field:  "apdu",
			Offset: offset,
			Reason: fmt.Sprintf("%s needs at least %d bytes, got %d", a.Type, need, size),
			Err:    io.ErrUnexpectedEOF,
		}
	}

	// The header length is checked above so the reads below can't fail
	readSegment := func() {
		a.SequenceNumber, _ = r.ReadUint8()
		a.WindowSize, _ = r.ReadUint8()
	}
	readService := func() {
		s, _ := r.ReadUint8()
		a.ServiceChoice = ServiceType(s)
	}
	switch a.Type {
	case ConfirmedServiceRequest:
		a.SegmentedResponseAccepted = bitrange.Bit(first, segmentedResponseAcceptedBit)
		b, _ := r.ReadUint8()
		a.MaxSegments = MaxSegments(bitrange.Get(uint32(b), 4, 3))
		a.MaxAPDU = MaxAPDU(bitrange.Get(uint32(b), 0, 4))
		a.InvokeID, _ = r.ReadUint8()
		if a.Segmented {
			readSegment()
		}
		readService()
	case UnconfirmedServiceRequest:
		readService()
	case SimpleAck, Error:
		a.InvokeID, _ = r.ReadUint8()
		readService()
	case ComplexAck:
		a.InvokeID, _ = r.ReadUint8()
		if a.Segmented {
			readSegment()
		}
		readService()
	case SegmentAck:
		a.NegativeAck = bitrange.Bit(first, negativeAckBit)
		a.Server = bitrange.Bit(first, serverBit)
		a.InvokeID, _ = r.ReadUint8()
		readSegment()
	case Reject:
		a.InvokeID, _ = r.ReadUint8()
		a.Reason, _ = r.ReadUint8()
	case Abort:
		a.Server = bitrange.Bit(first, serverBit)
		a.InvokeID, _ = r.ReadUint8()
		a.Reason, _ = r.ReadUint8()
	}

	if opts.Strict && !knownService(a.Type, a.ServiceChoice) {
		return nil, &bacnet.MalformedEncodingError{
			Field:  "service-choice",
			Offset: r.Pos() - 1,
			Reason: fmt.Sprintf("unknown service %d for %s", a.ServiceChoice, a.Type),
		}
	}
	switch {
	case hasServiceData(a.Type):
		a.ServiceData, _ = r.ReadBytes(r.Remaining())
	case opts.Strict && r.Remaining() > 0:
		return nil, &bacnet.MalformedEncodingError{
			Field:  "apdu",
			Offset: r.Pos(),
			Reason: fmt.Sprintf("%d trailing bytes after %s", r.Remaining(), a.Type),
		}
	}
	return a, nil
}

//Validate checks that every field fits in its bits
func (a *APDU) Validate() error {
	if a.Type > maxPDUType {
		return &bacnet.ValidationError{Field: "pdu-type", Value: a.Type, Reason: "must be between 0 and 7"}
	}
	if a.MaxSegments > MaxSegmentsMore {
		return &bacnet.ValidationError{Field: "max-segments", Value: a.MaxSegments, Reason: "doesn't fit in 3 bits"}
	}
	if a.MaxAPDU > maxAPDUCode {
		return &bacnet.ValidationError{Field: "max-apdu", Value: a.MaxAPDU, Reason: "doesn't fit in 4 bits"}
	}
	if a.Segmented && !segmentable(a.Type) {
		return &bacnet.ValidationError{Field: "segmented", Value: a.Type, Reason: "only requests and complex acks can be segmented"}
	}
	return nil
}

//Len returns the number of bytes Encode writes
func (a *APDU) Len() int {
	n := headerLen(a.Type, a.Segmented && segmentable(a.Type))
	if hasServiceData(a.Type) {
		n += len(a.ServiceData)
	}
	return n
}

//Encode writes the APDU at the writer position. Nothing is written when
//the APDU is invalid or doesn't fit.
func (a *APDU) Encode(w *encoding.Writer) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	n := a.Len()
	if err := w.Require("apdu", n); err != nil {
		return 0, err
	}

	first := byte(bitrange.Set(0, 4, 4, uint32(a.Type)))
	if segmentable(a.Type) {
		first = bitrange.SetBit(first, segmentedBit, a.Segmented)
		first = bitrange.SetBit(first, moreFollowsBit, a.MoreFollows)
	}
	switch a.Type {
	case ConfirmedServiceRequest:
		first = bitrange.SetBit(first, segmentedResponseAcceptedBit, a.SegmentedResponseAccepted)
	case SegmentAck:
		first = bitrange.SetBit(first, negativeAckBit, a.NegativeAck)
		first = bitrange.SetBit(first, serverBit, a.Server)
	case Abort:
		first = bitrange.SetBit(first, serverBit, a.Server)
	}
	_ = w.WriteUint8(first)

	writeSegment := func() {
		_ = w.WriteUint8(a.SequenceNumber)
		_ = w.WriteUint8(a.WindowSize)
	}
	switch a.Type {
	case ConfirmedServiceRequest:
		limits := bitrange.Set(0, 4, 3, uint32(a.MaxSegments))
		limits = bitrange.Set(limits, 0, 4, uint32(a.MaxAPDU))
		_ = w.WriteUint8(byte(limits))
		_ = w.WriteUint8(a.InvokeID)
		if a.Segmented {
			writeSegment()
		}
		_ = w.WriteUint8(byte(a.ServiceChoice))
	case UnconfirmedServiceRequest:
		_ = w.WriteUint8(byte(a.ServiceChoice))
	case SimpleAck, Error:
		_ = w.WriteUint8(a.InvokeID)
		_ = w.WriteUint8(byte(a.ServiceChoice))
	case ComplexAck:
		_ = w.WriteUint8(a.InvokeID)
		if a.Segmented {
			writeSegment()
		}
		_ = w.WriteUint8(byte(a.ServiceChoice))
	case SegmentAck:
		_ = w.WriteUint8(a.InvokeID)
		writeSegment()
	case Reject, Abort:
		_ = w.WriteUint8(a.InvokeID)
		_ = w.WriteUint8(a.Reason)
	}
	if hasServiceData(a.Type) {
		_ = w.WriteBytes(a.ServiceData)
	}
	return n, nil
}

//ServiceReader returns a reader over the service data
func (a *APDU) ServiceReader() *encoding.Reader {
	return encoding.NewReader(a.ServiceData, 0)
}

func (a *APDU) MarshalBinary() ([]byte, error) {
	b := make([]byte, a.Len())
	if _, err := a.Encode(encoding.NewWriter(b, 0)); err != nil {
		return nil, err
	}
	return b, nil
}

func (a *APDU) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data, 0, encoding.DefaultOptions())
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}
