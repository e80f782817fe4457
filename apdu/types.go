package apdu

import "fmt"

//PDUType is the kind of APDU, carried in the high nibble of its first
//byte
type PDUType byte

const (
	ConfirmedServiceRequest   PDUType = 0
	UnconfirmedServiceRequest PDUType = 1
	SimpleAck                 PDUType = 2
	ComplexAck                PDUType = 3
	SegmentAck                PDUType = 4
	Error                     PDUType = 5
	Reject                    PDUType = 6
	Abort                     PDUType = 7

	maxPDUType = Abort
)

var pduTypeNames = [...]string{
	"Confirmed-Request",
	"Unconfirmed-Request",
	"Simple-ACK",
	"Complex-ACK",
	"Segment-ACK",
	"Error",
	"Reject",
	"Abort",
}

func (t PDUType) String() string {
	if t > maxPDUType {
		return fmt.Sprintf("PDUType(%d)", byte(t))
	}
	return pduTypeNames[t]
}

//MaxSegments is the 3 bits code of the number of segments a client
//accepts in a segmented response
type MaxSegments byte

const (
	MaxSegmentsUnspecified MaxSegments = iota
	MaxSegments2
	MaxSegments4
	MaxSegments8
	MaxSegments16
	MaxSegments32
	MaxSegments64
	MaxSegmentsMore
)

//Count returns the number of segments the code stands for, 0 when it is
//unspecified or more than 64
func (m MaxSegments) Count() int {
	if m == MaxSegmentsUnspecified || m >= MaxSegmentsMore {
		return 0
	}
	return 1 << uint(m)
}

//MaxAPDU is the 4 bits code of the largest APDU a client accepts
type MaxAPDU byte

const (
	MaxAPDU50 MaxAPDU = iota
	MaxAPDU128
	MaxAPDU206
	MaxAPDU480
	MaxAPDU1024
	MaxAPDU1476
)

var maxAPDULengths = [...]int{50, 128, 206, 480, 1024, 1476}

//Length returns the size in bytes of the code, 0 for reserved codes
func (m MaxAPDU) Length() int {
	if int(m) >= len(maxAPDULengths) {
		return 0
	}
	return maxAPDULengths[m]
}

//MaxAPDUFor returns the largest code whose length is not more than n
func MaxAPDUFor(n int) (MaxAPDU, bool) {
	for i := len(maxAPDULengths) - 1; i >= 0; i-- {
		if maxAPDULengths[i] <= n {
			return MaxAPDU(i), true
		}
	}
	return 0, false
}
