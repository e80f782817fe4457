package apdu

//ServiceType is the service choice of a request or of its
//acknowledgement. Confirmed and unconfirmed services share the range.
type ServiceType byte

const (
	ServiceUnconfirmedIAm               ServiceType = 0
	ServiceUnconfirmedIHave             ServiceType = 1
	ServiceUnconfirmedCOVNotification   ServiceType = 2
	ServiceUnconfirmedEventNotification ServiceType = 3
	ServiceUnconfirmedPrivateTransfer   ServiceType = 4
	ServiceUnconfirmedTextMessage       ServiceType = 5
	ServiceUnconfirmedTimeSync          ServiceType = 6
	ServiceUnconfirmedWhoHas            ServiceType = 7
	ServiceUnconfirmedWhoIs             ServiceType = 8
	ServiceUnconfirmedUTCTimeSync       ServiceType = 9
	ServiceUnconfirmedWriteGroup        ServiceType = 10

	// Proprietary unconfirmed services go through PrivateTransfer
	MaxServiceUnconfirmed ServiceType = 11
)

const (
	// Alarm and event
	ServiceConfirmedAcknowledgeAlarm     ServiceType = 0
	ServiceConfirmedCOVNotification      ServiceType = 1
	ServiceConfirmedEventNotification    ServiceType = 2
	ServiceConfirmedGetAlarmSummary      ServiceType = 3
	ServiceConfirmedGetEnrollmentSummary ServiceType = 4
	ServiceConfirmedSubscribeCOV         ServiceType = 5
	ServiceConfirmedLifeSafetyOperation  ServiceType = 27
	ServiceConfirmedSubscribeCOVProperty ServiceType = 28
	ServiceConfirmedGetEventInformation  ServiceType = 29

	// File access
	ServiceConfirmedAtomicReadFile  ServiceType = 6
	ServiceConfirmedAtomicWriteFile ServiceType = 7

	// Object access
	ServiceConfirmedAddListElement      ServiceType = 8
	ServiceConfirmedRemoveListElement   ServiceType = 9
	ServiceConfirmedCreateObject        ServiceType = 10
	ServiceConfirmedDeleteObject        ServiceType = 11
	ServiceConfirmedReadProperty        ServiceType = 12
	ServiceConfirmedReadPropConditional ServiceType = 13
	ServiceConfirmedReadPropMultiple    ServiceType = 14
	ServiceConfirmedWriteProperty       ServiceType = 15
	ServiceConfirmedWritePropMultiple   ServiceType = 16
	ServiceConfirmedReadRange           ServiceType = 26

	// Remote device management
	ServiceConfirmedDeviceCommunicationControl ServiceType = 17
	ServiceConfirmedPrivateTransfer            ServiceType = 18
	ServiceConfirmedTextMessage                ServiceType = 19
	ServiceConfirmedReinitializeDevice         ServiceType = 20

	// Virtual terminal
	ServiceConfirmedVTOpen  ServiceType = 21
	ServiceConfirmedVTClose ServiceType = 22
	ServiceConfirmedVTData  ServiceType = 23

	// Security
	ServiceConfirmedAuthenticate ServiceType = 24
	ServiceConfirmedRequestKey   ServiceType = 25

	MaxServiceConfirmed ServiceType = 30
)

//knownService reports whether s is a defined service choice for a PDU
//of type t. PDUs without a service choice accept anything.
func knownService(t PDUType, s ServiceType) bool {
	switch t {
	case UnconfirmedServiceRequest:
		return s < MaxServiceUnconfirmed
	case ConfirmedServiceRequest, SimpleAck, ComplexAck, Error:
		return s < MaxServiceConfirmed
	}
	return true
}
