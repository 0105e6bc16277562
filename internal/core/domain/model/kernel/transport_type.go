package kernel

import (
	"fmt"

	"freightflow/internal/pkg/errs"
)

// TransportType classifies the kind of cargo handling a shipment needs.
// It is shared between transport requests (what the customer ships) and
// suppliers (what a carrier can handle); supplier matching requires the
// request's type to be in the supplier's supported set.
type TransportType string

const (
	TransportTypePallet       TransportType = "PALLET"
	TransportTypeContainer    TransportType = "CONTAINER"
	TransportTypeBulk         TransportType = "BULK"
	TransportTypeRefrigerated TransportType = "REFRIGERATED"
	TransportTypeExpress      TransportType = "EXPRESS"
)

func getValidTransportTypes() map[TransportType]struct{} {
	return map[TransportType]struct{}{
		TransportTypePallet:       {},
		TransportTypeContainer:    {},
		TransportTypeBulk:         {},
		TransportTypeRefrigerated: {},
		TransportTypeExpress:      {},
	}
}

// TransportTypeFromString parses and validates a transport type.
func TransportTypeFromString(s string) (TransportType, error) {
	t := TransportType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks that the transport type is one of the known values.
func (t TransportType) Validate() error {
	if _, ok := getValidTransportTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport type is invalid",
			fmt.Errorf("%q is not a valid transport type", string(t)),
		)
	}
	return nil
}

// String returns the wire representation of the transport type.
func (t TransportType) String() string {
	return string(t)
}
