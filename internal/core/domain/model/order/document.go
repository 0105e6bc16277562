package order

import (
	"fmt"
	"time"

	"freightflow/internal/pkg/errs"
)

// DocumentKind identifies the kind of generated document attached to an order.
type DocumentKind string

const (
	DocumentKindOrderConfirmation    DocumentKind = "ORDER_CONFIRMATION"
	DocumentKindDeliveryConfirmation DocumentKind = "DELIVERY_CONFIRMATION"
	DocumentKindInvoice              DocumentKind = "INVOICE"
)

func getValidDocumentKinds() map[DocumentKind]struct{} {
	return map[DocumentKind]struct{}{
		DocumentKindOrderConfirmation:    {},
		DocumentKindDeliveryConfirmation: {},
		DocumentKindInvoice:              {},
	}
}

// Validate checks that the document kind is one of the known values.
func (k DocumentKind) Validate() error {
	if _, ok := getValidDocumentKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"document kind is invalid",
			fmt.Errorf("%q is not a valid document kind", string(k)),
		)
	}
	return nil
}

// Document is a reference to a generated document (the document generator is
// an external collaborator; the order only stores the reference). Documents
// are append-only: attaching never discards previously attached entries, and
// re-attaching the same reference is a no-op.
type Document struct {
	// Kind classifies the document.
	Kind DocumentKind

	// Reference is the external document identifier returned by the generator.
	Reference string

	// IssuedAt is when the document was generated.
	IssuedAt time.Time
}

// Validate checks the document has a valid kind and a non-empty reference.
func (d Document) Validate() error {
	if err := d.Kind.Validate(); err != nil {
		return err
	}

	if d.Reference == "" {
		return errs.NewValueIsRequiredError("document reference")
	}

	return nil
}
