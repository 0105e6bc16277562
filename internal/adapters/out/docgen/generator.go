// Package docgen produces order paperwork references. Rendering and storage
// of the actual PDFs live in the surrounding document service; the pipeline
// only needs a stable reference per document.
package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/ports"
)

// Generator allocates document references derived from the order identifier,
// so retried generation for the same order and kind yields the same
// reference and the order's document dedup holds across retries.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a document reference generator.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{
		logger: logger.With("component", "document_generator"),
	}
}

func prefixFor(kind order.DocumentKind) string {
	switch kind {
	case order.DocumentKindOrderConfirmation:
		return "CONF"
	case order.DocumentKindDeliveryConfirmation:
		return "DLV"
	case order.DocumentKindInvoice:
		return "INV"
	}
	return "DOC"
}

// Generate produces the reference for one document.
func (g *Generator) Generate(ctx context.Context, kind order.DocumentKind, o *order.TransportOrder) (ports.DocumentReference, error) {
	if err := kind.Validate(); err != nil {
		return "", err
	}

	if err := o.Validate(); err != nil {
		return "", err
	}

	reference := fmt.Sprintf("%s-%s", prefixFor(kind), strings.ToUpper(o.ID().String()[:8]))
	g.logger.InfoContext(ctx, "Document generated", "kind", string(kind), "reference", reference)

	return ports.DocumentReference(reference), nil
}
