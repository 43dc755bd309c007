package sales

// DocumentType identifies one of the five kinds of selling documents.
type DocumentType string

const (
	DocTypeOrder        DocumentType = "order"
	DocTypeTicket       DocumentType = "ticket"
	DocTypeDeliveryNote DocumentType = "delivery_note"
	DocTypeVatInvoice   DocumentType = "vat_invoice"
	DocTypeQuotation    DocumentType = "quotation"
)

// IsValid checks if the type is a known DocumentType
func (t DocumentType) IsValid() bool {
	switch t {
	case DocTypeOrder, DocTypeTicket, DocTypeDeliveryNote, DocTypeVatInvoice, DocTypeQuotation:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// Descriptor captures the per-type behaviour of the document pipeline.
// All five document types run through the same issue/reconcile/price engine;
// the descriptor is the only thing that varies between them.
type Descriptor struct {
	// MovesStock indicates whether issuing the document decrements product stock.
	// Quotations reserve nothing.
	MovesStock bool
	// HasVAT indicates whether totals include TVA on top of HT amounts.
	HasVAT bool
	// HasDeliveryFee indicates whether a delivery fee can be added to the total.
	HasDeliveryFee bool
	// HasStampDuty indicates whether the fiscal stamp is added to the total.
	HasStampDuty bool
	// HasStatusFlow indicates whether the document runs the fulfilment status
	// pipeline. Only customer orders do.
	HasStatusFlow bool
}

var descriptors = map[DocumentType]Descriptor{
	DocTypeOrder: {
		MovesStock:     true,
		HasDeliveryFee: true,
		HasStatusFlow:  true,
	},
	DocTypeTicket: {
		MovesStock: true,
	},
	DocTypeDeliveryNote: {
		MovesStock: true,
	},
	DocTypeVatInvoice: {
		MovesStock:   true,
		HasVAT:       true,
		HasStampDuty: true,
	},
	DocTypeQuotation: {
		HasVAT:       true,
		HasStampDuty: true,
	},
}

// Describe returns the pipeline descriptor for the document type.
func (t DocumentType) Describe() Descriptor {
	return descriptors[t]
}

// AllDocumentTypes lists every supported document type.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeOrder,
		DocTypeTicket,
		DocTypeDeliveryNote,
		DocTypeVatInvoice,
		DocTypeQuotation,
	}
}
