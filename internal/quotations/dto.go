package quotations

import (
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/types"
)

// Terms is the printed terms block of a quotation.
type Terms struct {
	Taxes    string `json:"taxes"`
	Validity string `json:"validity"`
	Supply   string `json:"supply"`
}

// ContactInfo is the sales contact printed on a quotation.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// LineItem is one billed row. Total is derived from Qty and CoilPrice.
type LineItem struct {
	Description string      `json:"description" validate:"required"`
	Qty         types.Money `json:"qty"`
	ListPrice   types.Money `json:"listPrice"`
	CoilPrice   types.Money `json:"coilPrice"`
	Total       types.Money `json:"total"`
}

// LineItemInput is a line as sent by a client. Amounts are pointers so an
// absent price is rejected instead of stored as zero.
type LineItemInput struct {
	Description string       `json:"description" validate:"required"`
	Qty         *types.Money `json:"qty"`
	ListPrice   *types.Money `json:"listPrice"`
	CoilPrice   *types.Money `json:"coilPrice"`
	Total       *types.Money `json:"total"`
}

// QuotationDTO is the API shape of a stored quotation. Both id and _id are
// emitted for clients written against the document store.
type QuotationDTO struct {
	LegacyID     string      `json:"_id"`
	ID           string      `json:"id"`
	Brand        string      `json:"brand"`
	CustomerName string      `json:"customerName"`
	Date         time.Time   `json:"date"`
	Products     []LineItem  `json:"products"`
	Subtotal     types.Money `json:"subtotal"`
	GST          types.Money `json:"gst"`
	Total        types.Money `json:"total"`
	Paid         bool        `json:"paid"`
	Terms        Terms       `json:"terms"`
	ContactInfo  ContactInfo `json:"contactInfo"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// TermsInput allows individual terms to be omitted and defaulted.
type TermsInput struct {
	Taxes    *string `json:"taxes"`
	Validity *string `json:"validity"`
	Supply   *string `json:"supply"`
}

// ContactInfoInput allows individual contact fields to be omitted and defaulted.
type ContactInfoInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// QuotationInput is the create payload. Subtotal, GST and Total are accepted
// for compatibility but recomputed; TaxRate is accepted and ignored.
type QuotationInput struct {
	Brand        string            `json:"brand" validate:"required"`
	CustomerName string            `json:"customerName" validate:"required"`
	Date         *string           `json:"date"`
	Products     []LineItemInput   `json:"products" validate:"required,min=1,dive"`
	Subtotal     *types.Money      `json:"subtotal"`
	GST          *types.Money      `json:"gst"`
	Total        *types.Money      `json:"total"`
	TaxRate      *types.Money      `json:"taxRate"`
	Paid         *bool             `json:"paid"`
	Terms        *TermsInput       `json:"terms"`
	ContactInfo  *ContactInfoInput `json:"contactInfo"`
}

// ListFilter narrows list and export reads. A nil Paid returns every quotation.
type ListFilter struct {
	Paid *bool
}

// SetPaidInput is the body of the paid toggle.
type SetPaidInput struct {
	Paid *bool `json:"paid" validate:"required"`
}
