package quotations

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/coilbill-backend/internal/pricing"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Defaults fills terms and contact info when a quotation omits them.
type Defaults struct {
	Terms       Terms
	ContactInfo ContactInfo
}

// StandardDefaults returns the stock quotation text.
func StandardDefaults() Defaults {
	return Defaults{
		Terms: Terms{
			Taxes:    "Including taxes @18%",
			Validity: "Validity only 3 days",
			Supply:   "Material Supply 7 working Days",
		},
		ContactInfo: ContactInfo{
			Name:  "T THRINATH REDDY (Deputy Manager)",
			Phone: "8125237316",
		},
	}
}

// DefaultsFromConfig reads the defaults from configuration, falling back to
// the stock text for anything left blank.
func DefaultsFromConfig(cfg config.QuotationConfig) Defaults {
	d := StandardDefaults()
	d.Terms.Taxes = firstNonEmpty(cfg.DefaultTaxes, d.Terms.Taxes)
	d.Terms.Validity = firstNonEmpty(cfg.DefaultValidity, d.Terms.Validity)
	d.Terms.Supply = firstNonEmpty(cfg.DefaultSupply, d.Terms.Supply)
	d.ContactInfo.Name = firstNonEmpty(cfg.DefaultContactName, d.ContactInfo.Name)
	d.ContactInfo.Phone = firstNonEmpty(cfg.DefaultContactPhone, d.ContactInfo.Phone)
	return d
}

func (d Defaults) resolveTerms(in *TermsInput) Terms {
	out := d.Terms
	if in == nil {
		return out
	}
	if in.Taxes != nil {
		out.Taxes = *in.Taxes
	}
	if in.Validity != nil {
		out.Validity = *in.Validity
	}
	if in.Supply != nil {
		out.Supply = *in.Supply
	}
	return out
}

func (d Defaults) resolveContactInfo(in *ContactInfoInput) ContactInfo {
	out := d.ContactInfo
	if in == nil {
		return out
	}
	if in.Name != nil {
		out.Name = *in.Name
	}
	if in.Phone != nil {
		out.Phone = *in.Phone
	}
	return out
}

// ToStorage shapes a create payload into a row. Line totals, subtotal and
// total come from the pricing calculator; gst is always zero.
func ToStorage(in QuotationInput, defaults Defaults) (*models.Quotation, error) {
	fieldErrs := map[string]string{}
	brand := strings.TrimSpace(in.Brand)
	if brand == "" {
		fieldErrs["brand"] = "is required"
	}
	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		fieldErrs["customerName"] = "is required"
	}
	if len(in.Products) == 0 {
		fieldErrs["products"] = "must contain at least one line item"
	}
	if len(fieldErrs) > 0 {
		return nil, validationError(fieldErrs)
	}

	date := time.Now().UTC()
	if in.Date != nil {
		parsed, err := parseDate(*in.Date)
		if err != nil {
			return nil, validationError(map[string]string{"date": err.Error()})
		}
		if !parsed.IsZero() {
			date = parsed
		}
	}

	lines, res, err := NormalizeLines(in.Products)
	if err != nil {
		return nil, err
	}

	products, err := marshalJSON(lines)
	if err != nil {
		return nil, err
	}
	terms, err := marshalJSON(defaults.resolveTerms(in.Terms))
	if err != nil {
		return nil, err
	}
	contact, err := marshalJSON(defaults.resolveContactInfo(in.ContactInfo))
	if err != nil {
		return nil, err
	}

	paid := false
	if in.Paid != nil {
		paid = *in.Paid
	}

	return &models.Quotation{
		Brand:        brand,
		CustomerName: customer,
		Date:         date,
		Products:     products,
		Subtotal:     res.Subtotal,
		GST:          res.GST,
		Total:        res.GrandTotal,
		Paid:         paid,
		Terms:        terms,
		ContactInfo:  contact,
	}, nil
}

// FromStorage converts a row to the API shape. Null sub-documents resolve to
// defaults so clients never see a null terms or contactInfo.
func FromStorage(row *models.Quotation, defaults Defaults) (*QuotationDTO, error) {
	if row == nil {
		return nil, nil
	}

	products := []LineItem{}
	if !isNullJSON(row.Products) {
		if err := json.Unmarshal(row.Products, &products); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode quotation products")
		}
		if products == nil {
			products = []LineItem{}
		}
	}

	var termsIn *TermsInput
	if !isNullJSON(row.Terms) {
		termsIn = &TermsInput{}
		if err := json.Unmarshal(row.Terms, termsIn); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode quotation terms")
		}
	}

	var contactIn *ContactInfoInput
	if !isNullJSON(row.ContactInfo) {
		contactIn = &ContactInfoInput{}
		if err := json.Unmarshal(row.ContactInfo, contactIn); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode quotation contact info")
		}
	}

	id := row.ID.String()
	return &QuotationDTO{
		LegacyID:     id,
		ID:           id,
		Brand:        row.Brand,
		CustomerName: row.CustomerName,
		Date:         row.Date,
		Products:     products,
		Subtotal:     types.NewMoney(row.Subtotal),
		GST:          types.NewMoney(row.GST),
		Total:        types.NewMoney(row.Total),
		Paid:         row.Paid,
		Terms:        defaults.resolveTerms(termsIn),
		ContactInfo:  defaults.resolveContactInfo(contactIn),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// UpdateColumns maps a camelCase partial body to a column -> value map through
// the field table. Unknown keys fail; read-only keys are dropped. Subtotal and
// total are stored as sent, line totals are normalized.
func UpdateColumns(body map[string]json.RawMessage, defaults Defaults) (map[string]any, error) {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := map[string]any{}
	fieldErrs := map[string]string{}
	for _, key := range keys {
		m, ok := lookupAPI(key)
		if !ok {
			fieldErrs[key] = "unknown field"
			continue
		}
		if !m.Writable {
			continue
		}
		value, err := decodeColumn(m.Column, body[key], defaults)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Details() != nil {
				return nil, err
			}
			fieldErrs[key] = err.Error()
			continue
		}
		cols[m.Column] = value
	}

	if len(fieldErrs) > 0 {
		return nil, validationError(fieldErrs)
	}
	return cols, nil
}

func decodeColumn(column string, raw json.RawMessage, defaults Defaults) (any, error) {
	switch column {
	case "brand", "customername":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("must be a string")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return s, nil

	case "date":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("must be a date string")
		}
		parsed, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		if parsed.IsZero() {
			return nil, fmt.Errorf("must not be empty")
		}
		return parsed, nil

	case "products":
		var items []LineItemInput
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("must be an array of line items: %v", err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("must contain at least one line item")
		}
		lines, _, err := NormalizeLines(items)
		if err != nil {
			return nil, err
		}
		return marshalJSON(lines)

	case "subtotal", "total":
		var amount types.Money
		if err := json.Unmarshal(raw, &amount); err != nil {
			return nil, err
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("must not be negative")
		}
		return pricing.Round(amount.Decimal), nil

	case "gst":
		var amount types.Money
		if err := json.Unmarshal(raw, &amount); err != nil {
			return nil, err
		}
		return decimal.Zero, nil

	case "terms":
		var in *TermsInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("must be an object")
		}
		return marshalJSON(defaults.resolveTerms(in))

	case "contactinfo":
		var in *ContactInfoInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("must be an object")
		}
		return marshalJSON(defaults.resolveContactInfo(in))
	}
	return nil, fmt.Errorf("field is not writable")
}

// NormalizeLines requires qty, listPrice and coilPrice on every line,
// recomputes each line total and returns the calculator result.
func NormalizeLines(items []LineItemInput) ([]LineItem, *pricing.Result, error) {
	var lineErrs []pricing.LineError
	in := pricing.Input{Lines: make([]pricing.Line, len(items))}
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			lineErrs = append(lineErrs, pricing.LineError{Index: i, Field: "description", Reason: "is required"})
		}
		missing := false
		for _, f := range []struct {
			name  string
			value *types.Money
		}{{"qty", item.Qty}, {"listPrice", item.ListPrice}, {"coilPrice", item.CoilPrice}} {
			if f.value == nil {
				lineErrs = append(lineErrs, pricing.LineError{Index: i, Field: f.name, Reason: "is required"})
				missing = true
			}
		}
		if missing {
			continue
		}
		if item.ListPrice.IsNegative() {
			lineErrs = append(lineErrs, pricing.LineError{Index: i, Field: "listPrice", Reason: "must not be negative"})
		}
		line := pricing.Line{Quantity: item.Qty.Decimal, UnitPrice: item.CoilPrice.Decimal}
		in.Lines[i] = line
		for _, le := range pricing.ValidateLines([]pricing.Line{line}) {
			le.Index = i
			lineErrs = append(lineErrs, le)
		}
	}
	if len(lineErrs) > 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid line items").
			WithDetails(map[string]any{"products": lineErrs})
	}

	res, err := pricing.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = LineItem{
			Description: item.Description,
			Qty:         *item.Qty,
			ListPrice:   *item.ListPrice,
			CoilPrice:   *item.CoilPrice,
			Total:       types.NewMoney(res.Lines[i].Total),
		}
	}
	return out, res, nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func marshalJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode quotation document")
	}
	return datatypes.JSON(b), nil
}

func isNullJSON(raw datatypes.JSON) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func validationError(fields map[string]string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation").
		WithDetails(map[string]any{"fields": fields})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
