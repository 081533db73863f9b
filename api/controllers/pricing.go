package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/api/validators"
	"github.com/angelmondragon/coilbill-backend/internal/pricing"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/angelmondragon/coilbill-backend/pkg/types"
)

type previewRequest struct {
	Items   []previewItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate *types.Money         `json:"taxRate"`
}

type previewItemRequest struct {
	Quantity  *types.Money `json:"quantity" validate:"required"`
	UnitPrice *types.Money `json:"unitPrice" validate:"required"`
}

type previewLine struct {
	Quantity  types.Money `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	Total     types.Money `json:"total"`
}

type previewResponse struct {
	Lines      []previewLine `json:"lines"`
	Subtotal   types.Money   `json:"subtotal"`
	GST        types.Money   `json:"gst"`
	GrandTotal types.Money   `json:"grandTotal"`
	TaxRate    types.Money   `json:"taxRate"`
}

func (p previewRequest) toInput() pricing.Input {
	in := pricing.Input{Lines: make([]pricing.Line, len(p.Items)), TaxRate: decimal.Zero}
	for i, item := range p.Items {
		in.Lines[i] = pricing.Line{Quantity: item.Quantity.Decimal, UnitPrice: item.UnitPrice.Decimal}
	}
	if p.TaxRate != nil {
		in.TaxRate = p.TaxRate.Decimal
	}
	return in
}

// PricingPreview runs the invoice calculator without persisting anything.
func PricingPreview(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := pricing.Calculate(req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := previewResponse{
			Lines:      make([]previewLine, len(res.Lines)),
			Subtotal:   types.NewMoney(res.Subtotal),
			GST:        types.NewMoney(res.GST),
			GrandTotal: types.NewMoney(res.GrandTotal),
			TaxRate:    types.NewMoney(res.TaxRate),
		}
		for i, line := range res.Lines {
			out.Lines[i] = previewLine{
				Quantity:  types.NewMoney(line.Quantity),
				UnitPrice: types.NewMoney(line.UnitPrice),
				Total:     types.NewMoney(line.Total),
			}
		}
		responses.WriteSuccess(w, out)
	}
}
