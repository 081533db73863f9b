package quotations

import (
	"bytes"

	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Quotations"

var exportHeader = []any{"Date", "Customer", "Brand", "Items", "Subtotal", "GST", "Total", "Paid", "ID"}

// BuildWorkbook renders quotations as a single-sheet xlsx workbook.
func BuildWorkbook(rows []QuotationDTO) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "prepare export sheet")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
	}

	for i, q := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve export cell")
		}
		paid := "No"
		if q.Paid {
			paid = "Yes"
		}
		subtotal, _ := q.Subtotal.Float64()
		gst, _ := q.GST.Float64()
		total, _ := q.Total.Float64()
		row := []any{
			q.Date.Format("2006-01-02"),
			q.CustomerName,
			q.Brand,
			len(q.Products),
			subtotal,
			gst,
			total,
			paid,
			q.ID,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "C", 28)
	_ = f.SetColWidth(exportSheet, "I", "I", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode export workbook")
	}
	return buf, nil
}
