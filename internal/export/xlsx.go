package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

func buildWorkbook(rows []domain.EnrichedRow) (*excelize.File, error) {
	withReference := HasReferences(rows)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := Headers(withReference)
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, 0, len(headers))
		cells = append(cells, row.EAN)
		if withReference {
			cells = append(cells, row.Reference)
		}
		cells = append(cells,
			row.Title,
			row.FreeStock,
			row.SalesTotal,
			row.ForecastMin4W,
			row.IncomingQty,
			row.SellPrice,
			row.BuyPrice,
			row.ShippingCost,
			row.OtherCost,
			row.SupplierName,
			row.MOQ,
			row.LeadTimeDays,
			row.StockValue,
			row.UnitLandedCost,
			row.Status.Label(),
			row.OrderAdvice,
		)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", row.EAN, err)
		}
	}

	return f, nil
}

// WriteXLSX streams the enriched rows as an XLSX workbook with a single
// report sheet.
func WriteXLSX(w io.Writer, rows []domain.EnrichedRow) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to the given path.
func SaveXLSX(path string, rows []domain.EnrichedRow) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}
