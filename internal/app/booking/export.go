package booking

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Reservations"

var exportHeader = []interface{}{
	"ID", "Date", "Time", "Guests", "Name", "Email", "Phone", "Status", "Special Requests", "Created At",
}

// ExportReservations writes every reservation into an xlsx workbook.
func (s *Service) ExportReservations(ctx context.Context, w io.Writer) error {
	reservations, err := s.Reservations(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range reservations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row: %w", err)
		}
		row := []interface{}{
			r.ID, r.Date, r.Time, r.Guests, r.Name, r.Email, r.Phone,
			string(r.Status), r.SpecialRequests, r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("reservations_exported", "Reservations exported", "", map[string]interface{}{
		"rows": len(reservations),
	})
	return nil
}
