package httpadapter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
)

var exportHeader = []string{
	"Recorded At (UTC)",
	"Recorded At (Local)",
	"Email",
	"Name",
	"Role",
	"Event",
	"Latitude",
	"Longitude",
	"Evidence",
	"Note",
}

// renderReportWorkbook writes report rows into an xlsx workbook. Columns
// mirror the spreadsheet mirror layout so exports and the mirror stay
// comparable.
func renderReportWorkbook(items []entities.AttendanceEvent, location *time.Location) ([]byte, error) {
	if location == nil {
		location = time.UTC
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Attendance"
	file.SetSheetName(file.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row, item := range items {
		for col, value := range exportRow(item, location) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func exportRow(item entities.AttendanceEvent, location *time.Location) []any {
	latitude := ""
	if item.Latitude != nil {
		latitude = fmt.Sprintf("%.6f", *item.Latitude)
	}
	longitude := ""
	if item.Longitude != nil {
		longitude = fmt.Sprintf("%.6f", *item.Longitude)
	}
	return []any{
		item.RecordedAt.UTC().Format(time.RFC3339),
		item.RecordedAt.In(location).Format("02/01/2006 15:04:05"),
		item.UserID,
		item.Name,
		item.Role,
		string(item.Type),
		latitude,
		longitude,
		item.EvidenceRef,
		item.Note,
	}
}
