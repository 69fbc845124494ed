// Package export renders the project register for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"docflow/internal/domain"
)

var registerHeader = []string{"Year", "Number", "Title", "Kind", "Status", "Business Area"}

func registerRow(p *domain.Project, areaNames map[string]string) []string {
	return []string{
		strconv.Itoa(p.Year),
		strconv.Itoa(p.Number),
		p.Title,
		string(p.Kind),
		string(p.Status),
		areaNames[p.BusinessAreaID.String()],
	}
}

// WriteCSV writes the project register as CSV.
func WriteCSV(w io.Writer, projects []domain.Project, areaNames map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(registerHeader); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for i := range projects {
		if err := cw.Write(registerRow(&projects[i], areaNames)); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

// WriteXLSX writes the project register as an xlsx workbook with one
// "Register" sheet.
func WriteXLSX(w io.Writer, projects []domain.Project, areaNames map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Register"
	f.SetSheetName("Sheet1", sheet)

	header := make([]interface{}, len(registerHeader))
	for i, h := range registerHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	for i := range projects {
		cells := registerRow(&projects[i], areaNames)
		row := make([]interface{}, len(cells))
		for j, v := range cells {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}
