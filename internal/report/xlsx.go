package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcc/internal/column"
)

// Sheet names of the workbook
const (
	SheetCurve  = "Curve"
	SheetChecks = "Checks"
	SheetLayout = "Layout"
)

// WriteXLSX renders the curve points, checks and bar layout as a workbook.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCurve); err != nil {
		return err
	}
	for _, name := range []string{SheetChecks, SheetLayout} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	u := r.Column.Units
	fu, mu := u.ForceLabel(), u.MomentLabel()

	curveRows := [][]any{{
		"control", "c", "a", "εt", "φ",
		"Pn concrete (" + fu + ")", "Pn steel (" + fu + ")",
		"Pn (" + fu + ")", "Mn (" + mu + ")", "φPn (" + fu + ")", "φMn (" + mu + ")", "φPn capped (" + fu + ")",
	}}
	for _, p := range r.Curve.Capped() {
		// uncapped φPn is φ·Pn
		curveRows = append(curveRows, []any{
			p.Control, p.C, p.A, p.EpsilonT, p.Phi,
			p.PnConcrete, p.PnSteel, p.Pn, p.Mn, p.Phi * p.Pn, p.PhiMn, p.PhiPn,
		})
	}
	if err := writeRows(f, SheetCurve, curveRows, bold); err != nil {
		return err
	}

	checkRows := [][]any{{
		"label", "Pu (" + fu + ")", "Mu (" + mu + ")", "φPn (" + fu + ")", "φMn (" + mu + ")",
		"φ", "Pn concrete", "Pn steel", "Pn total", "utilization %", "result",
	}}
	for _, c := range r.Checks.Checks {
		checkRows = append(checkRows, []any{
			c.Demand.Label, c.Demand.Pu, c.Demand.Mu, c.PhiPn, c.PhiMn,
			c.Phi, c.PnConcrete, c.PnSteel, c.PnTotal, c.Utilization, passFail(c.Pass),
		})
	}
	if err := writeRows(f, SheetChecks, checkRows, bold); err != nil {
		return err
	}

	lu := u.LengthLabel()
	layoutRows := [][]any{{"bar", "offset (" + lu + ")", "lateral (" + lu + ")", "depth (" + lu + ")", "area (" + u.AreaLabel() + ")"}}
	for i, b := range r.Layout.Bars {
		layoutRows = append(layoutRows, []any{i + 1, b.Offset, b.Lateral, r.Layout.DepthOf(b), b.Area})
	}
	if err := writeRows(f, SheetLayout, layoutRows, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

// ReadDemands reads factored demands from the first sheet of a workbook.
// The first row is a header; each following row holds label, Pu and Mu.
// Blank rows are ignored. A row with a missing or non-numeric Pu or Mu is
// an error naming the cell.
func ReadDemands(r io.Reader) ([]column.Demand, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no demand rows")
	}

	var demands []column.Demand
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2
		pu, err := demandValue(row, 1, line, "Pu")
		if err != nil {
			return nil, err
		}
		mu, err := demandValue(row, 2, line, "Mu")
		if err != nil {
			return nil, err
		}
		demands = append(demands, column.Demand{Label: strings.TrimSpace(row[0]), Pu: pu, Mu: mu})
	}
	if len(demands) == 0 {
		return nil, fmt.Errorf("no demand rows")
	}
	return demands, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// demandValue parses the numeric cell at column col of a row.
func demandValue(row []string, col, line int, name string) (float64, error) {
	cell, _ := excelize.CoordinatesToCellName(col+1, line)
	if col >= len(row) || strings.TrimSpace(row[col]) == "" {
		return 0, fmt.Errorf("row %d: %s missing in %s", line, name, cell)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: %s in %s is not a number: %q", line, name, cell, row[col])
	}
	return v, nil
}
