// Package report renders column analyses as PDF and XLSX documents.
package report

import (
	"time"

	"github.com/alexiusacademia/gorcc/internal/column"
)

// Report collects everything rendered for one column.
type Report struct {
	Title     string
	Column    *column.Column
	Layout    *column.Layout
	Curve     *column.Curve
	Checks    column.CheckSummary
	Detailing *column.Detailing
	Generated time.Time

	// DiagramPNG is an interaction diagram image embedded in the PDF when set
	DiagramPNG string
}

// Build runs the analysis of a column about one axis and checks its demands.
func Build(col *column.Column, axis column.Axis, opts column.Options) (*Report, error) {
	layout, err := col.Layout(axis)
	if err != nil {
		return nil, err
	}
	curve, err := col.Interaction(axis, opts)
	if err != nil {
		return nil, err
	}
	det, err := col.Detailing()
	if err != nil {
		return nil, err
	}

	title := col.Name
	if title == "" {
		title = "Column"
	}
	return &Report{
		Title:     title,
		Column:    col,
		Layout:    layout,
		Curve:     curve,
		Checks:    curve.CheckAll(col.Demands),
		Detailing: det,
		Generated: time.Now(),
	}, nil
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
