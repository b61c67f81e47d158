package export

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/gpa"
	"github.com/mchmarny/focusforge/pkg/notes"
)

const (
	SheetGPA        = "GPA"
	SheetFlashcards = "Flashcards"
	SheetNotes      = "Notes"

	defaultSheet = "Sheet1"
	dateLayout   = "2006-01-02"
	noScore      = "n/a"
)

var (
	gpaHeader   = []interface{}{"Class", "Grade", "Core", "Advanced", "Out Of", "Points", "Note"}
	cardHeader  = []interface{}{"Deck", "Front", "Back", "Difficulty", "Next Review"}
	notesHeader = []interface{}{"Title", "Subject", "Content", "Created", "Updated"}
)

// Workbook builds a spreadsheet with one sheet per collection.
// The caller must close the returned file.
func Workbook(classes []gpa.Class, decks []deck.Deck, list []notes.Note) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, SheetGPA); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to rename default sheet")
	}
	for _, name := range []string{SheetFlashcards, SheetNotes} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "failed to create sheet %s", name)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to create header style")
	}

	writers := []func(*excelize.File, int) error{
		func(f *excelize.File, s int) error { return writeClasses(f, s, classes) },
		func(f *excelize.File, s int) error { return writeCards(f, s, decks) },
		func(f *excelize.File, s int) error { return writeNotes(f, s, list) },
	}
	for _, w := range writers {
		if err := w(f, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Save writes the workbook to path.
func Save(path string, classes []gpa.Class, decks []deck.Deck, list []notes.Note) error {
	f, err := Workbook(classes, decks, list)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook: %s", path)
	}
	return nil
}

func writeClasses(f *excelize.File, style int, classes []gpa.Class) error {
	rows := [][]interface{}{gpaHeader}
	for _, s := range gpa.Breakdown(classes) {
		var points interface{} = ""
		if s.Scored {
			points = s.Points
		}
		rows = append(rows, []interface{}{s.Name, s.Grade, s.IsCore, s.Advanced, s.Ceiling, points, s.Reason})
	}

	var avg interface{} = noScore
	if v, err := gpa.Aggregate(classes); err == nil {
		avg = math.Round(v*100) / 100
	}
	rows = append(rows, []interface{}{}, []interface{}{"Weighted GPA", avg})

	return writeRows(f, SheetGPA, style, rows)
}

func writeCards(f *excelize.File, style int, decks []deck.Deck) error {
	rows := [][]interface{}{cardHeader}
	for _, d := range decks {
		for _, c := range d.Cards {
			rows = append(rows, []interface{}{d.Name, c.Front, c.Back, string(c.Difficulty), formatDate(c.NextReview)})
		}
	}
	return writeRows(f, SheetFlashcards, style, rows)
}

func writeNotes(f *excelize.File, style int, list []notes.Note) error {
	rows := [][]interface{}{notesHeader}
	for _, n := range list {
		rows = append(rows, []interface{}{n.Title, n.Subject, n.Content, formatDate(n.CreatedAt), formatDate(n.UpdatedAt)})
	}
	return writeRows(f, SheetNotes, style, rows)
}

func writeRows(f *excelize.File, sheet string, style int, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell name")
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return errors.Wrapf(err, "failed to write %s row %d", sheet, i+1)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return errors.Wrapf(err, "failed to style %s header", sheet)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
