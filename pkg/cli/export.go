package cli

import (
	"fmt"
	"log/slog"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/export"
)

const exportFileDefault = "focusforge.xlsx"

var (
	outputFlag = &urfave.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path of the spreadsheet to write",
		Value:   exportFileDefault,
	}

	exportCmd = &urfave.Command{
		Name:            "export",
		HideHelpCommand: true,
		Usage:           "Export classes, flashcards and notes to an Excel workbook",
		Flags:           []urfave.Flag{outputFlag, debugFlag},
		Action:          cmdExport,
	}
)

func cmdExport(c *urfave.Context) error {
	applyFlags(c)
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	classes, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}
	decks, err := repo.Decks(c.Context)
	if err != nil {
		return fmt.Errorf("loading decks: %w", err)
	}
	list, err := repo.Notes(c.Context)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	path := c.String(outputFlag.Name)
	if err := export.Save(path, classes, decks, list); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	slog.Info("export complete", "path", path, "classes", len(classes), "decks", len(decks), "notes", len(list))
	return nil
}
