package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/data"
	"github.com/mchmarny/focusforge/pkg/notes"
)

var (
	searchFlag = &urfave.StringFlag{
		Name:    "search",
		Aliases: []string{"q"},
		Usage:   "Only notes whose title or content contains this text",
	}

	subjectFilterFlag = &urfave.StringFlag{
		Name:  "subject",
		Usage: fmt.Sprintf("Only notes of this subject [%s]", strings.Join(notes.Subjects, ", ")),
		Value: notes.AllSubjects,
	}

	titleFlag = &urfave.StringFlag{
		Name:  "title",
		Usage: "Note title",
	}

	contentFlag = &urfave.StringFlag{
		Name:  "content",
		Usage: "Note content",
	}

	subjectFlag = &urfave.StringFlag{
		Name:  "subject",
		Usage: fmt.Sprintf("Note subject [%s]", strings.Join(notes.Subjects, ", ")),
	}

	noteCmd = &urfave.Command{
		Name:            "note",
		HideHelpCommand: true,
		Usage:           "Manage study notes",
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List notes, newest first",
				Flags:  []urfave.Flag{searchFlag, subjectFilterFlag, debugFlag},
				Action: cmdListNotes,
			},
			{
				Name:   "create",
				Usage:  "Create a note",
				Flags:  []urfave.Flag{titleFlag, contentFlag, subjectFlag, debugFlag},
				Action: cmdCreateNote,
			},
			{
				Name:      "edit",
				Usage:     "Edit a note",
				ArgsUsage: "<note-id>",
				Flags:     []urfave.Flag{titleFlag, contentFlag, subjectFlag, debugFlag},
				Action:    cmdEditNote,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a note",
				ArgsUsage: "<note-id>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdDeleteNote,
			},
		},
	}
)

func loadNotes(c *urfave.Context) (*data.Repository, []notes.Note, error) {
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return nil, nil, err
	}
	list, err := repo.Notes(c.Context)
	if err != nil {
		return nil, nil, fmt.Errorf("loading notes: %w", err)
	}
	return repo, list, nil
}

func cmdListNotes(c *urfave.Context) error {
	applyFlags(c)
	_, list, err := loadNotes(c)
	if err != nil {
		return err
	}
	return encode(c, notes.Filter(list, c.String(searchFlag.Name), c.String(subjectFilterFlag.Name)))
}

func cmdCreateNote(c *urfave.Context) error {
	applyFlags(c)
	repo, list, err := loadNotes(c)
	if err != nil {
		return err
	}

	nn := notes.NewNote{
		Title:   c.String(titleFlag.Name),
		Content: c.String(contentFlag.Name),
		Subject: c.String(subjectFlag.Name),
	}
	list, n, err := notes.Create(list, nn, getConfig(c).now())
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}
	if err := repo.SaveNotes(c.Context, list); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	slog.Debug("note created", "id", n.ID, "subject", n.Subject)
	return encode(c, n)
}

func cmdEditNote(c *urfave.Context) error {
	applyFlags(c)
	id := c.Args().First()
	if id == "" {
		return errors.New("note id required")
	}

	repo, list, err := loadNotes(c)
	if err != nil {
		return err
	}
	current, err := notes.Get(list, id)
	if err != nil {
		return err
	}

	un := notes.UpdateNote{
		Title:   current.Title,
		Content: current.Content,
		Subject: c.String(subjectFlag.Name),
	}
	if c.IsSet(titleFlag.Name) {
		un.Title = c.String(titleFlag.Name)
	}
	if c.IsSet(contentFlag.Name) {
		un.Content = c.String(contentFlag.Name)
	}

	list, n, err := notes.Edit(list, id, un, getConfig(c).now())
	if err != nil {
		return fmt.Errorf("editing note: %w", err)
	}
	if err := repo.SaveNotes(c.Context, list); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return encode(c, n)
}

func cmdDeleteNote(c *urfave.Context) error {
	applyFlags(c)
	id := c.Args().First()
	if id == "" {
		return errors.New("note id required")
	}

	repo, list, err := loadNotes(c)
	if err != nil {
		return err
	}
	if list, err = notes.Delete(list, id); err != nil {
		return err
	}
	if err := repo.SaveNotes(c.Context, list); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	slog.Debug("note deleted", "id", id)
	return nil
}
