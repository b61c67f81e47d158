package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/data"
)

var (
	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	resetCmd = &cli.Command{
		Name:            "reset",
		Usage:           "Delete all classes, decks and notes and start fresh",
		HideHelpCommand: true,
		Flags:           []cli.Flag{yesFlag, debugFlag},
		Action:          cmdReset,
	}
)

func cmdReset(c *cli.Context) error {
	applyFlags(c)
	cfg := getConfig(c)

	if !c.Bool(yesFlag.Name) {
		fmt.Fprintf(c.App.Writer, "This will permanently delete all data in the %s store (%s)\n",
			cfg.Config.Store.Type, strings.Join(data.Keys, ", "))
		fmt.Fprint(c.App.Writer, "Are you sure? [y/N]: ")

		answer, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("reading input: %w", err)
		}

		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(c.App.Writer, "Aborted.")
			return nil
		}
	}

	repo, err := cfg.repository(c.Context)
	if err != nil {
		return err
	}
	if err := repo.Reset(c.Context); err != nil {
		return fmt.Errorf("resetting data: %w", err)
	}

	slog.Info("data deleted", "store", cfg.Config.Store.Type)
	fmt.Fprintln(c.App.Writer, "Reset complete.")
	return nil
}
