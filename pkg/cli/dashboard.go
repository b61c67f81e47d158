package cli

import (
	"context"
	"fmt"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/dashboard"
	"github.com/mchmarny/focusforge/pkg/data"
)

var dashboardCmd = &urfave.Command{
	Name:            "dashboard",
	Aliases:         []string{"home"},
	HideHelpCommand: true,
	Usage:           "Show the study overview: decks, due cards and recent notes",
	Flags:           []urfave.Flag{debugFlag},
	Action:          cmdDashboard,
}

func buildDashboard(ctx context.Context, repo *data.Repository, now time.Time) (*dashboard.Summary, error) {
	decks, err := repo.Decks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading decks: %w", err)
	}
	list, err := repo.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	return dashboard.Build(decks, list, now), nil
}

func cmdDashboard(c *urfave.Context) error {
	applyFlags(c)
	cfg := getConfig(c)
	repo, err := cfg.repository(c.Context)
	if err != nil {
		return err
	}

	s, err := buildDashboard(c.Context, repo, cfg.now())
	if err != nil {
		return err
	}
	return encode(c, s)
}
