package cli

import (
	"errors"
	"fmt"
	"log/slog"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/gpa"
)

const noScoreDisplay = "n/a"

var (
	classNameFlag = &urfave.StringFlag{
		Name:  "name",
		Usage: "Class name (names containing AP, Adv or Advanced are weighted to 6.0)",
	}

	classGradeFlag = &urfave.StringFlag{
		Name:  "grade",
		Usage: "Percentage grade, 0-100",
	}

	classCoreFlag = &urfave.BoolFlag{
		Name:  "core",
		Usage: "Core class, weighted to 5.0",
	}

	gpaCmd = &urfave.Command{
		Name:            "gpa",
		HideHelpCommand: true,
		Usage:           "Manage classes and calculate the weighted GPA",
		Subcommands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List classes with their individual scores",
				Flags:  []urfave.Flag{debugFlag},
				Action: cmdListClasses,
			},
			{
				Name:   "add",
				Usage:  "Add a class",
				Flags:  []urfave.Flag{classNameFlag, classGradeFlag, classCoreFlag, debugFlag},
				Action: cmdAddClass,
			},
			{
				Name:      "set",
				Usage:     "Update a class",
				ArgsUsage: "<class-id>",
				Flags:     []urfave.Flag{classNameFlag, classGradeFlag, classCoreFlag, debugFlag},
				Action:    cmdSetClass,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a class (the last one cannot be removed)",
				ArgsUsage: "<class-id>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdRemoveClass,
			},
			{
				Name:   "calc",
				Usage:  "Calculate the weighted GPA",
				Flags:  []urfave.Flag{debugFlag},
				Action: cmdCalcGPA,
			},
		},
	}
)

// GPAResult is the outcome of a GPA calculation. GPA is nil when no class scored.
type GPAResult struct {
	GPA     *float64         `json:"gpa" yaml:"gpa"`
	Display string           `json:"display" yaml:"display"`
	Scored  int              `json:"scored" yaml:"scored"`
	Total   int              `json:"total" yaml:"total"`
	Classes []gpa.ClassScore `json:"classes,omitempty" yaml:"classes,omitempty"`
}

func calculate(classes []gpa.Class) *GPAResult {
	scores := gpa.Breakdown(classes)
	r := &GPAResult{
		Display: noScoreDisplay,
		Total:   len(classes),
		Classes: scores,
	}
	for _, s := range scores {
		if s.Scored {
			r.Scored++
		}
	}

	v, err := gpa.Aggregate(classes)
	if err != nil {
		if !errors.Is(err, gpa.ErrNoScorableClasses) {
			slog.Debug("unexpected aggregate error", "error", err)
		}
		return r
	}
	r.GPA = &v
	r.Display = fmt.Sprintf("%.2f", v)
	return r
}

func classUpdates(c *urfave.Context) []gpa.Update {
	list := make([]gpa.Update, 0)
	if c.IsSet(classNameFlag.Name) {
		list = append(list, gpa.SetName(c.String(classNameFlag.Name)))
	}
	if c.IsSet(classGradeFlag.Name) {
		list = append(list, gpa.SetGrade(c.String(classGradeFlag.Name)))
	}
	if c.IsSet(classCoreFlag.Name) {
		list = append(list, gpa.SetCore(c.Bool(classCoreFlag.Name)))
	}
	return list
}

func cmdListClasses(c *urfave.Context) error {
	applyFlags(c)
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	roster, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}
	return encode(c, gpa.Breakdown(roster))
}

func cmdAddClass(c *urfave.Context) error {
	applyFlags(c)
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	roster, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}

	roster, added := roster.Add()
	if u := classUpdates(c); len(u) > 0 {
		if roster, err = roster.Apply(added.ID, u...); err != nil {
			return fmt.Errorf("updating class: %w", err)
		}
		if added, err = roster.Get(added.ID); err != nil {
			return err
		}
	}

	if err := repo.SaveClasses(c.Context, roster); err != nil {
		return fmt.Errorf("saving classes: %w", err)
	}
	slog.Debug("class added", "id", added.ID)
	return encode(c, added)
}

func cmdSetClass(c *urfave.Context) error {
	applyFlags(c)
	id := c.Args().First()
	if id == "" {
		return errors.New("class id required")
	}
	u := classUpdates(c)
	if len(u) == 0 {
		return errors.New("nothing to update, set at least one of --name, --grade or --core")
	}

	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	roster, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}
	if roster, err = roster.Apply(id, u...); err != nil {
		return fmt.Errorf("updating class: %w", err)
	}
	if err := repo.SaveClasses(c.Context, roster); err != nil {
		return fmt.Errorf("saving classes: %w", err)
	}

	updated, err := roster.Get(id)
	if err != nil {
		return err
	}
	return encode(c, updated)
}

func cmdRemoveClass(c *urfave.Context) error {
	applyFlags(c)
	id := c.Args().First()
	if id == "" {
		return errors.New("class id required")
	}

	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	roster, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}
	if roster, err = roster.Remove(id); err != nil {
		return fmt.Errorf("removing class: %w", err)
	}
	if err := repo.SaveClasses(c.Context, roster); err != nil {
		return fmt.Errorf("saving classes: %w", err)
	}
	slog.Debug("class removed", "id", id, "remaining", len(roster))
	return encode(c, gpa.Breakdown(roster))
}

func cmdCalcGPA(c *urfave.Context) error {
	applyFlags(c)
	repo, err := getConfig(c).repository(c.Context)
	if err != nil {
		return err
	}

	roster, err := repo.Classes(c.Context)
	if err != nil {
		return fmt.Errorf("loading classes: %w", err)
	}

	r := calculate(roster)
	r.Classes = nil
	return encode(c, r)
}
