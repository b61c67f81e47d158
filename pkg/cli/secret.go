package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/auth"
)

var (
	secretValueFlag = &urfave.StringFlag{
		Name:  "value",
		Usage: "Secret value (read from stdin when not set)",
	}

	secretCmd = &urfave.Command{
		Name:            "secret",
		HideHelpCommand: true,
		Usage:           fmt.Sprintf("Keep store credentials in the OS keychain [%s]", strings.Join(auth.Names, ", ")),
		Subcommands: []*urfave.Command{
			{
				Name:      "set",
				Usage:     "Save a secret",
				ArgsUsage: "<name>",
				Flags:     []urfave.Flag{secretValueFlag, debugFlag},
				Action:    cmdSetSecret,
			},
			{
				Name:      "get",
				Usage:     "Print a secret",
				ArgsUsage: "<name>",
				Flags:     []urfave.Flag{debugFlag},
				Action:    cmdGetSecret,
			},
		},
	}
)

func cmdSetSecret(c *urfave.Context) error {
	applyFlags(c)
	name := c.Args().First()
	if name == "" {
		return errors.New("secret name required")
	}

	value := c.String(secretValueFlag.Name)
	if value == "" {
		fmt.Fprintf(c.App.Writer, "Enter value for %s: ", name)
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading input: %w", err)
		}
		value = strings.TrimSpace(line)
	}

	if err := getConfig(c).Secrets.Set(name, value); err != nil {
		return fmt.Errorf("saving secret: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Secret %s saved\n", name)
	return nil
}

func cmdGetSecret(c *urfave.Context) error {
	applyFlags(c)
	name := c.Args().First()
	if name == "" {
		return errors.New("secret name required")
	}

	v, err := getConfig(c).Secrets.Get(name)
	if err != nil {
		return fmt.Errorf("reading secret: %w", err)
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}
