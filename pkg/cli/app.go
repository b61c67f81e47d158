package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/focusforge/pkg/auth"
	"github.com/mchmarny/focusforge/pkg/config"
	"github.com/mchmarny/focusforge/pkg/data"
	"github.com/mchmarny/focusforge/pkg/logging"
)

const (
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	configDirFlag = &urfave.StringFlag{
		Name:    "config",
		Usage:   "Directory holding config.yaml and the local database (default: ~/.focusforge)",
		EnvVars: []string{"FOCUSFORGE_CONFIG"},
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml] (default: from config)",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir     string
	Config  *config.Config
	Format  string
	Secrets *auth.Secrets

	store data.Store
	repo  *data.Repository
	now   func() time.Time
}

// repository opens the configured store on first use.
func (a *appConfig) repository(ctx context.Context) (*data.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	sc := a.Config.Store
	switch sc.Type {
	case data.StorePostgres:
		if sc.DSN == "" {
			dsn, err := a.Secrets.Get(auth.PostgresDSN)
			if err != nil {
				return nil, fmt.Errorf("postgres store needs a dsn in config or `secret set %s`: %w", auth.PostgresDSN, err)
			}
			sc.DSN = dsn
		}
	case data.StoreRedis:
		if sc.Password == "" {
			if pwd, err := a.Secrets.Get(auth.RedisPassword); err == nil {
				sc.Password = pwd
			}
		}
	}

	s, err := data.Open(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", sc.Type, err)
	}
	slog.Debug("store opened", "type", sc.Type)

	a.store = s
	a.repo = data.NewRepository(s, a.Config.ClassCount)
	return a.repo, nil
}

func (a *appConfig) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Debug("error closing store", "error", err)
	}
	a.store = nil
	a.repo = nil
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 config.AppName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Study companion: weighted GPA, flashcards with spaced review, and notes",
		Metadata:             map[string]interface{}{},
		Flags: []urfave.Flag{
			debugFlag,
			configDirFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			gpaCmd,
			deckCmd,
			cardCmd,
			studyCmd,
			noteCmd,
			dashboardCmd,
			exportCmd,
			secretCmd,
			serverCmd,
			resetCmd,
		},
		Before: func(c *urfave.Context) error {
			dir := c.String(configDirFlag.Name)
			if dir == "" {
				d, _, err := config.GetOrCreateHomeDir(config.AppName)
				if err != nil {
					return fmt.Errorf("resolving home dir: %w", err)
				}
				dir = d
			}

			conf, err := config.ReadOrCreate(dir)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			level := conf.LogLevel
			if c.Bool(debugFlag.Name) {
				level = "debug"
			}
			slog.SetDefault(slog.New(logging.NewCLIHandler(c.App.ErrWriter, logging.ParseLogLevel(level))))

			format, err := parseFormat(c.String(formatFlag.Name), conf.Format)
			if err != nil {
				return err
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Dir:     dir,
				Config:  conf,
				Format:  format,
				Secrets: auth.NewSecrets(config.AppName, dir),
				now:     time.Now,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok {
				cfg.close()
			}
			return nil
		},
	}
}

// applyFlags lets subcommands accept the global --debug flag after the command name.
func applyFlags(c *urfave.Context) {
	if c.Bool(debugFlag.Name) {
		slog.SetDefault(slog.New(logging.NewCLIHandler(c.App.ErrWriter, slog.LevelDebug)))
	}
}

func parseFormat(flagVal, confVal string) (string, error) {
	v := flagVal
	if v == "" {
		v = confVal
	}
	switch v {
	case "", formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (permitted options: json, yaml)", v)
	}
}

func encode(c *urfave.Context, v any) error {
	return encodeTo(c.App.Writer, getConfig(c).Format, v)
}

func encodeTo(w io.Writer, format string, v any) error {
	if format == formatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
