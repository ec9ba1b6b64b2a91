package check

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	chk "github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/catalog"
	"github.com/scimtools/scim-checker/pkg/check/runner"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

const (
	configFileDesc = "input " + config.FlagDescConfFile
)

var (
	configAlias = []string{"f"}
)

func NewCommand() *cli.Command {
	cmd := &cli.Command{
		Name:    "check",
		Usage:   "conformance check commands",
		Aliases: []string{"c"},
		Subcommands: []*cli.Command{
			{
				Name:  "get-available",
				Usage: "lists the available conformance checks",
				Flags: []cli.Flag{},
				Action: func(c *cli.Context) error {
					registry := catalog.NewCatalog(c.Context, &config.Settings{}, &chk.State{})
					for _, id := range registry.List() {
						fmt.Println("- " + id)
					}
					return nil
				},
			},
			{
				Name:  "run",
				Usage: "run the conformance checks against a SCIM server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: config.FlagHost, Usage: config.FlagDescHost},
					&cli.StringFlag{Name: config.FlagToken, Usage: config.FlagDescToken},
					&cli.StringFlag{Name: config.FlagTokenFile, Usage: config.FlagDescTokenFile},
					&cli.StringSliceFlag{Name: config.FlagResourceType, Usage: config.FlagDescResourceType},
					&cli.StringSliceFlag{Name: config.FlagCheck, Usage: config.FlagDescCheck},
					&cli.StringSliceFlag{Name: config.FlagConfigFile, Aliases: configAlias, Usage: configFileDesc},
					&cli.BoolFlag{Name: config.FlagVerbose, Aliases: []string{"v"}, Usage: config.FlagDescVerbose},
					&cli.BoolFlag{Name: config.FlagNoColor, Usage: config.FlagDescNoColor},
				},
				Action: runChecks,
			},
		},
	}
	return cmd
}

func runChecks(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.NewSettings(c.StringSlice(config.FlagConfigFile)...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Flags override configuration file and environment values.
	if v := c.String(config.FlagHost); v != "" {
		cfg.Host = v
	}
	if v := c.String(config.FlagToken); v != "" {
		cfg.Credential = v
	}
	if v := c.String(config.FlagTokenFile); v != "" {
		cfg.CredentialFile = v
		if err := cfg.LoadCredential(); err != nil {
			logrus.WithError(err).Fatal("Failed to read credential file")
		}
	}
	if v := c.StringSlice(config.FlagResourceType); len(v) > 0 {
		cfg.ResourceTypes = v
	}
	if v := c.StringSlice(config.FlagCheck); len(v) > 0 {
		cfg.Checks.Enabled = v
	}

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.Logging.Location != "" {
		logging.SetUpLogging(cfg.Logging.Level, logging.LogFormatJSON)
		_ = logging.LogToFile(cfg.Logging.Location)
	}

	var opts []scim.Option
	if cfg.Credential != "" {
		opts = append(opts, scim.WithBearerToken(cfg.Credential))
	}
	client := scim.NewClient(&http.Client{}, cfg.Host, opts...)

	state := &chk.State{}
	engine := runner.New(cfg, catalog.NewCatalog(ctx, cfg, state), client)

	report, err := engine.Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to run conformance checks")
	}

	verbose := c.Bool(config.FlagVerbose)
	noColor := c.Bool(config.FlagNoColor)
	hasErrors := false
	report.ReadFromReport(func(rep *chk.Report) {
		for _, res := range rep.Results {
			fmt.Println(res.Status.FormatStatus(noColor), res.Title)
			if res.Reason != "" {
				fmt.Println("  ", res.Reason)
				if verbose && res.Data != nil {
					fmt.Println("  ", formatData(res.Data))
				}
			}
		}
		hasErrors = rep.HasErrors()
	})

	if hasErrors {
		return cli.Exit("", 1)
	}
	return nil
}

func formatData(data any) string {
	switch v := data.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	if b, err := json.Marshal(data); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%+v", data)
}
