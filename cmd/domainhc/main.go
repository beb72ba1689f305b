package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

var (
	VERSION = "v0.1.0"
	DATE    string
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	env := &environment{}

	app := cli.NewApp()
	app.Name = "domainhc"
	app.Usage = fmt.Sprintf("manage heartbeat status and expiry checks for a list of domains (%s)", DATE)
	app.Version = VERSION
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug, d",
			EnvVar: "DEBUG",
			Usage:  "enable debug logging.",
		},
		cli.StringFlag{
			Name:   "env-file",
			EnvVar: "ENV_FILE",
			Usage:  "dotenv file loaded before reading the environment.",
			Value:  ".env",
		},
		cli.StringFlag{
			Name:   "domain-file",
			EnvVar: "DOMAIN_FILE",
			Usage:  "registry file of domains and check ids.",
		},
	}
	app.Before = env.setup
	app.After = env.teardown
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "ensure checks exist for domains; processes the whole file when no domain is given",
			ArgsUsage: "[domain]",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "status-only", Usage: "only create the status check."},
				cli.BoolFlag{Name: "expiry-only", Usage: "only create the expiry check."},
			},
			Action: env.timed("create", env.create),
		},
		{
			Name:   "check",
			Usage:  "check status and expiry of every configured domain",
			Action: env.timed("check", env.check),
		},
		{
			Name:      "remove",
			Usage:     "remove checks from the API and the domain file",
			ArgsUsage: "(<domain> | --all | --unused)",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "all", Usage: "DANGER: remove ALL checks and clear the domain file."},
				cli.BoolFlag{Name: "unused", Usage: "remove API checks not listed in the domain file."},
				cli.BoolFlag{Name: "force, f", Usage: "skip confirmation prompts."},
			},
			Action: env.timed("remove", env.remove),
		},
		{
			Name:   "list-checks",
			Usage:  "list every check on the account",
			Action: env.timed("list-checks", env.listChecks),
		},
		{
			Name:   "list-domains",
			Usage:  "list the domains configured in the domain file",
			Action: env.timed("list-domains", env.listDomains),
		},
		{
			Name:  "delete-markers",
			Usage: "delete freshness markers",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "domain, d", Usage: "only markers of this domain."},
				cli.StringFlag{Name: "type, t", Usage: "only markers of this kind (status or expiry)."},
				cli.BoolFlag{Name: "all, a", Usage: "delete every marker, ignoring other filters."},
			},
			Action: env.timed("delete-markers", env.deleteMarkers),
		},
		{
			Name:   "sync-file",
			Usage:  "sync the domain file with the API",
			Action: env.timed("sync-file", env.syncFile),
		},
		{
			Name:  "history",
			Usage: "show recorded expiry evaluations (requires DATABASE_URL)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "domain, d", Usage: "only this domain."},
				cli.IntFlag{Name: "limit, n", Usage: "maximum rows.", Value: 50},
			},
			Action: env.timed("history", env.history),
		},
	}
	return app
}
