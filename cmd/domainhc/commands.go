package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli"

	"domainhc/internal/heartbeat"
	"domainhc/internal/history"
	"domainhc/internal/marker"
	"domainhc/internal/platform/metrics"
	"domainhc/internal/registry"
	"domainhc/pkg/platform/sentinel"
)

const notSet = "(Not set)"

func (env *environment) create(c *cli.Context) error {
	statusOnly, expiryOnly := c.Bool("status-only"), c.Bool("expiry-only")
	if statusOnly && expiryOnly {
		return cli.NewExitError("--status-only and --expiry-only are mutually exclusive", 1)
	}
	mode := registry.ModeBoth
	switch {
	case statusOnly:
		mode = registry.ModeStatusOnly
	case expiryOnly:
		mode = registry.ModeExpiryOnly
	}

	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}

	var sum registry.Summary
	if domain := strings.TrimSpace(c.Args().First()); domain != "" {
		sum, err = svc.CreateDomain(env.ctx, domain, mode)
	} else {
		sum, err = svc.CreateFromFile(env.ctx, mode)
	}
	env.logger.Info("create finished", "created", sum.Created, "failed", sum.Failed, "rewritten", sum.Rewritten)
	return exitError(err)
}

func (env *environment) check(c *cli.Context) error {
	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}
	doc, err := svc.Load(env.ctx)
	if err != nil {
		return exitError(err)
	}
	entries, skipped := doc.Valid()
	for _, name := range skipped {
		env.logger.Warn("skipping domain without check ids", "domain", name)
	}
	if len(entries) == 0 {
		env.logger.Warn("no valid domains to check", "path", svc.Path())
		return nil
	}

	m := metrics.New()
	checks, err := env.newChecker(m)
	if err != nil {
		return exitError(err)
	}
	sum := checks.CheckAll(env.ctx, entries)
	env.logger.Info("check run finished",
		"checked", sum.Checked,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		"errors", sum.Errors,
	)

	if err := m.Push(env.cfg.PushgatewayURL, pushJob); err != nil {
		env.logger.Warn("metrics push failed", "error", err)
	}
	return nil
}

func (env *environment) remove(c *cli.Context) error {
	domain := strings.TrimSpace(c.Args().First())
	all, unused, force := c.Bool("all"), c.Bool("unused"), c.Bool("force")
	if domain == "" && !all && !unused {
		_ = cli.ShowCommandHelp(c, c.Command.Name)
		return cli.NewExitError("remove needs a domain, --all or --unused", 1)
	}

	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}

	var sum registry.Summary
	switch {
	case all:
		sum, err = svc.RemoveAll(env.ctx, force)
	case unused:
		sum, err = svc.RemoveUnused(env.ctx)
	default:
		sum, err = svc.RemoveDomain(env.ctx, domain, force)
	}
	if errors.Is(err, sentinel.ErrCancelled) {
		env.logger.Info("removal cancelled")
		return nil
	}
	env.logger.Info("remove finished", "deleted", sum.Deleted, "failed", sum.Failed, "rewritten", sum.Rewritten)
	return exitError(err)
}

func (env *environment) listChecks(c *cli.Context) error {
	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}
	checks, err := svc.ListChecks(env.ctx)
	if err != nil {
		return exitError(err)
	}
	if len(checks) == 0 {
		fmt.Fprintln(c.App.Writer, "No checks found.")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tSTATUS\tTAGS\tLAST PING")
	for _, check := range checks {
		last := "never"
		if check.LastPing != nil {
			last = check.LastPing.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", check.Name, check.ID, check.Status, heartbeat.JoinTags(check.Tags), last)
	}
	return w.Flush()
}

func (env *environment) listDomains(c *cli.Context) error {
	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}
	doc, err := svc.Load(env.ctx)
	if err != nil {
		return exitError(err)
	}
	entries := doc.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(c.App.Writer, "No domains in %s.\n", svc.Path())
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tSTATUS CHECK\tEXPIRY CHECK")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, orNotSet(e.StatusID), orNotSet(e.ExpiryID))
	}
	return w.Flush()
}

func (env *environment) deleteMarkers(c *cli.Context) error {
	f := marker.Filter{
		Domain: strings.TrimSpace(c.String("domain")),
		All:    c.Bool("all"),
	}
	if raw := c.String("type"); raw != "" {
		kind, ok := heartbeat.ParseKind(raw)
		if !ok {
			return cli.NewExitError(fmt.Sprintf("unknown marker type %q, want status or expiry", raw), 1)
		}
		f.Kind = kind
	}
	if f.All {
		f.Domain, f.Kind = "", ""
	}
	if err := f.Validate(); err != nil {
		_ = cli.ShowCommandHelp(c, c.Command.Name)
		return cli.NewExitError(err.Error(), 1)
	}

	store, err := env.newMarkers()
	if err != nil {
		return exitError(err)
	}
	n, err := store.Delete(env.ctx, f)
	if err != nil {
		return exitError(err)
	}
	env.logger.Info("markers deleted", "count", n, "domain", f.Domain, "kind", string(f.Kind), "all", f.All)
	return nil
}

func (env *environment) syncFile(*cli.Context) error {
	svc, err := env.newRegistry()
	if err != nil {
		return exitError(err)
	}
	sum, err := svc.Sync(env.ctx)
	env.logger.Info("sync finished", "added", sum.Added, "dropped", sum.Dropped, "rewritten", sum.Rewritten)
	return exitError(err)
}

func (env *environment) history(c *cli.Context) error {
	if env.cfg.DatabaseURL == "" {
		return cli.NewExitError("history requires DATABASE_URL", 1)
	}
	store, err := env.newHistory()
	if err != nil {
		return exitError(err)
	}
	records, err := store.List(env.ctx, history.Query{
		Domain: strings.TrimSpace(c.String("domain")),
		Limit:  c.Int("limit"),
	})
	if err != nil {
		return exitError(err)
	}
	if len(records) == 0 {
		fmt.Fprintln(c.App.Writer, "No evaluations recorded.")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECKED AT\tDOMAIN\tTIER\tDAYS LEFT\tEXPIRES\tSOURCE")
	for _, r := range records {
		days, expires := "-", "-"
		if r.DaysLeft != nil {
			days = strconv.Itoa(*r.DaysLeft)
		}
		if r.ExpiresAt != nil {
			expires = r.ExpiresAt.Format(time.DateOnly)
		}
		source := r.Source
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CheckedAt.Local().Format(time.DateTime), r.Domain, r.Tier, days, expires, source)
	}
	return w.Flush()
}

func orNotSet(id string) string {
	if id == "" {
		return notSet
	}
	return id
}
