package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/alecthomas/kingpin.v2"

	"diskwarn/internal/models"
	"diskwarn/internal/services"
)

var version = "1.0.0"

// exitInterrupted is 128+SIGINT, the conventional status for a run cut
// short by the user.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := kingpin.New(filepath.Base(os.Args[0]), "Warn when mounted volumes cross configured usage thresholds.").UsageWriter(os.Stderr)
	app.Version(version)
	app.HelpFlag.Short('h')
	warning := app.Flag("warning", "Warning usage threshold, as a ratio (0.9) or percentage (90%).").Short('w').Default("0.9").String()
	critical := app.Flag("critical", "Critical usage threshold, as a ratio (0.95) or percentage (95%).").Short('c').Default("0.95").String()
	paths := app.Flag("path", "Mount point to check. Repeatable; all discoverable volumes when omitted.").Short('p').Strings()
	format := app.Flag("format", "Report format.").Default(services.FormatText).Enum(services.FormatText, services.FormatJSON)
	timeout := app.Flag("timeout", "Per-volume usage query timeout.").Default("5s").Duration()
	noColor := app.Flag("no-color", "Disable colored output.").Bool()
	verbose := app.Flag("verbose", "Enable verbose logging.").Short('v').Bool()
	kingpin.MustParse(app.Parse(args))

	logger := log.NewLogfmtLogger(os.Stderr)
	if !*verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	// Thresholds are checked eagerly, before any volume query.
	cfg, err := models.ParseThresholds(*warning, *critical)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		return services.ExitUnknown
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level.Debug(logger).Log("msg", "starting disk-warn",
		"warning", cfg.Warning, "critical", cfg.Critical, "timeout", *timeout)

	volumes, failures, err := services.ListVolumes(ctx, services.HostDisks(), *paths, *timeout, logger)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			level.Error(logger).Log("msg", "interrupted")
			return exitInterrupted
		}
		level.Error(logger).Log("msg", "volume enumeration failed", "err", err)
		fmt.Fprintln(os.Stderr, "no volumes evaluated")
		return services.ExitUnknown
	}

	result := services.EvaluateAll(volumes, cfg, failures)

	reporter := services.NewReporter(os.Stdout, os.Stderr, services.ReportOptions{
		Format:  *format,
		NoColor: *noColor,
	})
	if err := reporter.Emit(result); err != nil {
		level.Error(logger).Log("msg", "writing report failed", "err", err)
		return services.ExitUnknown
	}
	return services.ExitCode(result)
}
