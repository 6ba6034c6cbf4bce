// StackFit packs a list of boxes into the smallest of several candidate
// containers by trying every ordering and orientation of the boxes.
//
// Build:
//
//	go build -o stackfit ./cmd/stackfit
//
// Example:
//
//	stackfit -box tote:40x30x20*6 -container 80x60x40 -container 120x80x100 -pdf plan.pdf
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/piwi3910/StackFit/internal/engine"
	"github.com/piwi3910/StackFit/internal/export"
	"github.com/piwi3910/StackFit/internal/importer"
	"github.com/piwi3910/StackFit/internal/model"
	"github.com/piwi3910/StackFit/internal/project"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitNoFit = 3
)

const recentJobsLimit = 10

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath     string
	boxesFile      string
	containersFile string
	boxes          []model.BoxItem
	containers     []model.Extent
	jobPath        string
	saveJobPath    string
	deadline       time.Duration
	rotate3D       bool
	binarySearch   bool
	validate       bool
	pdfPath        string
	labelsPath     string
	xlsxPath       string
	dxfPath        string
	jsonOut        bool
	compare        bool
	logLevel       string
	backupPath     string
	restorePath    string

	set map[string]bool // flags given on the command line
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: map[string]bool{}}

	fs := flag.NewFlagSet("stackfit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&o.boxesFile, "boxes", "", "CSV or Excel box list")
	fs.StringVar(&o.containersFile, "containers", "", "CSV or Excel container list (counts are ignored)")
	fs.Func("box", "box as [name:]WxDxH[*count], repeatable", func(s string) error {
		item, err := parseBoxFlag(s)
		if err != nil {
			return err
		}
		o.boxes = append(o.boxes, item)
		return nil
	})
	fs.Func("container", "candidate container as [name:]WxDxH, repeatable", func(s string) error {
		e, err := parseContainerFlag(s)
		if err != nil {
			return err
		}
		o.containers = append(o.containers, e)
		return nil
	})
	fs.StringVar(&o.jobPath, "job", "", "load boxes, containers and settings from a job file")
	fs.StringVar(&o.saveJobPath, "save-job", "", "save the job and its result to this file")
	fs.DurationVar(&o.deadline, "deadline", 0, "time budget for the whole search, e.g. 2s")
	fs.BoolVar(&o.rotate3D, "rotate3d", true, "allow all six orientations instead of footprint turns only")
	fs.BoolVar(&o.binarySearch, "binary", true, "bisect candidate containers by volume")
	fs.BoolVar(&o.validate, "validate", false, "check the packed container for overlaps")
	fs.StringVar(&o.pdfPath, "pdf", "", "write a PDF loading plan")
	fs.StringVar(&o.labelsPath, "labels", "", "write a PDF of QR box labels")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "write an Excel workbook")
	fs.StringVar(&o.dxfPath, "dxf", "", "write a 3D DXF wireframe")
	fs.BoolVar(&o.jsonOut, "json", false, "print the result as JSON")
	fs.BoolVar(&o.compare, "compare", false, "compare the current settings with alternatives")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (default from config)")
	fs.StringVar(&o.backupPath, "backup", "", "export config and recent jobs to this file and exit")
	fs.StringVar(&o.restorePath, "restore", "", "import config from a backup file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// parseBoxFlag reads "[name:]WxDxH[*count]".
func parseBoxFlag(s string) (model.BoxItem, error) {
	name, rest := splitName(s)

	count := 1
	if i := strings.LastIndex(rest, "*"); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(rest[i+1:]))
		if err != nil || n <= 0 {
			return model.BoxItem{}, fmt.Errorf("invalid box count in %q", s)
		}
		count = n
		rest = strings.TrimSpace(rest[:i])
	}

	e, err := model.ParseExtent(rest)
	if err != nil {
		return model.BoxItem{}, err
	}
	if !model.NonEmpty(e) {
		return model.BoxItem{}, fmt.Errorf("%w: %q has a zero side", model.ErrInvalidExtent, s)
	}
	return model.NewBoxItem(name, e.Width, e.Depth, e.Height, count), nil
}

// parseContainerFlag reads "[name:]WxDxH".
func parseContainerFlag(s string) (model.Extent, error) {
	name, rest := splitName(s)
	e, err := model.ParseExtent(rest)
	if err != nil {
		return model.Extent{}, err
	}
	e.Name = name
	return e, nil
}

func splitName(s string) (name, rest string) {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return "", strings.TrimSpace(s)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	config, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "cannot load config %s: %v\n", opts.configPath, err)
		return exitError
	}

	levelName := config.LogLevel
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level, err := parseLevel(levelName)
	if err != nil {
		fmt.Fprintf(stderr, "invalid log level %q\n", levelName)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch {
	case opts.backupPath != "":
		if err := project.ExportAllData(opts.backupPath, config); err != nil {
			logger.Error("backup failed", "err", err)
			return exitError
		}
		logger.Info("backup written", "path", opts.backupPath)
		return exitOK
	case opts.restorePath != "":
		backup, err := project.ImportAllData(opts.restorePath)
		if err != nil {
			logger.Error("restore failed", "err", err)
			return exitError
		}
		if err := project.SaveAppConfig(opts.configPath, backup.Config); err != nil {
			logger.Error("restore failed", "err", err)
			return exitError
		}
		logger.Info("config restored", "path", opts.configPath, "jobs", len(backup.Jobs))
		return exitOK
	}

	job, err := buildJob(opts, config, logger)
	if err != nil {
		logger.Error("invalid input", "err", err)
		return exitUsage
	}
	if len(job.Boxes) == 0 {
		logger.Error("no boxes given; use -box, -boxes or -job")
		return exitUsage
	}
	if len(job.Containers) == 0 {
		logger.Error("no containers given; use -container, -containers, -job or default_containers in the config")
		return exitUsage
	}

	if opts.compare {
		printComparison(stdout, engine.CompareScenarios(engine.BuildDefaultScenarios(job.Settings), job.Boxes, job.Containers))
		return exitOK
	}

	packer := engine.New(job.Settings)
	packer.Logger = logger
	result, err := packer.Pack(job.Boxes, job.Containers)
	if err != nil {
		logger.Error("packing failed", "err", err)
		if errors.Is(err, engine.ErrNoContainers) {
			return exitNoFit
		}
		return exitError
	}
	job.Result = &result

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Error("cannot encode result", "err", err)
			return exitError
		}
	} else {
		printResult(stdout, result)
	}

	if opts.saveJobPath != "" {
		if err := project.SaveJob(opts.saveJobPath, job); err != nil {
			logger.Error("cannot save job", "err", err)
			return exitError
		}
		config.AddRecentJob(opts.saveJobPath, recentJobsLimit)
		if err := project.SaveAppConfig(opts.configPath, config); err != nil {
			logger.Warn("cannot update recent jobs", "err", err)
		}
	}

	if !result.Packed() {
		return exitNoFit
	}

	if err := writeExports(opts, result, job.Settings, logger); err != nil {
		logger.Error("export failed", "err", err)
		return exitError
	}
	return exitOK
}

// buildJob merges the job file, the config defaults and the command line.
// Command line boxes and containers replace those from the job file.
func buildJob(opts *options, config model.AppConfig, logger *slog.Logger) (project.Job, error) {
	var job project.Job
	var err error
	if opts.jobPath != "" {
		job, err = project.LoadJob(opts.jobPath)
	} else {
		job, err = project.NewJob("", config)
	}
	if err != nil {
		return job, err
	}

	boxes := opts.boxes
	if opts.boxesFile != "" {
		res := importer.Import(opts.boxesFile)
		if err := logImport(logger, opts.boxesFile, res); err != nil {
			return job, err
		}
		boxes = append(boxes, res.Boxes...)
	}
	if len(boxes) > 0 {
		job.Boxes = boxes
	}

	containers := opts.containers
	if opts.containersFile != "" {
		res := importer.Import(opts.containersFile)
		if err := logImport(logger, opts.containersFile, res); err != nil {
			return job, err
		}
		containers = append(containers, res.Extents()...)
	}
	if len(containers) > 0 {
		job.Containers = containers
	}

	if opts.set["deadline"] {
		job.Settings.DeadlineMillis = opts.deadline.Milliseconds()
	}
	if opts.set["rotate3d"] {
		job.Settings.Rotate3D = opts.rotate3D
	}
	if opts.set["binary"] {
		job.Settings.BinarySearch = opts.binarySearch
	}
	if opts.set["validate"] {
		job.Settings.ValidateLevels = opts.validate
	}
	return job, nil
}

func logImport(logger *slog.Logger, path string, res importer.ImportResult) error {
	for _, w := range res.Warnings {
		logger.Debug("import", "file", path, "warning", w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			logger.Error("import", "file", path, "error", e)
		}
		return fmt.Errorf("%s: %d rows could not be read", path, len(res.Errors))
	}
	return nil
}

func writeExports(opts *options, result model.PackResult, settings model.Settings, logger *slog.Logger) error {
	exports := []struct {
		path  string
		write func(string) error
	}{
		{opts.pdfPath, func(p string) error { return export.ExportPDF(p, result, settings) }},
		{opts.labelsPath, func(p string) error { return export.ExportLabels(p, result) }},
		{opts.xlsxPath, func(p string) error { return export.ExportExcel(p, result, settings) }},
		{opts.dxfPath, func(p string) error { return export.ExportDXF(p, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return fmt.Errorf("%s: %w", e.path, err)
		}
		logger.Info("written", "path", e.path)
	}
	return nil
}

func printResult(w io.Writer, result model.PackResult) {
	if !result.Packed() {
		reason := "no candidate container fits"
		if result.DeadlineReached {
			reason = "deadline reached before a fit was found"
		}
		fmt.Fprintf(w, "No fit: %s (%d of %d containers tried)\n", reason, result.Attempts, len(result.Candidates))
		return
	}

	c := result.Container
	fmt.Fprintf(w, "Container %s: %d boxes in %d levels, %.1f%% full, used %s\n",
		c.Extent(), c.BoxCount(), len(c.Levels), c.FillRatio()*100, c.UsedSpace().Encode())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tBOX\tSIZE\tX\tY\tZ")
	for i, l := range c.Levels {
		for _, p := range l.Placements {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", i+1, p.Box.Name, p.Box.Extent().Encode(), p.Space.X, p.Space.Y, p.Space.Z)
		}
	}
	tw.Flush()
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tCONTAINER\tBOXES\tLEVELS\tFILL\tTRIED\tELAPSED")
	for _, r := range results {
		container := "-"
		if r.Err != nil {
			container = "error: " + r.Err.Error()
		} else if r.Result.Packed() {
			container = r.Result.Container.Extent().String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\t%d\t%s\n",
			r.Scenario.Name, container, r.BoxesPlaced, r.Levels, r.FillPercent, r.Result.Attempts, r.Result.Elapsed.Round(time.Millisecond))
	}
	tw.Flush()
}
