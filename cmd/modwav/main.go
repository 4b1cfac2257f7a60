// This tool dumps the samples of one instrument of a tracker module to
// 16 kHz mono wav files named sample-XX-YY.wav, XX being the instrument and
// YY the sub-sample, both in hex.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cwbudde/modwav"
	"github.com/cwbudde/modwav/tracker"
)

// Log file rotation.
const (
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logSuppress  = true
)

const usage = "Usage: modwav [flags] <module-path> <instrument-number>"

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	path       string
	instrument int
	dir        string
	format     modwav.Format
	meta       bool
	policy     modwav.Policy
	verbose    bool
	logPath    string
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stdout, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stdout, usage)
		return 1
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 1
	}

	log, closeLog := newLogger(cfg, stderr)
	defer closeLog()

	if err := export(cfg, tracker.Loader{}, log, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func parseArgs(args []string, stdout, stderr io.Writer) (*config, error) {
	flagSet := flag.NewFlagSet("modwav", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintln(stdout, usage)
		flagSet.SetOutput(stdout)
		flagSet.PrintDefaults()
		flagSet.SetOutput(stderr)
	}

	dir := flagSet.String("dir", ".", "directory the sample files are written to")
	format := flagSet.String("format", "wav", "output format, wav or aiff")
	meta := flagSet.Bool("meta", false, "store the sample name and loop in wav files")
	stop := flagSet.Bool("stop-on-error", false, "stop at the first sample that cannot be exported")
	verbose := flagSet.Bool("v", false, "log debug messages")
	logPath := flagSet.String("log", "", "write logs to this rotating file instead of stderr")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if flagSet.NArg() < 2 {
		return nil, errUsage
	}

	instrument, err := strconv.Atoi(flagSet.Arg(1))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid instrument number %q", errUsage, flagSet.Arg(1))
	}

	outFormat, err := modwav.ParseFormat(*format)
	if err != nil {
		return nil, err
	}

	cfg := &config{
		path:       flagSet.Arg(0),
		instrument: instrument,
		dir:        *dir,
		format:     outFormat,
		meta:       *meta,
		verbose:    *verbose,
		logPath:    *logPath,
	}

	if *stop {
		cfg.policy = modwav.StopOnError
	}

	return cfg, nil
}

// newLogger returns a JSON logger writing to w, or to a rotating file when a
// log path is set.
func newLogger(cfg *config, w io.Writer) (logging.Logger, func()) {
	var level int8 = logging.Warning
	if cfg.verbose {
		level = logging.Debug
	}

	if cfg.logPath == "" {
		return logging.New(level, w, logSuppress), func() {}
	}

	fileLog := &lumberjack.Logger{
		Filename:   cfg.logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	return logging.New(level, fileLog, logSuppress), func() { fileLog.Close() }
}

func export(cfg *config, loader modwav.Loader, log logging.Logger, out io.Writer) error {
	h, err := loader.Load(cfg.path)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.PlayerStart(modwav.PlayerSampleRate, 0); err != nil {
		return fmt.Errorf("%s: failed to start player: %w", cfg.path, err)
	}

	info, err := h.Info()
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.path, err)
	}

	if len(info.Modules) > 0 {
		log.Debug("module loaded", "path", cfg.path, "format", info.Modules[0].Format,
			"instruments", len(info.Modules[0].Instruments), "samples", len(info.Modules[0].Samples))
	}

	if err := os.MkdirAll(cfg.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	e := &modwav.Exporter{
		Handle:   h,
		Info:     info,
		Dir:      cfg.dir,
		Format:   cfg.format,
		Metadata: cfg.meta,
		Policy:   cfg.policy,
		Progress: out,
		Log:      log,
	}

	n, err := e.ExportInstrument(cfg.instrument)
	if err != nil {
		log.Error("export failed", "instrument", cfg.instrument, "written", n, "error", err.Error())
		return err
	}

	log.Info("export finished", "instrument", cfg.instrument, "written", n)

	return nil
}
