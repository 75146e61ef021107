package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

const defaultProjectPath = "AUv3TestHost.xcodeproj/project.pbxproj"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the validated command line.
type Config struct {
	ProjectPath  string
	ManifestPath string
	Vars         map[string]string
	BundlePrefix string
	DryRun       bool
	WritePlists  bool
	DumpPath     string
	LogLevel     string
	LogFormat    string
}

// varFlags collects repeated -var name=value flags.
type varFlags map[string]string

func (v varFlags) String() string {
	pairs := make([]string, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, k+"="+val)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[strings.TrimSpace(name)] = value
	return nil
}

// parseArgs processes command-line arguments. It returns the config, whether the
// program should exit cleanly (help was printed), or an ExitError.
func parseArgs(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("pbxtarget", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pbxtarget - add build targets to an Xcode project.

Usage:
  pbxtarget [options] [PROJECT]

Arguments:
  PROJECT
    Path to a project.pbxproj file or the .xcodeproj directory holding it.

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varFlags{}
	projectFlag := flagSet.String("project", "", "Path to the project file (default "+defaultProjectPath+").")
	manifestFlag := flagSet.String("manifest", "", "HCL manifest describing the targets. Defaults to the built-in AUv3 targets.")
	flagSet.Var(vars, "var", "Set a manifest variable, name=value. Repeatable.")
	bundlePrefixFlag := flagSet.String("bundle-prefix", "", "Bundle identifier prefix, shorthand for -var bundle_prefix=VALUE.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Check the edit without writing the project file.")
	plistsFlag := flagSet.Bool("plists", false, "Write missing Info.plist files for the added targets.")
	dumpFlag := flagSet.String("dump", "", "Write a JSON dump of the edited project to this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := defaultProjectPath
	if *projectFlag != "" {
		path = *projectFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 || (*projectFlag != "" && flagSet.NArg() > 0) {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: " + strings.Join(flagSet.Args(), " ")}
	}
	if filepath.Ext(path) == ".xcodeproj" {
		path = filepath.Join(path, "project.pbxproj")
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &Config{
		ProjectPath:  path,
		ManifestPath: *manifestFlag,
		Vars:         vars,
		BundlePrefix: *bundlePrefixFlag,
		DryRun:       *dryRunFlag,
		WritePlists:  *plistsFlag,
		DumpPath:     *dumpFlag,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}, false, nil
}

// newLogger creates a logger writing to outW. It does not set the global logger.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
