package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soapywu/pbxtarget/manifest"
	"github.com/soapywu/pbxtarget/pbxparser"
	"github.com/soapywu/pbxtarget/pbxproj"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Progress
// messages go to stdout, diagnostics to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	config, shouldExit, err := parseArgs(args, stderr)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if shouldExit {
		return 0
	}

	logger := newLogger(config.LogLevel, config.LogFormat, stderr)
	if err := execute(config, logger, stdout); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stdout, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadManifest(config *Config) (*manifest.Manifest, error) {
	vars := make(map[string]string, len(config.Vars)+1)
	for k, v := range config.Vars {
		vars[k] = v
	}
	if config.BundlePrefix != "" {
		vars[manifest.BundlePrefixVar] = config.BundlePrefix
	}
	if config.ManifestPath == "" {
		return manifest.Parse(manifest.DefaultSource(), manifest.DefaultFilename, vars)
	}
	return manifest.Load(config.ManifestPath, vars)
}

func execute(config *Config, logger *slog.Logger, stdout io.Writer) error {
	m, err := loadManifest(config)
	if err != nil {
		return err
	}
	logger.Debug("Manifest loaded.", "manifest", m.Filename, "targets", m.Names())

	project, err := pbxproj.Load(config.ProjectPath, pbxproj.WithLogger(logger))
	if err != nil {
		var parseErr *pbxparser.ParseError
		if errors.As(err, &parseErr) {
			return &ExitError{Code: 1, Message: "Error parsing project file: " + err.Error()}
		}
		return &ExitError{Code: 1, Message: "Error reading project file: " + err.Error()}
	}

	var pending []pbxproj.TargetSpec
	var existing []string
	for _, spec := range m.Targets {
		if project.HasTarget(spec.Name) {
			existing = append(existing, spec.Name)
			continue
		}
		pending = append(pending, spec)
	}
	if len(pending) == 0 {
		fmt.Fprintf(stdout, "%s target already exists\n", m.Targets[0].Name)
		return dump(project, config.DumpPath)
	}
	for _, name := range existing {
		fmt.Fprintf(stdout, "%s target already exists\n", name)
	}

	names := make([]string, len(pending))
	for i, spec := range pending {
		names[i] = spec.Name
	}
	fmt.Fprintf(stdout, "Adding %s...\n", describeTargets(names))

	for _, spec := range pending {
		target, err := project.AddTarget(spec)
		if err != nil {
			return err
		}
		logger.Info("Target added.", "name", target.Name, "uuid", target.UUID, "phases", len(target.BuildPhases))
		if !config.DryRun {
			fmt.Fprintf(stdout, "✓ Added target %s\n", target.Name)
		}
	}

	if err := dump(project, config.DumpPath); err != nil {
		return err
	}

	if config.DryRun {
		if _, err := project.Serialize(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "✓ Project file checked")
		fmt.Fprintln(stdout, "⚠ Dry run: project file left unchanged")
		return nil
	}

	if err := project.Save(config.ProjectPath); err != nil {
		return err
	}
	if config.WritePlists {
		// the directory holding the .xcodeproj bundle
		root := filepath.Dir(filepath.Dir(config.ProjectPath))
		for _, spec := range pending {
			path, created, err := pbxproj.WriteInfoPlist(root, spec)
			if err != nil {
				return err
			}
			logger.Info("Info.plist checked.", "path", path, "created", created)
		}
	}
	fmt.Fprintln(stdout, "✓ Project file updated")
	return nil
}

// describeTargets renders "A target", "A and B targets" or "A, B and C targets".
func describeTargets(names []string) string {
	switch len(names) {
	case 0:
		return "no targets"
	case 1:
		return names[0] + " target"
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1] + " targets"
}

func dump(project *pbxproj.PbxProject, path string) error {
	if path == "" {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump %s: %w", path, err)
	}
	defer file.Close()
	if err := project.Dump(file); err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	return file.Close()
}
