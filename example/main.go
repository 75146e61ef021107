// Command example edits an existing target through the pbxproj package instead
// of a manifest: it adds shader sources with their header and a preset resource,
// links Metal, then writes the project back with the usual checks.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soapywu/pbxtarget/pbxproj"
)

func main() {
	projectPath := flag.String("project", "project.pbxproj", "project file to edit")
	targetName := flag.String("target", "AUv3TestHost", "target to extend")
	dumpPath := flag.String("dump", "", "write JSON dumps of the model before and after the edit, with this prefix")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	project, err := pbxproj.Load(*projectPath, pbxproj.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to load project.", "path", *projectPath, "error", err)
		os.Exit(1)
	}

	dumpToFile := func(name string) {
		if *dumpPath == "" {
			return
		}
		file, err := os.Create(*dumpPath + name)
		if err != nil {
			logger.Error("Failed to create dump.", "error", err)
			os.Exit(1)
		}
		defer file.Close()
		if err := project.Dump(file); err != nil {
			logger.Error("Failed to dump project.", "error", err)
			os.Exit(1)
		}
	}

	dumpToFile("Original.json")
	if err := project.AddSourceFile(*targetName, "Shaders.metal"); err != nil {
		logger.Warn("Source not added.", "error", err)
	}
	if err := project.AddHeaderFile(*targetName, "ShaderTypes.h"); err != nil {
		logger.Warn("Header not added.", "error", err)
	}
	if err := project.AddToSearchPaths("HEADER_SEARCH_PATHS", "$(PROJECT_DIR)/Shaders", "", *targetName); err != nil {
		logger.Warn("Search path not added.", "error", err)
	}
	if err := project.AddResourceFile(*targetName, "Presets.json"); err != nil {
		logger.Warn("Resource not added.", "error", err)
	}
	if err := project.AddFramework(*targetName, "Metal.framework"); err != nil {
		logger.Warn("Framework not added.", "error", err)
	}
	if err := project.AddBuildProperty("MTL_FAST_MATH", "YES", "", *targetName); err != nil {
		logger.Warn("Build setting not added.", "error", err)
	}
	dumpToFile("Modified.json")

	if err := project.Save(*projectPath); err != nil {
		logger.Error("Failed to save project.", "error", err)
		os.Exit(1)
	}
	logger.Info("Project saved.", "path", *projectPath)
}
