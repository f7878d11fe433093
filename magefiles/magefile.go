//go:build mage

// Package main contains Mage build targets for cord-insights developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"data",
	"data/catalog",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "cord-insights"
	cmdPkg  = "./cmd/cord-insights"

	// sqliteTags enables FTS5 in mattn/go-sqlite3 for the catalog.
	sqliteTags = "sqlite_fts5"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	if err := sh.RunV("go", "build", "-tags", sqliteTags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the catalog's build tags.
func Test() error {
	return sh.RunV("go", "test", "-tags", sqliteTags, "./...")
}

// Clean runs the cleaning pipeline, writing data/cleaned_metadata.csv.
func Clean() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "clean")
}

// Analyze prints the aggregation report for the cleaned dataset.
func Analyze() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "analyze")
}

// Dashboard serves the dashboard on the configured address.
func Dashboard() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "dashboard")
}
