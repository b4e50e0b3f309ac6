//go:build mage

// Package main contains Mage build targets for wbclaims developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	".wbclaims",
	".secrets",
}

// Init creates the cache and secrets directories.
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
	binName = "wbclaims"
	cmdPkg  = "./cmd/wbclaims"
)

// Build compiles the CLI binary into bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check vets then tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Datatypes builds the CLI and compares Wikidata's property datatypes with
// the supported ones.
func Datatypes() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "datatypes")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
