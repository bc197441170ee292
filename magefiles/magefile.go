// Package main provides build targets for the rewind project using Mage.
//
// Usage:
//
//	mage build            Compile rewind binary to bin/
//	mage test             Run all tests (unit + integration)
//	mage testUnit         Run only unit tests (exclude tests/)
//	mage testIntegration  Run only integration tests
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install rewind to GOPATH/bin

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

const (
	binaryName = "rewind"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rewind"
)

// Build compiles the rewind binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests (unit and integration).
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs only unit tests, excluding the tests/ directory.
func TestUnit() error {
	pkgs, err := sh.Output("go", "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" && !strings.Contains(pkg, "/tests/") && !strings.HasSuffix(pkg, "/tests") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test"}, unitPkgs...)
	return sh.RunV("go", args...)
}

// TestIntegration runs only the integration tests.
func TestIntegration() error {
	return sh.RunV("go", "test", "./tests/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

// Install installs the rewind binary to GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", cmdDir)
}
