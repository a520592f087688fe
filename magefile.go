//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "wortwerk"

// Default target runs the build.
var Default = Build

// Build compiles the wortwerk binary.
func Build() error {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "devel"
	}
	ldflags := fmt.Sprintf("-X codeberg.org/snonux/wortwerk/internal.Version=%s", version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binaryName, "./cmd/wortwerk")
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and copies the binary into GOBIN (or GOPATH/bin).
func Install() error {
	mg.Deps(Build)

	gobin := os.Getenv("GOBIN")
	if gobin == "" {
		gopath, err := sh.Output("go", "env", "GOPATH")
		if err != nil {
			return err
		}
		gobin = filepath.Join(gopath, "bin")
	}
	if err := os.MkdirAll(gobin, 0755); err != nil {
		return err
	}

	dest := filepath.Join(gobin, binaryName)
	if err := sh.Copy(dest, binaryName); err != nil {
		return err
	}
	fmt.Println("Installed", dest)
	return nil
}

// Clean removes build artifacts.
func Clean() {
	os.Remove(binaryName)
}
