// Package integration provides end-to-end tests that exercise the pcaeviz
// binary the way a user would: building it once, then running subcommands
// against fixture network directories.
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

// findProjectRoot walks up from the current directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// buildBinary compiles the pcaeviz binary into dir and returns its path.
func buildBinary(dir string) (string, error) {
	root, err := findProjectRoot()
	if err != nil {
		return "", err
	}
	bin := filepath.Join(dir, "pcaeviz")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/pcaeviz")
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("build binary: %w\n%s", err, out)
	}
	return bin, nil
}

// runBinary executes the built binary with the given arguments and working
// directory. It returns stdout; on failure the error wraps stderr, where
// the CLI reports problems and writes its log.
func runBinary(workDir string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%s: %w\n%s", args[0], err, stderr.String())
	}
	return stdout.String(), nil
}
