//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"fuzz": Bench.Fuzz,
	"fz":   Bench.Fast,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Top-level targets.

// Build compiles the gosmap binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/gosmap", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gosmap is up to date")
		return nil
	}
	fmt.Println("Building gosmap...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/gosmap", "./cmd/gosmap")
}

// smokeMap is a two-line map used by Smoke.
const smokeMap = `{"version":3,"file":"app.js","sources":["src/a.ts"],"names":["foo"],"mappings":"AAAAA,IAAI;AACA"}`

// Smoke builds gosmap and runs inspect, lookup and edit against a scratch
// map and script.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "gosmap-smoke-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	mapPath := filepath.Join(dir, "app.js.map")
	script := filepath.Join(dir, "app.js")
	files := map[string]string{
		mapPath: smokeMap,
		script:  "foo(1);\nbar();\n//# sourceMappingURL=app.js.map\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	bin := filepath.Join("bin", "gosmap")
	steps := [][]string{
		{"inspect", "--summary", mapPath},
		{"lookup", mapPath, "1:4"},
		{"lookup", mapPath, "--reverse", "src/a.ts:2:4"},
		{"edit", script, "--replace", "foo=baz", "--output", filepath.Join(dir, "out.js")},
		{"inspect", filepath.Join(dir, "out.js.map")},
	}
	for _, args := range steps {
		fmt.Printf("gosmap %s\n", strings.Join(args, " "))
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("gosmap %s: %w", args[0], err)
		}
	}
	fmt.Println("✓ Smoke run passed")
	return nil
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Install installs gosmap to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gosmap...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gosmap")
}

// Uninstall removes gosmap from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	fmt.Println("Uninstalling gosmap...")
	binPath, err := findInstalledBinary("gosmap")
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("gosmap is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Test targets.

// Default runs the suite through gotestsum with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs the suite printing every test.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Race repeats the map cache and CLI loader tests under the race detector.
func (Test) Race() error {
	fmt.Println("Running race-sensitive packages...")
	return sh.RunV("go", "test", "-race", "-count=20", "./pkg/mapcache/...", "./internal/cli/...")
}

// Lint targets.

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// CI targets.

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy fails when "go mod tidy" would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	files := []string{"go.mod", "go.sum"}
	before := make(map[string][]byte, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], data) {
			return fmt.Errorf("%s changed after 'go mod tidy': commit the result", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// releasePlatforms are the GOOS/GOARCH pairs gosmap is released for.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Cross builds every release platform with cgo disabled.
func (CI) Cross() error {
	fmt.Println("Cross-compiling release platforms...")
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  %s\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/gosmap"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build")
	return nil
}

// Bench targets.

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// fuzzTargets lists the fuzz targets run by Bench.Fuzz, by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/sourcemap", "FuzzVLQ"},
	{"./pkg/sourcemap", "FuzzDecodeMappings"},
	{"./pkg/lines", "FuzzPositionRoundTrip"},
}

// Fuzz runs every fuzz target for FUZZ_TIME each (default 30s).
func (Bench) Fuzz() error {
	return runFuzz(cmp.Or(os.Getenv("FUZZ_TIME"), "30s"))
}

// Fast runs a quick fuzzing pass over every target.
func (Bench) Fast() error {
	return runFuzz("5s")
}

// Helpers.

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// findInstalledBinary returns the path where go install would place the binary.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}

// runFuzz runs each fuzz target for fuzzTime.
func runFuzz(fuzzTime string) error {
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime="+fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// gotestsum runs the whole suite with the given gotestsum format.
func gotestsum(format string) error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}
