package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/rackworks/fleetpkg/internal/autopkg"
	"github.com/rackworks/fleetpkg/internal/fleet"
	"github.com/rackworks/fleetpkg/internal/paths"
	"github.com/rackworks/fleetpkg/internal/recipe"
)

// Controls batch execution.
type Options struct {
	Recipes      []string        // Recipe identifiers, processed in order.
	Map          *recipe.Map     // Recipe-to-config mapping.
	OverridesDir string          // Directory holding override files. Empty passes identifiers to AutoPkg as-is.
	OutputDir    string          // Directory for metadata records, created if absent.
	ReportPath   string          // Report plist path handed to AutoPkg, rewritten per recipe.
	Runner       *autopkg.Runner // AutoPkg invoker.
	Client       *fleet.Client   // Fleet upload client.
	KeepGoing    bool            // Continue past failed recipes instead of aborting the batch.
}

// Holds shared state while a batch runs.
type batch struct {
	opts Options
}

// Processes every recipe in list order, sequentially.
//
// The returned report carries one [Result] per processed recipe. Without
// KeepGoing the first failure aborts the batch and is returned as the
// error; the report then ends at the failed recipe. With KeepGoing the
// error is always nil and the caller inspects the report.
func Run(ctx context.Context, opts Options) (*Report, error) {
	slog.Info("processing recipes",
		"count", len(opts.Recipes),
		"output", opts.OutputDir,
		"keep_going", opts.KeepGoing,
	)

	if err := os.MkdirAll(opts.OutputDir, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	b := &batch{opts: opts}
	report := &Report{}

	for _, name := range opts.Recipes {
		res := b.process(ctx, name)
		report.Results = append(report.Results, res)

		if res.Err != nil {
			slog.Error("recipe failed", "recipe", name, "status", res.Status, "error", res.Err)
			if !opts.KeepGoing {
				return report, fmt.Errorf("recipe %s: %w", name, res.Err)
			}
			continue
		}

		slog.Info("recipe done", "recipe", name, "record", res.Output)
	}

	return report, nil
}

// Runs the full build-upload-record sequence for one recipe.
func (b *batch) process(ctx context.Context, name string) Result {
	slog.Info("running recipe", "recipe", name)

	pkgPath, err := b.build(ctx, name)
	if err != nil {
		return Result{Recipe: name, Status: StatusBuildFailed, Err: err}
	}

	cfg := b.opts.Map.Resolve(name)
	localHash := packageDigest(pkgPath)

	pkg, err := b.opts.Client.UploadPackage(ctx, pkgPath, cfg.TeamID, cfg.SelfService)
	if err != nil {
		return Result{Recipe: name, Status: StatusUploadFailed, Err: err}
	}

	if localHash != "" && pkg.HashSHA256 != "" && localHash != pkg.HashSHA256 {
		slog.Warn("server hash differs from local digest",
			"recipe", name,
			"local", localHash,
			"server", pkg.HashSHA256,
		)
	}

	out, err := writeRecord(b.opts.OutputDir, Record{
		Name:        pkg.Name,
		Version:     pkg.Version,
		Hash:        pkg.HashSHA256,
		TitleID:     pkg.TitleID,
		InstallerID: pkg.InstallerID,
		SelfService: cfg.SelfService,
	})
	if err != nil {
		return Result{Recipe: name, Status: StatusWriteFailed, Err: err}
	}

	return Result{Recipe: name, Status: StatusSucceeded, Output: out}
}

// Builds the recipe and returns the path of the produced package.
//
// A build that exits zero but reports no package results is a build
// failure; there is nothing to upload.
func (b *batch) build(ctx context.Context, name string) (string, error) {
	override := name
	if b.opts.OverridesDir != "" {
		override = filepath.Join(b.opts.OverridesDir, name)
	}

	if err := b.opts.Runner.Run(ctx, override, b.opts.ReportPath); err != nil {
		return "", err
	}

	return autopkg.PackagePath(b.opts.ReportPath)
}

// Computes the sha256 digest of the built package.
//
// The digest is compared against the server-reported hash after upload; a
// mismatch is logged, never fatal. Returns the empty string if the package
// cannot be read, which skips the comparison.
func packageDigest(pkgPath string) string {
	f, err := os.Open(pkgPath)
	if err != nil {
		slog.Warn("package digest skipped", "package", pkgPath, "error", err)
		return ""
	}
	defer f.Close()

	d, err := digest.FromReader(f)
	if err != nil {
		slog.Warn("package digest skipped", "package", pkgPath, "error", err)
		return ""
	}

	slog.Debug("package digest", "package", pkgPath, "sha256", d.Encoded())
	return d.Encoded()
}
