package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rackworks/fleetpkg/internal/autopkg"
	"github.com/rackworks/fleetpkg/internal/fleet"
	"github.com/rackworks/fleetpkg/internal/paths"
	"github.com/rackworks/fleetpkg/internal/pipeline"
	"github.com/rackworks/fleetpkg/internal/recipe"
)

// Represents the 'fleetpkg run' command.
type RunCmd struct {
	List       string `arg:"" optional:"" default:"recipe_list.txt" help:"Recipe list file, one recipe per line."`
	Map        string `short:"m" help:"Recipe map YAML. Defaults to config/recipe-map.yml or the XDG config dirs." placeholder:"PATH"`
	Overrides  string `help:"Directory containing recipe override files." default:"overrides" placeholder:"DIR"`
	Output     string `short:"o" help:"Directory for metadata records." default:"out" placeholder:"DIR"`
	Report     string `help:"Report plist path handed to AutoPkg. Defaults to the cache directory." placeholder:"PATH"`
	Autopkg    string `env:"AUTOPKG_CMD" help:"AutoPkg binary name or path." default:"autopkg"`
	FleetURL   string `env:"FLEET_URL" required:"" help:"Fleet base URL."`
	FleetToken string `env:"FLEET_API_TOKEN" required:"" help:"Fleet API token."`
	KeepGoing  bool   `short:"k" help:"Process remaining recipes after a failure instead of aborting."`
}

// Executes the run command.
//
// Reads the recipe list and map, then hands the batch to the pipeline.
// Exits non-zero when any recipe failed, whether or not --keep-going let
// the batch finish.
func (c *RunCmd) Run(ctx context.Context) error {
	recipes, err := recipe.ReadList(c.List)
	if err != nil {
		return err
	}

	mapPath := c.Map
	if mapPath == "" {
		mapPath = paths.RecipeMap()
	}
	m, err := recipe.LoadMap(mapPath)
	if err != nil {
		return err
	}

	report := c.Report
	if report == "" {
		report = paths.ReportPlist()
		if err := os.MkdirAll(paths.Cache(), paths.DefaultDirMode); err != nil {
			return err
		}
	}

	batch, err := pipeline.Run(ctx, pipeline.Options{
		Recipes:      recipes,
		Map:          m,
		OverridesDir: c.Overrides,
		OutputDir:    c.Output,
		ReportPath:   report,
		Runner:       &autopkg.Runner{Command: c.Autopkg, Output: os.Stderr},
		Client:       &fleet.Client{BaseURL: c.FleetURL, Token: c.FleetToken},
		KeepGoing:    c.KeepGoing,
	})
	if err != nil {
		return err
	}

	if failed := batch.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d recipes failed", failed, len(batch.Results))
	}
	return nil
}
