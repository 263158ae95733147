// Package pipeline orchestrates the per-recipe build-and-upload loop.
//
// Recipes are processed strictly in list order, one at a time. Each recipe
// is built with AutoPkg, the produced package path is read from the report
// plist, team and self-service settings are resolved from the recipe map,
// the package is uploaded to Fleet, and a normalized metadata record is
// written to the output directory under the slugified software name.
//
// Each recipe produces a [Result] with a terminal [Status]; the results are
// collected into a [Report]. The default policy aborts the batch on the
// first failure, matching the behavior of the shell pipeline this replaces.
// With KeepGoing set, remaining recipes are still processed and the report
// carries every failure.
//
// Example usage:
//
//	report, err := pipeline.Run(ctx, pipeline.Options{
//	    Recipes:   recipes,
//	    Map:       m,
//	    OutputDir: "out",
//	    Runner:    &autopkg.Runner{},
//	    Client:    &fleet.Client{BaseURL: url, Token: token},
//	})
//	if err != nil {
//	    return err
//	}
package pipeline
