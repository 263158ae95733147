// Package autopkg drives the AutoPkg CLI and reads its report plists.
//
// A [Runner] invokes "autopkg run" for a single recipe override, pointing
// the tool at a report plist path. After a successful run, [PackagePath]
// extracts the pathname of the first package result from the report. The
// binary can be overridden for testing or for wrapper scripts.
//
// Example usage:
//
//	r := autopkg.Runner{Command: "autopkg"}
//	if err := r.Run(ctx, "overrides/Firefox.pkg.recipe", report); err != nil {
//	    return err
//	}
//
//	pkg, err := autopkg.PackagePath(report)
//	if err != nil {
//	    return err
//	}
package autopkg
