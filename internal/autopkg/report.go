package autopkg

import (
	"fmt"
	"os"

	"howett.net/plist"
)

// Shape of the report plist, reduced to the fields this tool consumes.
type report struct {
	Results struct {
		Packages []packageResult `plist:"packages"`
	} `plist:"results"`
}

// A single package result from the report.
type packageResult struct {
	Pathname string `plist:"pathname"`
}

// Extracts the pathname of the first package result from a report plist.
//
// A report with no package results, or one whose first result has an empty
// pathname, is treated as a build failure: AutoPkg exited zero but produced
// nothing to upload.
func PackagePath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReport, err)
	}

	var rep report
	if _, err := plist.Unmarshal(data, &rep); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReport, path, err)
	}

	packages := rep.Results.Packages
	if len(packages) == 0 || packages[0].Pathname == "" {
		return "", fmt.Errorf("%w: %s", ErrNoPackage, path)
	}

	return packages[0].Pathname, nil
}
