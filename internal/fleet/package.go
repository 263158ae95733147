package fleet

import (
	"encoding/json"
	"fmt"
)

// Identifying fields of an uploaded package, as reported by the server.
//
// Fields the server omits are left at their zero values; callers decide
// whether an empty name or hash is acceptable.
type Package struct {
	Name        string
	Version     string
	HashSHA256  string
	TitleID     int64
	InstallerID int64
}

// Wire shape of the upload response.
//
// Servers differ on whether the identifying fields appear at the top level
// or inside a nested software object; both spellings are accepted.
type uploadResponse struct {
	packageFields
	Software *packageFields `json:"software"`
}

type packageFields struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	HashSHA256  string `json:"hash_sha256"`
	TitleID     int64  `json:"title_id"`
	InstallerID int64  `json:"installer_id"`
}

// Parses an upload response body.
//
// Top-level fields win; fields absent at the top level fall back to the
// nested software object. Missing fields resolve to zero values, never to
// an error.
func parsePackage(raw []byte) (*Package, error) {
	var resp uploadResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrResponse, err, bodySnippet(raw))
	}

	pkg := Package{
		Name:        resp.Name,
		Version:     resp.Version,
		HashSHA256:  resp.HashSHA256,
		TitleID:     resp.TitleID,
		InstallerID: resp.InstallerID,
	}

	if nested := resp.Software; nested != nil {
		if pkg.Name == "" {
			pkg.Name = nested.Name
		}
		if pkg.Version == "" {
			pkg.Version = nested.Version
		}
		if pkg.HashSHA256 == "" {
			pkg.HashSHA256 = nested.HashSHA256
		}
		if pkg.TitleID == 0 {
			pkg.TitleID = nested.TitleID
		}
		if pkg.InstallerID == 0 {
			pkg.InstallerID = nested.InstallerID
		}
	}

	return &pkg, nil
}
