// Package fleet is a minimal client for the Fleet software package API.
//
// A [Client] uploads installer packages as multipart form posts,
// authenticated with a bearer token. The upload response identifies the
// created software title; [Package] normalizes the fields this tool
// consumes, preferring top-level response keys and falling back to the
// nested software object older servers return.
//
// Example usage:
//
//	c := fleet.Client{BaseURL: "https://fleet.example.com", Token: token}
//	pkg, err := c.UploadPackage(ctx, "/tmp/Firefox.pkg", 5, true)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pkg.Name, pkg.TitleID)
package fleet
