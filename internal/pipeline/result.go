package pipeline

// Terminal state of a single recipe.
type Status string

const (
	StatusSucceeded    Status = "succeeded"
	StatusBuildFailed  Status = "build-failed"
	StatusUploadFailed Status = "upload-failed"
	StatusWriteFailed  Status = "write-failed"
)

// Outcome of processing one recipe.
type Result struct {
	Recipe string // Recipe identifier from the list.
	Status Status // Terminal state.
	Output string // Path of the metadata record, set on success.
	Err    error  // Failure cause, nil on success.
}

// Collected outcomes for a batch, in processing order.
//
// A batch stopped by a fail-fast error carries the results up to and
// including the failed recipe.
type Report struct {
	Results []Result
}

// Returns the number of failed recipes.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status != StatusSucceeded {
			n++
		}
	}
	return n
}
