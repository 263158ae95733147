package pipeline

import "errors"

var (
	ErrOutputDir = errors.New("output directory unusable")
	ErrRecord    = errors.New("metadata record unusable")
)
