package autopkg

import "errors"

var (
	ErrBuild     = errors.New("autopkg run failed")
	ErrReport    = errors.New("report plist unreadable")
	ErrNoPackage = errors.New("report contains no package results")
)
