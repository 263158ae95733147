package fleet

import "errors"

var (
	ErrUpload   = errors.New("package upload failed")
	ErrResponse = errors.New("upload response unreadable")
)
