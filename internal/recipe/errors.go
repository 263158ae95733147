package recipe

import "errors"

var (
	ErrList = errors.New("recipe list unreadable")
	ErrMap  = errors.New("recipe map unreadable")
)
