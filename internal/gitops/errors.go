package gitops

import "errors"

var ErrApply = errors.New("gitops edit failed")
