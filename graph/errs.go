package graph

import "errors"

var ErrBadSnapshot = errors.New("bad graph snapshot")
