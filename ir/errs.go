package ir

import "errors"

var (
	ErrEncode = errors.New("ir encode error")
	ErrDecode = errors.New("ir decode error")
)
