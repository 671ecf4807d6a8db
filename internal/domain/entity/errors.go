package entity

import "errors"

var (
	ErrElementNotFound  = errors.New("no element matches query")
	ErrAmbiguousElement = errors.New("more than one element matches query")
	ErrRegionEmpty      = errors.New("display region is empty")
	ErrBrowserClosed    = errors.New("browser is closed")
)
