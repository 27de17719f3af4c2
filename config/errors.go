package config

import "errors"

// ErrUnknownField indicates the JSON document contained a key that is not
// part of the documented configuration shape.
var ErrUnknownField = errors.New("config: unknown configuration field")
