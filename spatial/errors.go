package spatial

import "errors"

var (
	// ErrConfiguration reports unusable build input such as an empty mesh
	ErrConfiguration = errors.New("spatial: configuration error")

	// ErrInvalidArgument reports a caller-supplied value outside its domain
	ErrInvalidArgument = errors.New("spatial: invalid argument")
)
