package puzzle

import "errors"

// ErrInvalidParameter is returned when a query's picture, fragment or draw
// counts fall outside their valid ranges.
var ErrInvalidParameter = errors.New("invalid puzzle parameter")
