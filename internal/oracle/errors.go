package oracle

import "errors"

// ErrTooLarge is returned when the number of subsets to enumerate does not
// fit in a machine integer.
var ErrTooLarge = errors.New("too many subsets to enumerate")
