package protocol

import "errors"

// MaxVNodeDepth limits the nesting depth of decoded VNode trees. Clones are
// copies of list items, so real trees stay far below this.
const MaxVNodeDepth = 128

// ErrMaxDepthExceeded is returned when a decoded tree nests too deeply.
var ErrMaxDepthExceeded = errors.New("protocol: maximum nesting depth exceeded")

func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
