package cluster

import "fmt"

// InvalidParameterError reports a cluster count outside [1, N].
type InvalidParameterError struct {
	K int
	N int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("cluster: k=%d outside [1, %d]", e.K, e.N)
}

// ShapeMismatchError reports a ragged embedding matrix.
type ShapeMismatchError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("cluster: vector %d has dimension %d, expected %d", e.Row, e.Got, e.Want)
}
