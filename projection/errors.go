package projection

import "fmt"

// InvalidParameterError reports a parameter outside its allowed range,
// such as a non-positive target dimension.
type InvalidParameterError struct {
	Param string
	Value int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("projection: invalid %s: %d", e.Param, e.Value)
}

// ShapeMismatchError reports a ragged embedding matrix: row Row has Got
// components where Want were expected.
type ShapeMismatchError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("projection: vector %d has dimension %d, expected %d", e.Row, e.Got, e.Want)
}
