package dem

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports a flow-direction grid that transitively routes a cell
// back into itself; accumulation over such a grid cannot terminate.
type CycleError struct {
	Row, Col int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("flow accumulation: cycle detected at cell (%d,%d)", e.Row, e.Col)
}

// InvalidCodeError reports bit-coded direction values outside the allowed
// set {1,2,4,8,16,32,64,128}.
type InvalidCodeError struct {
	Codes []int
}

func (e *InvalidCodeError) Error() string {
	s := make([]string, len(e.Codes))
	for i, v := range e.Codes {
		s[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("direction grid holds invalid code(s) %s; allowed codes are 1,2,4,8,16,32,64,128",
		strings.Join(s, ","))
}

func newInvalidCodeError(bad map[int]bool) *InvalidCodeError {
	codes := make([]int, 0, len(bad))
	for v := range bad {
		codes = append(codes, v)
	}
	sort.Ints(codes)
	return &InvalidCodeError{Codes: codes}
}
