package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Number decodes from a JSON number or a decimal string such as "70.50".
// Empty strings and null decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	*n = Number(v)
	return nil
}

// Float is nil-safe.
func (n *Number) Float() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func NewNumber(v float64) *Number {
	n := Number(v)
	return &n
}
