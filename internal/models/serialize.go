package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// Int64String is an int64 that crosses the JSON boundary as a decimal string.
// Event ids and epoch-second timestamps are 64-bit and would lose precision in
// JavaScript number clients, so every external representation of them goes
// through this type. Unmarshalling accepts both quoted and bare numbers.
type Int64String int64

// MarshalJSON renders the value as a quoted decimal string
func (v Int64String) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(v), 10))), nil
}

// UnmarshalJSON parses either "123" or 123
func (v *Int64String) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" || s == "" {
		*v = 0
		return nil
	}
	parsed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid int64 value %q: %w", s, err)
	}
	*v = Int64String(parsed)
	return nil
}

// Int64 returns the underlying value
func (v Int64String) Int64() int64 {
	return int64(v)
}

// String returns the decimal text form
func (v Int64String) String() string {
	return strconv.FormatInt(int64(v), 10)
}
