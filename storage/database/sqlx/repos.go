// Package sqlxrepos provides PostgreSQL-backed implementations of the
// domain repositories.
package sqlxrepos

import "strconv"

// argList accumulates positional query parameters; add returns the
// placeholder for the value just appended.
type argList []interface{}

func (a *argList) add(v interface{}) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}
