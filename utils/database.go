package utils

import (
	"reflect"
)

// ColumnList returns the list of the `db` tags of the struct fields, in declaration order. It is
// used to build explicit SELECT column lists matching the row structs of the repositories.
func ColumnList[T any](prefixes ...string) []string {
	var zero T
	t := reflect.TypeOf(zero)
	prefix := ""
	if len(prefixes) > 0 && prefixes[0] != "" {
		prefix = prefixes[0] + "."
	}

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, prefix+tag)
	}
	return columns
}
