package utils

import (
	"reflect"

	"github.com/go-faker/faker/v4"
	"github.com/go-faker/faker/v4/pkg/options"
)

// FakeStruct generates a random struct of type T, and returns it along with the values of its
// `db`-tagged fields in declaration order, ready to be added as a mocked sql row.
func FakeStruct[T any](opts ...options.OptionFunc) (T, []any) {
	var object T
	if err := faker.FakeData(&object, opts...); err != nil {
		panic(err)
	}
	return object, rowValues(object)
}

func FakeStructs[T any](count int, opts ...options.OptionFunc) ([]T, [][]any) {
	objects := make([]T, count)
	rows := make([][]any, count)
	for i := range count {
		objects[i], rows[i] = FakeStruct[T](opts...)
	}
	return objects, rows
}

func rowValues(object any) []any {
	v := reflect.ValueOf(object)
	t := v.Type()
	values := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		values = append(values, v.Field(i).Interface())
	}
	return values
}
