package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// RecordFromStruct converts a struct (or pointer to struct) to a Record using
// reflection. Field names follow `json` tags; fields tagged "-" and
// unexported fields are skipped, and "omitempty" fields are dropped when zero.
// Non-struct input yields an empty record.
func RecordFromStruct(input any) Record {
	result := make(Record)
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return result
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return result
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // skip unexported fields
			continue
		}
		name, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		result[name] = fv.Interface()
	}
	return result
}

func jsonFieldName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// DecodeRecord converts a record into T by way of its JSON encoding, so T
// sees exactly what a reader of the record file would.
func DecodeRecord[T any](r Record) (T, error) {
	var result T
	data, err := json.Marshal(r)
	if err != nil {
		return result, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode record: %w", err)
	}
	return result, nil
}
