package mystore

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// filterAndOrder evaluates filters against the exported fields of the entities
// and orders the result. Backends without native indexing use this to honor
// the Query contract.
func filterAndOrder[T any](items []T, filters []Filter, orderByField string) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		match, err := matchesFilters(item, filters)
		if err != nil {
			return nil, err
		}
		if match {
			result = append(result, item)
		}
	}

	if orderByField != "" {
		err := orderByFieldValue(result, orderByField)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func matchesFilters[T any](item T, filters []Filter) (bool, error) {
	for _, filter := range filters {
		field, err := fieldByName(item, filter.Field)
		if err != nil {
			return false, err
		}

		switch filter.Compare {
		case "=":
			if !reflect.DeepEqual(field.Interface(), filter.Value) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported compare operator %q", filter.Compare)
		}
	}

	return true, nil
}

func orderByFieldValue[T any](items []T, fieldName string) error {
	if len(items) < 2 {
		return nil
	}
	// validate the field upfront so sorting cannot panic halfway
	_, err := fieldByName(items[0], fieldName)
	if err != nil {
		return err
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, _ := fieldByName(items[i], fieldName)
		b, _ := fieldByName(items[j], fieldName)
		return lessValue(a, b)
	})

	return nil
}

func fieldByName[T any](item T, name string) (reflect.Value, error) {
	value := reflect.ValueOf(item)
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("cannot filter non-struct entity %T", item)
	}

	field := value.FieldByName(name)
	if !field.IsValid() {
		return reflect.Value{}, fmt.Errorf("entity %T has no field %q", item, name)
	}

	return field, nil
}

func lessValue(a, b reflect.Value) bool {
	if at, ok := a.Interface().(time.Time); ok {
		bt, _ := b.Interface().(time.Time)
		return at.Before(bt)
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	}

	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}
