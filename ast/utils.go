package ast

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/rgolang/uscan/omap"
)

// ToJSON compiles a template and dumps its nodes.
func ToJSON(template string) ([]byte, error) {
	nodes, err := Parse(template)
	if err != nil {
		return nil, fmt.Errorf("error parsing template: %w", err)
	}
	b, err := formatAst(nodes)
	if err != nil {
		return nil, fmt.Errorf("error json marshalling nodes: %w", err)
	}
	return b, nil
}

func formatAst(v any) ([]byte, error) {
	return json.MarshalIndent(processAny(reflect.ValueOf(v)), "", "    ")
}

func resolvePointer(val reflect.Value) reflect.Value {
	for val.Kind() == reflect.Ptr {
		if !val.IsValid() || val.IsNil() {
			break
		}
		val = val.Elem()
	}
	return val
}

func processAny(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}

		sliceLen := v.Len()
		resultSlice := make([]any, 0, sliceLen)

		for i := 0; i < sliceLen; i++ {
			elem := v.Index(i)
			elemValue := processAny(elem)
			if elemValue != nil {
				resultSlice = append(resultSlice, elemValue)
			}
		}

		return resultSlice
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return processAny(resolvePointer(v.Elem()))
	case reflect.Struct:
		return processStruct(v)
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return processAny(v.Elem())
	default:
		if !v.IsValid() {
			return nil
		}
		// enums print by name
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Interface()
	}
}

// processStruct keeps the field order of the struct, after the type name.
func processStruct(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	res := omap.New[string, any]()
	res.Set("_type", v.Type().Name())

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := strings.ToLower(v.Type().Field(i).Name)

		// skip private fields
		if !field.CanInterface() {
			continue
		}

		if field.Kind() == reflect.Bool && !field.Bool() {
			continue
		}

		if field.Kind() == reflect.String && field.Len() == 0 {
			continue
		}

		if field.Kind() == reflect.Slice && field.Len() == 0 {
			continue
		}

		if field.Kind() == reflect.Struct && field.IsZero() {
			continue
		}

		var fieldValue any
		switch {
		case fieldName == "letter":
			fieldValue = string(rune(field.Int()))
		case fieldName == "padchar":
			fieldValue = string(rune(field.Uint()))
		default:
			fieldValue = processAny(field)
		}
		if fieldValue == nil || fieldValue == "" {
			continue
		}
		// embedded structs are flattened into their node
		if sub, ok := fieldValue.(*omap.Map[string, any]); ok && v.Type().Field(i).Anonymous {
			sub.Each(func(k string, val any) {
				if k != "_type" {
					res.Set(k, val)
				}
			})
			continue
		}
		res.Set(fieldName, fieldValue)
	}

	return res
}
