package main

import (
	"fmt"
	"reflect"

	"github.com/rgolang/uscan/ast"
	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/scan"
)

// newSlot allocates the argument a directive binds to.
func newSlot(d *ast.Directive) any {
	switch d.Family {
	case scan.FamilyString, scan.FamilyUString, scan.FamilyScanSet:
		return new(string)
	case scan.FamilyChar:
		return new(byte)
	case scan.FamilyUChar:
		return new(uint16)
	case scan.FamilyUInt:
		return new(uint32)
	case scan.FamilyPointer:
		return new(uintptr)
	case scan.FamilyCount:
		return new(int)
	case scan.FamilyInt, scan.FamilyHex, scan.FamilyOctal:
		switch d.Spec.Length {
		case lex.LengthShort:
			return new(int16)
		case lex.LengthLongLong:
			return new(int64)
		}
		return new(int32)
	}
	return new(float64)
}

func newSlots(bindings []*ast.Directive) []any {
	slots := make([]any, len(bindings))
	for i, d := range bindings {
		slots[i] = newSlot(d)
	}
	return slots
}

func formatSlot(slot any) string {
	switch p := slot.(type) {
	case *string:
		return fmt.Sprintf("%q", *p)
	case *byte:
		return fmt.Sprintf("%q", rune(*p))
	case *uint16:
		return fmt.Sprintf("U+%04X", *p)
	case *uintptr:
		return fmt.Sprintf("%#x", *p)
	}
	return fmt.Sprint(reflect.ValueOf(slot).Elem().Interface())
}
