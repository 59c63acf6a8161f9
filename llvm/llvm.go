package llvm

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/npillmayer/schuko/tracing"

	"github.com/rgolang/uscan/ast"
	"github.com/rgolang/uscan/lex"
	"github.com/rgolang/uscan/libcutils"
	"github.com/rgolang/uscan/omap"
	"github.com/rgolang/uscan/scan"
)

// tracer writes to trace with key 'uscan.llvm'
func tracer() tracing.Trace {
	return tracing.Select("uscan.llvm")
}

var zero = constant.NewInt(types.I32, 0)

// GenerateIR compiles a template into the textual IR of a module exporting a function name, which
// scans stdin with libc scanf.
func GenerateIR(name, template string) (string, error) {
	nodes, err := ast.Parse(template)
	if err != nil {
		return "", fmt.Errorf("error parsing template: %w", err)
	}
	mod, err := ToIR(name, nodes)
	if err != nil {
		return "", fmt.Errorf("error generating IR: %w", err)
	}
	return mod.String(), nil
}

// ToIR lowers template nodes into a module holding one function: it takes a pointer per binding
// directive and returns the result of the scanf call.
func ToIR(name string, nodes []ast.Node) (*ir.Module, error) {
	format, bindings, err := libcutils.ScanfFormat(nodes)
	if err != nil {
		return nil, err
	}
	ctx := newContext(ir.NewModule())
	params := make([]*ir.Param, len(bindings))
	for i, d := range bindings {
		typ, err := slotType(d)
		if err != nil {
			return nil, err
		}
		params[i] = ir.NewParam("p"+strconv.Itoa(i), typ)
	}
	fnc := ctx.Mod.NewFunc(name, types.I32, params...)
	entry := fnc.NewBlock("entry")
	args := []value.Value{ctx.newConstString(name+".format", format)}
	for _, p := range params {
		args = append(args, p)
	}
	res := entry.NewCall(ctx.extern("__isoc99_scanf"), args...)
	entry.NewRet(res)
	tracer().Debugf("lowered %s with format %q and %d slots", name, format, len(params))
	return ctx.Mod, nil
}

// slotType is the pointer type a directive's argument has on the C side.
func slotType(d *ast.Directive) (types.Type, error) {
	switch d.Category {
	case scan.CategoryDouble:
		return types.NewPointer(types.Double), nil
	case scan.CategoryString, scan.CategoryChar:
		return types.I8Ptr, nil
	case scan.CategoryPointer:
		return types.NewPointer(types.I8Ptr), nil
	case scan.CategoryCount:
		return types.NewPointer(types.I32), nil
	case scan.CategoryInt:
		if d.Family == scan.FamilyUInt {
			return types.NewPointer(types.I32), nil
		}
		switch d.Spec.Length {
		case lex.LengthShort:
			return types.NewPointer(types.I16), nil
		case lex.LengthLongLong:
			return types.NewPointer(types.I64), nil
		}
		return types.NewPointer(types.I32), nil
	}
	return nil, fmt.Errorf("%w: no slot type for %s", libcutils.ErrUnsupported, d.Value)
}

type Context struct {
	Mod     *ir.Module
	externs *omap.Map[string, *ir.Func]
}

func newContext(mod *ir.Module) *Context {
	return &Context{Mod: mod, externs: omap.New[string, *ir.Func]()}
}

// extern declares a libc function once per module.
func (ctx *Context) extern(name string) *ir.Func {
	if f, ok := ctx.externs.Get(name); ok {
		return f
	}
	var f *ir.Func
	switch name {
	case "__isoc99_scanf":
		fmt := ir.NewParam("fmt", types.I8Ptr)
		f = ctx.Mod.NewFunc(name, types.I32, fmt)
		f.Sig.Variadic = true
	default:
		panic("unknown libc function " + name)
	}
	ctx.externs.Set(name, f)
	return f
}

func (ctx *Context) newConstString(name string, value string) *constant.ExprGetElementPtr {
	mod := ctx.Mod
	// strings are null-terminated
	strVal := value + "\x00"
	strType := types.NewArray(uint64(len(strVal)), types.I8)

	constStr := ir.NewGlobalDef(name, constant.NewCharArrayFromString(strVal))
	constStr.Typ = types.NewPointer(strType)
	constStr.Immutable = true
	constStr.Linkage = enum.LinkagePrivate
	constStr.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	mod.Globals = append(mod.Globals, constStr)
	return constant.NewGetElementPtr(constStr.Typ.ElemType, constStr, zero, zero)
}
