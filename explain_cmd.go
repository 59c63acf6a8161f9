package main

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"

	"github.com/rgolang/uscan/ast"
	"github.com/rgolang/uscan/llvm"
)

func runExplainCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	template := args["template"].Value
	if mustFlagBool(flags["json"], "json") {
		out, err := ast.ToJSON(template)
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(string(out))
		return
	}
	nodes, err := ast.Parse(template)
	if err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["raw"], "raw") {
		_, _ = pretty.Println(nodes)
		return
	}
	data := [][]string{
		{"Span", "Text", "Family", "Category", "Arg"},
	}
	arg := 0
	for _, n := range nodes {
		from, to := n.Span()
		span := fmt.Sprintf("%d..%d", from, to)
		switch n := n.(type) {
		case *ast.Literal:
			data = append(data, []string{span, fmt.Sprintf("%q", n.Text), "", "", ""})
		case *ast.Directive:
			family := string(n.Family)
			if !n.Known() {
				family = "(skipped)"
			}
			slot := ""
			if n.Binds() {
				slot = fmt.Sprint(arg)
				arg++
			}
			data = append(data, []string{span, n.Value, family, n.Category.String(), slot})
		}
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runIRCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	out, err := llvm.GenerateIR(mustFlagString(flags["name"], "name"), args["template"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	_, _ = os.Stdout.WriteString(out)
}
