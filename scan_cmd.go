package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/text/runes"

	"github.com/rgolang/uscan/ast"
	"github.com/rgolang/uscan/reader"
	"github.com/rgolang/uscan/scan"
)

func runScanCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	in := openInput(args["input"].Value, flags)
	defer in.Close()
	src := in
	if mustFlagBool(flags["line"], "line") {
		line, ok := in.Gets(reader.DefaultCapacity)
		if !ok {
			fatalf("no input line")
		}
		src = reader.NewUnits(line)
	}
	s, err := scan.New(src,
		scan.WithLocale(mustFlagString(flags["locale"], "locale")),
		scan.WithCharset(mustFlagString(flags["charset"], "charset")))
	if err != nil {
		fatalf("%v", err)
	}
	if err := scanAndPrint(s, args["template"].Value); err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["rest"], "rest") {
		if err := printRest(in, mustFlagBool(flags["upper"], "upper")); err != nil {
			fatalf("%v", err)
		}
	}
}

func openInput(input string, flags map[string]commando.FlagValue) *reader.Stream {
	charset := reader.WithCharset(mustFlagString(flags["input-charset"], "input-charset"))
	path := mustFlagString(flags["file"], "file")
	switch {
	case path != "-":
		f, err := os.Open(path)
		if err != nil {
			fatalf("open input: %v", err)
		}
		in, err := reader.New(f, charset)
		if err != nil {
			fatalf("%v", err)
		}
		return in
	case input == "-":
		in, err := reader.New(os.Stdin, charset)
		if err != nil {
			fatalf("%v", err)
		}
		return in
	}
	return reader.NewString(input)
}

// scanAndPrint scans with slots derived from the template and prints them with the outcome.
func scanAndPrint(s *scan.Scanner, template string) error {
	nodes, err := ast.Parse(template)
	if err != nil {
		return err
	}
	bindings := ast.Bindings(nodes)
	slots := newSlots(bindings)
	res, err := s.ScanContext(context.Background(), template, slots...)
	if err != nil {
		return err
	}
	data := [][]string{
		{"Arg", "Directive", "Category", "Value"},
	}
	for i, d := range bindings {
		data = append(data, []string{
			strconv.Itoa(i),
			d.Value,
			d.Category.String(),
			formatSlot(slots[i]),
		})
	}
	if len(bindings) > 0 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	pterm.Printf("converted %d, stopped at %s", res.Count, res.Stop)
	if res.Directive != "" {
		pterm.Printf(" (%s)", res.Directive)
	}
	pterm.Printf(", consumed %d units\n", res.Consumed)
	return nil
}

// printRest copies the unread input to stdout.
func printRest(in *reader.Stream, upper bool) error {
	w, err := reader.NewWriter(os.Stdout, "utf-8")
	if err != nil {
		return err
	}
	if upper {
		if _, err := w.SetTransliterator(runes.Map(unicode.ToUpper)); err != nil {
			return err
		}
	}
	buf := make([]uint16, 256)
	for {
		n := in.Read(buf)
		if n == 0 {
			break
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	if err := in.Err(); err != nil {
		return err
	}
	return w.Flush()
}

func runREPLCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	opts := []scan.Option{
		scan.WithLocale(mustFlagString(flags["locale"], "locale")),
		scan.WithCharset(mustFlagString(flags["charset"], "charset")),
	}
	repl, err := readline.New("template > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	pterm.Info.Println("Enter a template, then a line of input. Quit with <ctrl>D")
	template := ""
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if template == "" {
			if template = strings.TrimSpace(line); template != "" {
				repl.SetPrompt("input > ")
			}
			continue
		}
		s, err := scan.New(reader.NewString(line), opts...)
		if err != nil {
			pterm.Error.Println(err.Error())
		} else if err := scanAndPrint(s, template); err != nil {
			pterm.Error.Println(err.Error())
		}
		template = ""
		repl.SetPrompt("template > ")
	}
	pterm.Info.Println("Good bye!")
}
