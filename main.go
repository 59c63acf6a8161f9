package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'uscan.cli'
func tracer() tracing.Trace {
	return tracing.Select("uscan.cli")
}

var traceKeys = []string{"uscan.cli", "uscan.scan", "uscan.reader", "uscan.locale", "uscan.uset", "uscan.lex", "uscan.llvm"}

func main() {
	initDisplay()

	commando.
		SetExecutableName("uscan").
		SetVersion("v0.1.0").
		SetDescription("Formatted scanning of UTF-16 input with ICU-style templates.")

	commando.
		Register("scan").
		SetDescription("Scan input with a template and print the bound values.").
		SetShortDescription("scan input").
		AddArgument("template", "scan template, e.g. '%d-%s'", "").
		AddArgument("input", "input text; '-' reads standard input", "-").
		AddFlag("file,f", "read input from a file", commando.String, "-").
		AddFlag("input-charset", "charset of the input file or standard input", commando.String, "utf-8").
		AddFlag("charset,c", "charset %s and %c convert to", commando.String, "utf-8").
		AddFlag("locale,l", "locale numbers are parsed in", commando.String, "en").
		AddFlag("line", "scan only the first line of the input", commando.Bool, nil).
		AddFlag("rest,r", "print the input left unread", commando.Bool, nil).
		AddFlag("upper,u", "upper-case the unread input printed by --rest", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runScanCommand)

	commando.
		Register("explain").
		SetDescription("Print the compiled form of a template.").
		SetShortDescription("explain a template").
		AddArgument("template", "scan template", "").
		AddFlag("json,j", "print as JSON", commando.Bool, nil).
		AddFlag("raw", "print the node structs", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runExplainCommand)

	commando.
		Register("ir").
		SetDescription("Print LLVM IR of a function scanning standard input with libc scanf.").
		SetShortDescription("lower to LLVM IR").
		AddArgument("template", "scan template", "").
		AddFlag("name,n", "name of the generated function", commando.String, "scan").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runIRCommand)

	commando.
		Register("repl").
		SetDescription("Read templates and inputs interactively.").
		SetShortDescription("interactive mode").
		AddFlag("charset,c", "charset %s and %c convert to", commando.String, "utf-8").
		AddFlag("locale,l", "locale numbers are parsed in", commando.String, "en").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runREPLCommand)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setupTracing routes all package tracers to the go log adapter at the given level.
func setupTracing(flags map[string]commando.FlagValue) {
	level := mustFlagString(flags["trace"], "trace")
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range traceKeys {
		switch level {
		case "Debug":
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		case "Info":
			tracing.Select(key).SetTraceLevel(tracing.LevelInfo)
		case "Error":
			tracing.Select(key).SetTraceLevel(tracing.LevelError)
		default:
			fatalf("invalid trace level: %s", level)
		}
	}
	tracer().Infof("trace level is %s", level)
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "uscan: "+format+"\n", args...)
	os.Exit(1)
}
