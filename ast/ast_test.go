package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/rgolang/uscan/scan"
)

// summary reduces nodes to comparable strings.
func summary(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *Literal:
			out = append(out, "lit:"+n.Text)
		case *Directive:
			s := "dir:" + n.Spec.String() + ":" + string(n.Family)
			if n.Pattern != "" {
				s += ":" + n.Pattern
			}
			out = append(out, s)
		}
	}
	return out
}

func TestParse(t *testing.T) {
	nodes, err := Parse("x=%d, %*5s%[a-z]y%z%%")
	require.NoError(t, err)
	want := []string{
		"lit:x=",
		"dir:%d:int",
		"lit:, ",
		"dir:%*5s:string",
		"dir:%[:scanset:[a-z]",
		"lit:y",
		"dir:%z:",
		"dir:%%:literal-percent",
	}
	got := summary(nodes)
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Fatalf("nodes differ:\n%s", strings.Join(diff, "\n"))
	}

	d := nodes[4].(*Directive)
	start, end := d.Span()
	require.Equal(t, 10, start)
	require.Equal(t, 16, end)
}

func TestBindings(t *testing.T) {
	nodes, err := Parse("%d %*s %n %% %q %5[0-9] %f")
	require.NoError(t, err)
	var letters []rune
	for _, d := range Bindings(nodes) {
		letters = append(letters, d.Spec.Letter)
	}
	require.Equal(t, "dn[f", string(letters))
	require.Equal(t, scan.CategoryCount, Bindings(nodes)[1].Category)
}

func TestParseBadScanSet(t *testing.T) {
	_, err := Parse("%[a-z")
	require.Error(t, err)
	_, err = Parse("%[z-a]")
	require.Error(t, err)
}

func TestToJSON(t *testing.T) {
	b, err := ToJSON("id=%3lld")
	require.NoError(t, err)

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(b, &nodes))
	require.Len(t, nodes, 2)
	require.Equal(t, "Literal", nodes[0]["_type"])
	require.Equal(t, "id=", nodes[0]["text"])
	require.Equal(t, "Directive", nodes[1]["_type"])
	require.Equal(t, "int", nodes[1]["family"])
	spec := nodes[1]["spec"].(map[string]any)
	require.Equal(t, "d", spec["letter"])
	require.Equal(t, "ll", spec["length"])
	require.Equal(t, float64(3), spec["width"])

	// keys keep struct order behind the type name
	text := string(b)
	require.Less(t, strings.Index(text, `"_type"`), strings.Index(text, `"type"`))
	require.Less(t, strings.Index(text, `"pos"`), strings.Index(text, `"spec"`))
}
