package llvm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgolang/uscan/libcutils"
)

func TestGenerateIR(t *testing.T) {
	req := require.New(t)
	out, err := GenerateIR("scan_point", "(%d,%lld) %lf %s")
	req.NoError(err)
	req.Contains(out, "@__isoc99_scanf(")
	req.Contains(out, `c"(%d,%lld) %lf %s\00"`)
	req.Contains(out, "define i32 @scan_point(")
	req.Contains(out, "%p3")
	req.Equal(1, strings.Count(out, "declare i32 @__isoc99_scanf"))
}

func TestGenerateIRNoSlots(t *testing.T) {
	out, err := GenerateIR("skip", "%*d%%")
	require.NoError(t, err)
	require.Contains(t, out, "define i32 @skip()")
}

func TestGenerateIRUnsupported(t *testing.T) {
	_, err := GenerateIR("wide", "%S")
	require.True(t, errors.Is(err, libcutils.ErrUnsupported))
}
