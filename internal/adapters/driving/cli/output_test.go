package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWriter_PlainOutputIsTSV(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := newTableWriter(buf)

	tw.Row("A", "B")
	tw.Row("with\ttab", "multi\nline")
	require.NoError(t, tw.Flush())

	assert.Equal(t, "A\tB\nwith tab\tmulti line\n", buf.String())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}
