package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// tableWriter aligns columns on a terminal and emits plain TSV when
// output is piped, so scripts can cut(1) the result.
type tableWriter struct {
	out io.Writer
	tw  *tabwriter.Writer
}

func newTableWriter(out io.Writer) *tableWriter {
	t := &tableWriter{out: out}
	if isTerminal(out) {
		t.tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	}
	return t
}

// Row writes one line. Tabs and newlines inside values are flattened.
func (t *tableWriter) Row(cols ...string) {
	clean := make([]string, len(cols))
	for i, c := range cols {
		clean[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(c)
	}
	line := strings.Join(clean, "\t") + "\n"
	if t.tw != nil {
		fmt.Fprint(t.tw, line)
		return
	}
	fmt.Fprint(t.out, line)
}

// Flush writes buffered rows.
func (t *tableWriter) Flush() error {
	if t.tw != nil {
		return t.tw.Flush()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
