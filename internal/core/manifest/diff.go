package manifest

import (
	"context"
	"io"
	"path/filepath"

	"github.com/pkg/diff"
)

// DefaultContextSize is the number of unchanged lines shown around each hunk.
const DefaultContextSize = 3

// WriteDiff writes a unified diff between the manifest before and after the
// change. Nothing is written when the change is a no-op.
func (c *Change) WriteDiff(ctx context.Context, w io.Writer, color bool) error {
	if !c.Changed() {
		return nil
	}
	name := filepath.ToSlash(c.Path)
	opts := []diff.WriteOpt{diff.Names("a/"+name, "b/"+name)}
	if color {
		opts = append(opts, diff.TerminalColor())
	}

	pair := diff.Bytes(toBytes(c.Before.lines), toBytes(c.After.lines))
	edit := diff.Myers(ctx, pair).WithContextSize(DefaultContextSize)
	_, err := edit.WriteUnified(w, pair, opts...)
	return err
}

func toBytes(lines []string) [][]byte {
	out := make([][]byte, len(lines))
	for i, line := range lines {
		out[i] = []byte(line)
	}
	return out
}
