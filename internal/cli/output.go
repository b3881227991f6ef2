package cli

import (
	"fmt"
	"io"

	"github.com/sakiengine/saki/internal/ui"
)

func errorLine(err error) string {
	return "Error: " + err.Error()
}

func printSuccess(w io.Writer, theme *ui.Theme, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", theme.SymSuccess(), fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, theme *ui.Theme, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", theme.SymWarning(), theme.Warning.Render(fmt.Sprintf(format, args...)))
}

func printFailure(w io.Writer, theme *ui.Theme, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", theme.SymError(), theme.Error.Render(fmt.Sprintf(format, args...)))
}

func printMuted(w io.Writer, theme *ui.Theme, format string, args ...any) {
	_, _ = fmt.Fprintln(w, theme.Muted.Render(fmt.Sprintf(format, args...)))
}
