package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// rawf formats into markup. String arguments are HTML-escaped; format itself
// is written as is.
func (h *htmlWriter) rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		case fmt.Stringer:
			escaped[i] = templ.EscapeString(v.String())
		default:
			escaped[i] = a
		}
	}
	h.raw(fmt.Sprintf(format, escaped...))
}

func (h *htmlWriter) tag(name, class, content string) {
	h.rawf(`<%s class="%s">`, name, class)
	h.text(content)
	h.rawf(`</%s>`, name)
}
