package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.rawf(`<script src="%s"></script>`, htmxScript)
		h.raw(`<style>` + styles + `</style></head><body>`)
		h.raw(`<header class="topbar"><h1>`)
		h.text(title)
		h.raw(`</h1></header><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1f2937}
.topbar{background:#0f4c81;color:#fff;padding:12px 24px}
.topbar h1{margin:0;font-size:20px}
main{padding:16px 24px}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(180px,1fr));gap:12px}
.card{background:#fff;border-radius:8px;padding:12px;box-shadow:0 1px 2px rgba(0,0,0,.08)}
.card .label{font-size:12px;color:#6b7280;text-transform:uppercase}
.card .value{font-size:22px;font-weight:600}
section{margin-top:20px}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:6px 8px;border-bottom:1px solid #e5e7eb;text-align:left;font-size:14px}
form.filters{display:flex;gap:8px;flex-wrap:wrap;align-items:end}
.insights{white-space:pre-wrap;background:#fff;padding:12px;border-radius:8px}
.error{color:#b91c1c}
.muted{color:#6b7280;font-size:12px}
`
