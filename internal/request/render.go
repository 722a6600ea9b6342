package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/pretty"
)

// render prints a successful response the way its method calls for:
// headers only for HEAD, the Allow header for OPTIONS, the body otherwise
func (e *Executor) render(method string, resp *response) {
	switch method {
	case http.MethodHead:
		e.renderHeaders(resp.header)
	case http.MethodOptions:
		if allow := resp.header.Get("Allow"); allow != "" {
			fmt.Fprintf(e.out, "Allowed methods: %s\n", allow)
			return
		}
		e.renderHeaders(resp.header)
	default:
		e.renderBody(resp.body)
	}
}

func (e *Executor) renderHeaders(h http.Header) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(e.out, "%s: %s\n", k, strings.Join(h.Values(k), ", "))
	}
}

// renderBody indents JSON bodies and prints anything else verbatim
func (e *Executor) renderBody(body []byte) {
	if len(body) == 0 {
		fmt.Fprintln(e.out, "(empty response body)")
		return
	}

	if !json.Valid(body) {
		text := string(body)
		fmt.Fprint(e.out, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(e.out)
		}
		return
	}

	formatted := pretty.PrettyOptions(body, &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false,
	})
	if e.color {
		formatted = pretty.Color(formatted, nil)
	}
	e.out.Write(formatted)
}
