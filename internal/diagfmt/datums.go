package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sled/internal/datum"
	"sled/internal/directive"
	"sled/internal/source"
)

// DatumsPretty печатает по одному датуму на строку вместе с позицией начала.
func DatumsPretty(w io.Writer, fs *source.FileSet, vals []datum.Value, mode PathMode) {
	for _, v := range vals {
		f := fs.Get(v.Span.File)
		start, _ := fs.Resolve(v.Span)
		fmt.Fprintf(w, "%s:%d:%d: %s\n", formatPath(f, mode), start.Line, start.Col, datum.Write(v))
	}
}

// DirectivesPretty prints collected line directives, one per line.
func DirectivesPretty(w io.Writer, fs *source.FileSet, dirs []directive.Directive, mode PathMode) {
	for _, d := range dirs {
		f := fs.Get(d.Span.File)
		start, _ := fs.Resolve(d.Span)
		fmt.Fprintf(w, "%s:%d: %s\n", formatPath(f, mode), start.Line, d)
	}
}

// DatumJSON представляет один датум для JSON-вывода.
// Для атомов заполнен Text (исходная лексема), для строк дополнительно
// Value; для списков и векторов - Items.
type DatumJSON struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Value    string       `json:"value,omitempty"`
	Items    []DatumJSON  `json:"items,omitempty"`
	Location LocationJSON `json:"location"`
}

// DirectiveJSON представляет одну линейную директиву для JSON-вывода.
type DirectiveJSON struct {
	Datums   []DatumJSON  `json:"datums"`
	Rendered string       `json:"rendered"`
	Location LocationJSON `json:"location"`
}

// ScanOutputJSON — корневая структура вывода sled scan --format json.
type ScanOutputJSON struct {
	Datums     []DatumJSON     `json:"datums"`
	Directives []DirectiveJSON `json:"directives"`
}

func makeDatumJSON(v datum.Value, fs *source.FileSet, opts JSONOpts) DatumJSON {
	out := DatumJSON{
		Kind:     v.Kind.String(),
		Text:     v.Text,
		Location: makeLocation(v.Span, fs, opts.PathMode, opts.IncludePositions),
	}
	if v.Kind == datum.String {
		out.Value = v.Str
	}
	for _, it := range v.List {
		out.Items = append(out.Items, makeDatumJSON(it, fs, opts))
	}
	return out
}

func makeDirectiveJSON(d directive.Directive, fs *source.FileSet, opts JSONOpts) DirectiveJSON {
	out := DirectiveJSON{
		Rendered: d.String(),
		Datums:   make([]DatumJSON, 0, d.Len()),
		Location: makeLocation(d.Span, fs, opts.PathMode, opts.IncludePositions),
	}
	for _, v := range d.Datums {
		out.Datums = append(out.Datums, makeDatumJSON(v, fs, opts))
	}
	return out
}

// ScanJSON сериализует датумы и директивы одного прогона в JSON.
func ScanJSON(w io.Writer, fs *source.FileSet, vals []datum.Value, dirs []directive.Directive, opts JSONOpts) error {
	out := ScanOutputJSON{
		Datums:     make([]DatumJSON, 0, len(vals)),
		Directives: make([]DirectiveJSON, 0, len(dirs)),
	}
	for _, v := range vals {
		out.Datums = append(out.Datums, makeDatumJSON(v, fs, opts))
	}
	for _, d := range dirs {
		out.Directives = append(out.Directives, makeDirectiveJSON(d, fs, opts))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
