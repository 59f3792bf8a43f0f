// Package template parses and expands R2RML string templates.
//
// A template is a format string with {name} placeholders naming source fields.
// Literal braces are written \{ and \}, a literal backslash as \\.
// Braces inside a placeholder name must be escaped the same way.
package template

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSyntax is matched by every template grammar failure.
var ErrSyntax = stderrors.New("template syntax error")

// SyntaxError describes a malformed template and where parsing stopped.
type SyntaxError struct {
	Template string
	Offset   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrSyntax.Error(), e.Msg, e.Offset, e.Template)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

const escapeHint = `escape literal braces as \{ and \} and backslashes as \\`

// Segment is either literal text or a placeholder.
type Segment struct {
	// Text holds the unescaped literal text, or the placeholder name.
	Text string

	// Placeholder is true when Text names a source field.
	Placeholder bool
}

// Template is a parsed string template. It is immutable and safe for concurrent use.
type Template struct {
	raw      string
	segments []Segment
}

// Parse checks the template grammar and splits it into segments.
func Parse(raw string) (*Template, error) {
	var (
		segments []Segment
		cur      strings.Builder
		inName   bool
		open     int
	)

	fail := func(offset int, format string, args ...any) (*Template, error) {
		err := &SyntaxError{Template: raw, Offset: offset, Msg: fmt.Sprintf(format, args...)}
		return nil, errors.WithHint(err, escapeHint)
	}

	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '\\':
			if i+1 < len(raw) && (raw[i+1] == '{' || raw[i+1] == '}' || raw[i+1] == '\\') {
				i++
				cur.WriteByte(raw[i])
				continue
			}
			cur.WriteByte(c)
		case '{':
			if inName {
				return fail(i, "unescaped '{' inside placeholder opened at offset %d", open)
			}
			if cur.Len() > 0 {
				segments = append(segments, Segment{Text: cur.String()})
				cur.Reset()
			}
			inName = true
			open = i
		case '}':
			if !inName {
				return fail(i, "unmatched '}'")
			}
			if cur.Len() == 0 {
				return fail(open, "empty placeholder")
			}
			segments = append(segments, Segment{Text: cur.String(), Placeholder: true})
			cur.Reset()
			inName = false
		default:
			cur.WriteByte(c)
		}
	}

	if inName {
		return fail(open, "unterminated placeholder")
	}
	if cur.Len() > 0 {
		segments = append(segments, Segment{Text: cur.String()})
	}

	return &Template{raw: raw, segments: segments}, nil
}

// Validate reports whether raw is a well-formed template.
func Validate(raw string) error {
	_, err := Parse(raw)
	return err
}

// Names returns the placeholder names of raw in left-to-right order.
// Repeated placeholders are returned once per occurrence.
func Names(raw string) ([]string, error) {
	t, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return t.Names(), nil
}

// String returns the template as written.
func (t *Template) String() string { return t.raw }

// Segments returns a copy of the parsed segments.
func (t *Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Names returns the placeholder names in order of appearance.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.segments))
	for _, seg := range t.segments {
		if seg.Placeholder {
			names = append(names, seg.Text)
		}
	}
	return names
}

// Expand substitutes bound values into the template. escape is applied to each
// value (nil leaves values untouched). ok is false when any placeholder has no
// value, in which case no term is generated.
func (t *Template) Expand(lookup func(name string) (string, bool), escape func(string) string) (string, bool) {
	return t.ExpandAt(func(_ int, name string) (string, bool) { return lookup(name) }, escape)
}

// ExpandAt is Expand with placeholders also identified by their position among
// the template's placeholders, matching the order of Names.
func (t *Template) ExpandAt(lookup func(pos int, name string) (string, bool), escape func(string) string) (string, bool) {
	var sb strings.Builder
	pos := 0
	for _, seg := range t.segments {
		if !seg.Placeholder {
			sb.WriteString(seg.Text)
			continue
		}
		v, found := lookup(pos, seg.Text)
		pos++
		if !found {
			return "", false
		}
		if escape != nil {
			v = escape(v)
		}
		sb.WriteString(v)
	}
	return sb.String(), true
}

// Escape quotes literal text so that it parses back as a single literal segment.
func Escape(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)
	return r.Replace(text)
}
