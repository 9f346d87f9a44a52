// Package extract pulls raw string fields out of upstream HTML fragments.
package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var unescaper = strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\/`, "/")

// Unescape reverses the escaping applied when HTML is embedded in a JSON or
// JavaScript string literal.
func Unescape(raw string) string {
	return unescaper.Replace(raw)
}

// Parse unescapes and parses an HTML fragment.
func Parse(raw string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(Unescape(raw)))
}

// FieldSpec describes how to read one field from a container element.
type FieldSpec struct {
	Name string
	// Selector is evaluated relative to the container; empty means the container itself.
	Selector string
	// Attr reads an attribute instead of text.
	Attr string
	// OwnText reads only the direct text nodes of the matched element.
	OwnText bool
	// Pattern narrows the DOM value to its first capture group.
	Pattern *regexp.Regexp
	// Fallback is applied to the container's HTML when the DOM query yields nothing.
	Fallback *regexp.Regexp
	Optional bool
}

// Fields maps field names to raw, trimmed values.
type Fields map[string]string

// Extract evaluates specs against root. The first required field that cannot
// be read aborts extraction with an error naming the failing query.
func Extract(root *goquery.Selection, specs []FieldSpec) (Fields, error) {
	fields := make(Fields, len(specs))
	for _, spec := range specs {
		value, query, ok := readField(root, spec)
		if !ok {
			if spec.Optional {
				continue
			}
			return nil, Missing(spec.Name, query)
		}
		fields[spec.Name] = value
	}
	return fields, nil
}

// ExtractItems runs Extract for every element matched by container, keeping
// document order. Errors carry the index of the failing item.
func ExtractItems(root *goquery.Selection, container string, specs []FieldSpec) ([]Fields, error) {
	items := Items(root, container)
	out := make([]Fields, 0, len(items))
	for i, item := range items {
		fields, err := Extract(item, specs)
		if err != nil {
			var bad *BadUpstreamFormatError
			if errors.As(err, &bad) {
				bad.Item = i
			}
			return nil, err
		}
		out = append(out, fields)
	}
	return out, nil
}

// Items returns the elements matched by selector in document order.
func Items(root *goquery.Selection, selector string) []*goquery.Selection {
	matched := root.Find(selector)
	items := make([]*goquery.Selection, 0, matched.Length())
	matched.Each(func(_ int, s *goquery.Selection) {
		items = append(items, s)
	})
	return items
}

// Exists reports whether selector matches anything under root.
func Exists(root *goquery.Selection, selector string) bool {
	return root.Find(selector).Length() > 0
}

// HasClass reports whether root itself carries the CSS class.
func HasClass(root *goquery.Selection, class string) bool {
	return root.HasClass(class)
}

// Attr returns the attribute of the first element matched by selector.
func Attr(root *goquery.Selection, selector, attr string) (string, bool) {
	target := root
	if selector != "" {
		target = root.Find(selector).First()
	}
	if target.Length() == 0 {
		return "", false
	}
	return target.Attr(attr)
}

func readField(root *goquery.Selection, spec FieldSpec) (string, string, bool) {
	query := spec.Selector
	if value, ok := readDOM(root, spec); ok {
		if spec.Pattern == nil {
			return value, query, true
		}
		if sub, ok := submatch(spec.Pattern, value); ok {
			return sub, spec.Pattern.String(), true
		}
		query = spec.Pattern.String()
	}
	if spec.Fallback != nil {
		html, err := goquery.OuterHtml(root)
		if err == nil {
			if sub, ok := submatch(spec.Fallback, html); ok {
				return sub, spec.Fallback.String(), true
			}
		}
		query = spec.Fallback.String()
	}
	return "", query, false
}

func readDOM(root *goquery.Selection, spec FieldSpec) (string, bool) {
	target := root
	if spec.Selector != "" {
		target = root.Find(spec.Selector).First()
	}
	if target.Length() == 0 {
		return "", false
	}
	if spec.Attr != "" {
		value, ok := target.Attr(spec.Attr)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}
	var value string
	if spec.OwnText {
		value = ownText(target)
	} else {
		value = target.Text()
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

func submatch(re *regexp.Regexp, value string) (string, bool) {
	m := re.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[0]), true
}
