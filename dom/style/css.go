package style

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// ParseDeclarations parses CSS declarations as they appear in an inline
// style attribute, e.g.
//
//    "display: flex; flex-direction: row"
//
// Property names are returned in lower case. Declarations marked as
// `!important` keep the flag as a suffix of the value.
func ParseDeclarations(text string) ([]KeyValue, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !strings.HasSuffix(text, ";") { // douceur drops an unterminated last value
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse style declarations: %w", err)
	}
	kvs := make([]KeyValue, 0, len(decls))
	for _, d := range decls {
		value := d.Value
		if d.Important {
			value += " !important"
		}
		kvs = append(kvs, KeyValue{
			Key:   strings.ToLower(d.Property),
			Value: Property(value),
		})
	}
	return kvs, nil
}

// SetStyleText parses an inline style text and sets every declaration as
// a style property.
func (ps *PropertySet) SetStyleText(text string) error {
	kvs, err := ParseDeclarations(text)
	if err != nil {
		return err
	}
	for _, kv := range kvs {
		ps.styles.set(kv.Key, kv.Value)
	}
	tracer().Debugf("style: set %d declarations from inline style", len(kvs))
	return nil
}

// StyleText renders the style namespace of a property set as an inline style
// attribute value, in order of first insertion.
func (ps *PropertySet) StyleText() string {
	return DeclarationsText(ps.styles.all())
}

// DeclarationsText renders properties as CSS declarations.
func DeclarationsText(kvs []KeyValue) string {
	parts := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		decl := css.NewDeclaration()
		decl.Property = kv.Key
		value := kv.Value.String()
		if strings.HasSuffix(value, "!important") {
			decl.Important = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		}
		decl.Value = value
		parts = append(parts, decl.String())
	}
	return strings.Join(parts, " ")
}
