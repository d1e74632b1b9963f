package header

import (
	"fmt"
	"strings"

	"vcfheader/internal/model"
)

// attribute is one KEY=VALUE pair of a declaration's <...> list.
type attribute struct {
	Key    string
	Value  string
	Quoted bool
}

// ParseDeclaration parses an ##INFO or ##FORMAT line into a field
// definition. Attribute order is free; unknown attributes are ignored.
func ParseDeclaration(line string) (model.Kind, model.FieldDefinition, error) {
	line = TrimTerminator(line)
	fail := func(reason error) (model.Kind, model.FieldDefinition, error) {
		return "", model.FieldDefinition{}, &FormatError{Text: line, Reason: reason}
	}

	var kind model.Kind
	var body string
	switch Classify(line) {
	case InfoDecl:
		kind, body = model.KindInfo, line[len(infoPrefix):]
	case FormatDecl:
		kind, body = model.KindFormat, line[len(formatPrefix):]
	default:
		return fail(ErrNotDeclaration)
	}

	body = strings.TrimRight(body, " \t")
	if len(body) < 2 || body[0] != '<' || body[len(body)-1] != '>' {
		return fail(ErrMalformedBrackets)
	}

	attrs, err := tokenize(body[1 : len(body)-1])
	if err != nil {
		return fail(err)
	}

	values := make(map[string]attribute, len(attrs))
	for _, a := range attrs {
		if _, dup := values[a.Key]; dup {
			return fail(fmt.Errorf("%w %s", ErrDuplicateKey, a.Key))
		}
		values[a.Key] = a
	}
	for _, key := range []string{"ID", "Number", "Type", "Description"} {
		if _, ok := values[key]; !ok {
			return fail(fmt.Errorf("%w %s", ErrMissingAttribute, key))
		}
	}

	def := model.FieldDefinition{ID: values["ID"].Value}
	if def.ID == "" {
		return fail(ErrEmptyID)
	}
	if def.Number, err = model.ParseNumber(values["Number"].Value); err != nil {
		return fail(fmt.Errorf("%w %q", ErrInvalidNumber, values["Number"].Value))
	}
	if def.Type, err = model.ParseFieldType(values["Type"].Value); err != nil {
		return fail(fmt.Errorf("%w %q", ErrInvalidType, values["Type"].Value))
	}
	desc := values["Description"]
	if !desc.Quoted {
		return fail(ErrUnquotedDesc)
	}
	def.Description = desc.Value

	return kind, def, nil
}

// tokenize splits the inside of <...> into attributes. Commas inside double
// quotes do not separate pairs; \" and \\ are unescaped inside quotes.
func tokenize(s string) ([]attribute, error) {
	var attrs []attribute
	i := 0
	for {
		eq := strings.IndexAny(s[i:], "=,\"<>")
		if eq < 0 || s[i+eq] != '=' || eq == 0 {
			return nil, fmt.Errorf("%w at offset %d", ErrMalformedPair, i)
		}
		a := attribute{Key: s[i : i+eq]}
		i += eq + 1

		if i < len(s) && s[i] == '"' {
			var b strings.Builder
			i++
			closed := false
			for i < len(s) {
				c := s[i]
				if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
					b.WriteByte(s[i+1])
					i += 2
					continue
				}
				i++
				if c == '"' {
					closed = true
					break
				}
				b.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf("%w for %s", ErrUnterminatedQuote, a.Key)
			}
			a.Value, a.Quoted = b.String(), true
		} else {
			end := strings.IndexAny(s[i:], ",\"<>")
			if end < 0 {
				end = len(s) - i
			} else if s[i+end] != ',' {
				if s[i+end] == '"' {
					return nil, fmt.Errorf("%w at offset %d", ErrMalformedPair, i+end)
				}
				return nil, ErrMalformedBrackets
			}
			a.Value = s[i : i+end]
			i += end
		}
		attrs = append(attrs, a)

		if i == len(s) {
			return attrs, nil
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("%w after %s", ErrMalformedPair, a.Key)
		}
		i++
	}
}
