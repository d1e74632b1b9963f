package header

import (
	"errors"
	"fmt"
	"iter"

	"vcfheader/internal/model"
)

// ExtractFile scans one file's lines up to and including the column header
// and collects its INFO and FORMAT declarations. name is only used for
// provenance and error messages. A duplicate id within the file replaces the
// earlier declaration.
func ExtractFile(name string, lines iter.Seq2[string, error]) (model.HeaderFieldSet, error) {
	fields := model.NewHeaderFieldSet()
	lineNum := 0

	for raw, err := range lines {
		if err != nil {
			return model.HeaderFieldSet{}, fmt.Errorf("read %s: %w", name, err)
		}
		lineNum++
		line := TrimTerminator(raw)

		switch Classify(line) {
		case InfoDecl, FormatDecl:
			kind, def, err := ParseDeclaration(line)
			if err != nil {
				var fe *FormatError
				if errors.As(err, &fe) {
					fe.File, fe.Line = name, lineNum
				}
				return model.HeaderFieldSet{}, err
			}
			def.Source, def.Line = name, lineNum
			fields.Put(kind, def)
		case OtherDecl:
			continue
		case ColumnHeader:
			return fields, nil
		case Data:
			return model.HeaderFieldSet{}, &FormatError{
				File:   name,
				Line:   lineNum,
				Text:   truncate(line, 80),
				Reason: fmt.Errorf("%w before data", ErrNoColumnHeader),
			}
		}
	}

	return model.HeaderFieldSet{}, &FormatError{File: name, Line: lineNum, Reason: ErrNoColumnHeader}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
