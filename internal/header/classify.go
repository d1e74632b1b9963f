package header

import "strings"

// LineKind tags a header line.
type LineKind int

const (
	Data LineKind = iota
	InfoDecl
	FormatDecl
	OtherDecl
	ColumnHeader
)

func (k LineKind) String() string {
	switch k {
	case InfoDecl:
		return "InfoDecl"
	case FormatDecl:
		return "FormatDecl"
	case OtherDecl:
		return "OtherDecl"
	case ColumnHeader:
		return "ColumnHeader"
	default:
		return "Data"
	}
}

const (
	metaPrefix   = "##"
	headerPrefix = "#"
	infoPrefix   = metaPrefix + "INFO="
	formatPrefix = metaPrefix + "FORMAT="
)

// TrimTerminator strips one trailing "\n", "\r\n" or "\r".
func TrimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Classify tags a line. Terminators are ignored.
func Classify(line string) LineKind {
	line = TrimTerminator(line)
	switch {
	case strings.HasPrefix(line, infoPrefix):
		return InfoDecl
	case strings.HasPrefix(line, formatPrefix):
		return FormatDecl
	case strings.HasPrefix(line, metaPrefix):
		return OtherDecl
	case strings.HasPrefix(line, headerPrefix):
		return ColumnHeader
	default:
		return Data
	}
}
