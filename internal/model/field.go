package model

import (
	"fmt"
	"strconv"
)

// Kind names the header namespace a declaration belongs to.
type Kind string

const (
	KindInfo   Kind = "INFO"
	KindFormat Kind = "FORMAT"
)

// Kinds lists the namespaces in report order.
var Kinds = []Kind{KindInfo, KindFormat}

// Cardinality tells how the value count of a field is determined.
type Cardinality int

const (
	Fixed        Cardinality = iota // exactly Count values
	PerAltAllele                    // "A": one per alternate allele
	PerAllele                       // "R": one per allele, reference included
	PerGenotype                     // "G": one per possible genotype
	Unknown                         // ".": unbounded or unknown
)

// Number is the parsed Number attribute of a declaration.
type Number struct {
	Cardinality Cardinality
	Count       int // only meaningful for Fixed
}

// FixedNumber returns a Number carrying exactly n values.
func FixedNumber(n int) Number {
	return Number{Cardinality: Fixed, Count: n}
}

var symbolicNumbers = map[string]Cardinality{
	"A": PerAltAllele,
	"R": PerAllele,
	"G": PerGenotype,
	".": Unknown,
}

// ParseNumber parses a VCF Number token.
func ParseNumber(s string) (Number, error) {
	if c, ok := symbolicNumbers[s]; ok {
		return Number{Cardinality: c}, nil
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	return FixedNumber(n), nil
}

func (n Number) String() string {
	switch n.Cardinality {
	case PerAltAllele:
		return "A"
	case PerAllele:
		return "R"
	case PerGenotype:
		return "G"
	case Unknown:
		return "."
	default:
		return strconv.Itoa(n.Count)
	}
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalText(text []byte) error {
	parsed, err := ParseNumber(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// FieldType is the declared value type of a field.
type FieldType int

const (
	Integer FieldType = iota + 1
	Float
	String
	Character
	Flag
)

var fieldTypeNames = map[FieldType]string{
	Integer:   "Integer",
	Float:     "Float",
	String:    "String",
	Character: "Character",
	Flag:      "Flag",
}

// ParseFieldType parses a VCF Type token. Matching is case-sensitive.
func ParseFieldType(s string) (FieldType, error) {
	for t, name := range fieldTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid type %q", s)
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FieldDefinition is one declared INFO or FORMAT field.
type FieldDefinition struct {
	ID          string    `json:"id"`
	Number      Number    `json:"number"`
	Type        FieldType `json:"type"`
	Description string    `json:"description"`

	// Provenance, not part of equality.
	Source string `json:"source,omitempty"` // file the definition was read from
	Line   int    `json:"line,omitempty"`   // 1-based line number in Source
}

// Compatible reports whether two definitions of the same id agree on
// cardinality and type.
func (f FieldDefinition) Compatible(o FieldDefinition) bool {
	return f.Number == o.Number && f.Type == o.Type
}

// Equal compares the declared attributes, ignoring provenance.
func (f FieldDefinition) Equal(o FieldDefinition) bool {
	return f.ID == o.ID && f.Compatible(o) && f.Description == o.Description
}

// Signature renders the (Number, Type) pair used in conflict reports.
func (f FieldDefinition) Signature() string {
	return fmt.Sprintf("Number=%s,Type=%s", f.Number, f.Type)
}
