package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconInfo     = "ℹ" // INFO declaration
	IconFormat   = "ƒ" // FORMAT declaration
	IconFixed    = "#" // fixed Number
	IconVariable = "∗" // A, R, G or . Number
	IconConflict = "✗" // incompatible redeclaration
)

// KindIcon returns the glyph shown next to a declaration of kind.
func KindIcon(kind Kind) string {
	if kind == KindFormat {
		return IconFormat
	}
	return IconInfo
}

// NumberIcon distinguishes fixed from variable cardinality.
func NumberIcon(n Number) string {
	if n.Cardinality == Fixed {
		return IconFixed
	}
	return IconVariable
}
