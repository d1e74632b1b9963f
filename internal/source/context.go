package source

import (
	"context"
	"fmt"
)

// LineContext represents a line from a file with surrounding context
type LineContext struct {
	Before2    string // Two lines before the target
	Before1    string // Line before the target
	Target     string // The actual target line
	After1     string // Line after the target
	After2     string // Two lines after the target
	LineNumber int    // Line number of the target
	HasBefore2 bool   // Whether there's a second line before
	HasBefore1 bool   // Whether there's a line before
	HasAfter1  bool   // Whether there's a line after
	HasAfter2  bool   // Whether there's a second line after
	ErrorMsg   string // Error message if file couldn't be read
}

// GetLineContext reads a (possibly compressed) file through opener and
// returns the target line with surrounding context. Reading stops two lines
// past the target, so large record sections are never scanned.
func GetLineContext(ctx context.Context, opener Opener, filePath string, lineNumber int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
	}

	if lineNumber < 1 {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range", lineNumber)
		return result
	}

	r, err := opener.Open(ctx, filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer r.Close()

	var lines []string
	for line, err := range Lines(r) {
		if err != nil {
			result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
			return result
		}
		lines = append(lines, line)
		if len(lines) >= lineNumber+2 {
			break
		}
	}

	if lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, len(lines))
		return result
	}

	// Get the target line (convert to 0-indexed)
	result.Target = lines[lineNumber-1]

	if lineNumber > 2 {
		result.Before2 = lines[lineNumber-3]
		result.HasBefore2 = true
	}
	if lineNumber > 1 {
		result.Before1 = lines[lineNumber-2]
		result.HasBefore1 = true
	}

	if lineNumber < len(lines) {
		result.After1 = lines[lineNumber]
		result.HasAfter1 = true
	}
	if lineNumber+1 < len(lines) {
		result.After2 = lines[lineNumber+1]
		result.HasAfter2 = true
	}

	return result
}
