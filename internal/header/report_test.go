package header

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vcfheader/internal/model"
)

func TestGenerateReport(t *testing.T) {
	fields, err := Merge(fileA(), fileB())
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	res := Result{Files: []string{"a.vcf", "b.vcf"}, Fields: fields}

	report := GenerateReport(res, false)
	assert.Contains(t, report, "Files: 2")
	assert.Contains(t, report, "INFO (3)")
	assert.Contains(t, report, "FORMAT (3)")
	for _, id := range []string{"NS", "NS2", "AF", "GT", "GQ", "GQ2"} {
		assert.Contains(t, report, id)
	}
	assert.Contains(t, report, "Type=Float")
	assert.NotContains(t, report, "Allele Frequency")

	verbose := GenerateReport(res, true)
	assert.Contains(t, verbose, "Allele Frequency")
	assert.Contains(t, verbose, "from a.vcf:1")
}

func TestGenerateReport_Empty(t *testing.T) {
	report := GenerateReport(Result{Fields: model.NewHeaderFieldSet()}, false)
	assert.Contains(t, report, "No INFO or FORMAT declarations found.")
}
