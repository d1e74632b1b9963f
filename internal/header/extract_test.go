package header

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcfheader/internal/model"
)

// sliceLines adapts an in-memory slice to the line sequence ExtractFile reads.
func sliceLines(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
	}
}

const columnHeader = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSample1\tSample2\n"

func TestExtractFile_OneFile(t *testing.T) {
	lines := []string{
		"##fileformat=VCFv4.2\n",
		"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"Number samples\">\n",
		"##INFO=<ID=AF,Number=A,Type=Float,Description=\"Allele Frequency\">\n",
		"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n",
		"##FORMAT=<ID=GQ,Number=1,Type=Integer,Description=\"GQ\">\n",
		columnHeader,
	}

	fields, err := ExtractFile("a.vcf", sliceLines(lines))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"NS", "AF"}, fields.IDs(model.KindInfo))
	assert.ElementsMatch(t, []string{"GT", "GQ"}, fields.IDs(model.KindFormat))

	ns := fields.Infos["NS"]
	assert.Equal(t, "a.vcf", ns.Source)
	assert.Equal(t, 2, ns.Line)
	assert.Equal(t, "Number samples", ns.Description)
}

func TestExtractFile_StopsAtColumnHeader(t *testing.T) {
	lines := []string{
		"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"x\">",
		columnHeader,
		"1\t100\t.\tA\tT\t.\t.\t.",
		"##INFO=<ID=LATE,Number=1,Type=Integer,Description=\"after header\">",
		"not even valid",
	}

	fields, err := ExtractFile("a.vcf", sliceLines(lines))
	require.NoError(t, err)
	assert.Equal(t, []string{"NS"}, fields.IDs(model.KindInfo))
}

func TestExtractFile_DuplicateWithinFileLastWins(t *testing.T) {
	lines := []string{
		"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"first\">",
		"##INFO=<ID=NS,Number=2,Type=Float,Description=\"second\">",
		columnHeader,
	}

	fields, err := ExtractFile("a.vcf", sliceLines(lines))
	require.NoError(t, err)
	require.Len(t, fields.Infos, 1)
	assert.Equal(t, model.FixedNumber(2), fields.Infos["NS"].Number)
	assert.Equal(t, model.Float, fields.Infos["NS"].Type)
	assert.Equal(t, "second", fields.Infos["NS"].Description)
}

func TestExtractFile_NamespacesAreDistinct(t *testing.T) {
	lines := []string{
		"##INFO=<ID=DP,Number=1,Type=Integer,Description=\"site depth\">",
		"##FORMAT=<ID=DP,Number=1,Type=Float,Description=\"sample depth\">",
		columnHeader,
	}

	fields, err := ExtractFile("a.vcf", sliceLines(lines))
	require.NoError(t, err)
	assert.Equal(t, model.Integer, fields.Infos["DP"].Type)
	assert.Equal(t, model.Float, fields.Formats["DP"].Type)
}

func TestExtractFile_EmptyHeaderIsValid(t *testing.T) {
	fields, err := ExtractFile("a.vcf", sliceLines([]string{"##fileformat=VCFv4.2", "#CHROM"}))
	require.NoError(t, err)
	assert.True(t, fields.Equal(model.NewHeaderFieldSet()))
}

func TestExtractFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		want     error
		wantLine int
	}{
		{
			name: "invalid declaration",
			lines: []string{
				"##fileformat=VCFv4.2\n",
				"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"Number samples\">\n",
				"##INFO=<ID=AF,Number=A,Type=Float,Desc\n",
				"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\r\n",
				columnHeader,
			},
			want:     ErrMalformedBrackets,
			wantLine: 3,
		},
		{
			name: "data before column header",
			lines: []string{
				"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"x\">",
				"1\t100\t.\tA\tT\t.\t.\t.",
			},
			want:     ErrNoColumnHeader,
			wantLine: 2,
		},
		{
			name: "no column header",
			lines: []string{
				"##fileformat=VCFv4.2",
				"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"x\">",
			},
			want:     ErrNoColumnHeader,
			wantLine: 2,
		},
		{
			name:  "empty file",
			lines: nil,
			want:  ErrNoColumnHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractFile("bad.vcf", sliceLines(tt.lines))
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want *FormatError, got %T", err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, "bad.vcf", fe.File)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Contains(t, err.Error(), "bad.vcf")
		})
	}
}

func TestExtractFile_ReadError(t *testing.T) {
	readErr := errors.New("disk gone")
	var lines iter.Seq2[string, error] = func(yield func(string, error) bool) {
		if !yield("##fileformat=VCFv4.2", nil) {
			return
		}
		yield("", readErr)
	}

	_, err := ExtractFile("a.vcf", lines)
	require.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "a.vcf")
}
