package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcfheader/internal/header"
	"vcfheader/internal/model"
	"vcfheader/internal/source"
)

const (
	vcfA = "##fileformat=VCFv4.2\n" +
		"##INFO=<ID=NS,Number=1,Type=Integer,Description=\"Number samples\">\n" +
		"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	vcfConflict = "##fileformat=VCFv4.2\n" +
		"##INFO=<ID=NS,Number=2,Type=Integer,Description=\"Number samples\">\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	vcfBroken = "##fileformat=VCFv4.2\n" +
		"##INFO=<ID=NS,Number=x,Type=Integer,Description=\"Number samples\">\n" +
		"#CHROM\tPOS\n"
)

func newTestServer(t *testing.T, files map[string]string) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	srv := httptest.NewServer(NewServer(header.NewOrchestrator(nil), nil).Routes())
	t.Cleanup(srv.Close)
	return srv, dir
}

func get(t *testing.T, srv *httptest.Server, path string, query url.Values) *http.Response {
	t.Helper()
	u := srv.URL + path
	if query != nil {
		u += "?" + query.Encode()
	}
	resp, err := http.Get(u)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleHeaders(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"a.vcf": vcfA})

	resp := get(t, srv, "/api/headers", url.Values{"pattern": {filepath.Join(dir, "*.vcf")}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Files   []string             `json:"files"`
		Fields  model.HeaderFieldSet `json:"fields"`
		Version string               `json:"version"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{filepath.Join(dir, "a.vcf")}, body.Files)
	assert.Equal(t, model.Version, body.Version)
	require.Contains(t, body.Fields.Infos, "NS")
	assert.Equal(t, model.FixedNumber(1), body.Fields.Infos["NS"].Number)
	assert.Equal(t, model.String, body.Fields.Formats["GT"].Type)
}

func TestHandleHeaders_Errors(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{
		"a.vcf":        vcfA,
		"conflict.vcf": vcfConflict,
		"broken.vcf":   vcfBroken,
	})

	resp := get(t, srv, "/api/headers", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = get(t, srv, "/api/headers", url.Values{"pattern": {filepath.Join(dir, "[.vcf")}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var bad errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bad))
	assert.Equal(t, "pattern", bad.Kind)

	tests := []struct {
		name     string
		pattern  string
		wantKind string
		wantLine int
	}{
		{"incompatible", "{a,conflict}.vcf", "incompatible", 0},
		{"format", "broken.vcf", "format", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, "/api/headers", url.Values{"pattern": {filepath.Join(dir, tt.pattern)}})
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantLine, body.Line)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleLineContext(t *testing.T) {
	srv, dir := newTestServer(t, map[string]string{"broken.vcf": vcfBroken, "a.vcf": vcfA})
	broken := filepath.Join(dir, "broken.vcf")
	query := url.Values{"path": {broken}, "line": {"2"}}

	// Not yet resolved by any merge request.
	resp := get(t, srv, "/api/line-context", query)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, srv, "/api/headers", url.Values{"pattern": {broken}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = get(t, srv, "/api/line-context", query)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lc source.LineContext
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lc))
	assert.Contains(t, lc.Target, "Number=x")
	assert.Equal(t, "##fileformat=VCFv4.2", lc.Before1)
	assert.True(t, lc.HasAfter1)

	resp = get(t, srv, "/api/line-context", url.Values{"path": {"x.vcf"}, "line": {"two"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = get(t, srv, "/api/line-context", url.Values{"path": {"x.vcf"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{filepath.Join(dir, "a.vcf"), "~/broken.vcf", "/etc/passwd"} {
		resp = get(t, srv, "/api/line-context", url.Values{"path": {path}, "line": {"1"}})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp = get(t, srv, "/api/headers", url.Values{"pattern": {filepath.Join(dir, "a.vcf")}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = get(t, srv, "/api/line-context", url.Values{"path": {filepath.Join(dir, "a.vcf")}, "line": {"1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleHelp(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := get(t, srv, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/markdown"))

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), model.Version)
	assert.NotContains(t, sb.String(), "{{VERSION}}")
}
