package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOutputPathSwapsExtension(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.docx",
		"/tmp/scan.PDF":       "scan.docx",
		"book.v2.pdf":         "book.v2.docx",
		"noextension":         "noextension.docx",
	}
	for in, want := range cases {
		if got := defaultOutputPath(in); got != want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

// buildTestPDF writes a minimal, valid one-page PDF with correct xref
// offsets computed from the bytes actually written.
func buildTestPDF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make(map[int]int)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")

	content := "BT /F1 12 Tf 72 700 Td (Hello World) Tj ET"
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", xrefOffset)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing test PDF: %v", err)
	}
	return path
}

func TestExecuteSucceedsAndWritesOutput(t *testing.T) {
	in := buildTestPDF(t)
	out := filepath.Join(filepath.Dir(in), "out.docx")

	rootCmd.SetArgs([]string{in, out})
	if code := Execute(); code != 0 {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestExecuteMissingArgsReturnsUsageError(t *testing.T) {
	rootCmd.SetArgs([]string{})
	if code := Execute(); code != 1 {
		t.Errorf("Execute() with no args = %d, want 1", code)
	}
}

func TestExecuteMissingInputFileReturnsError(t *testing.T) {
	rootCmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.pdf")})
	if code := Execute(); code == 0 {
		t.Error("Execute() with a missing input file = 0, want non-zero")
	}
}

func TestExecuteHonorsNoImagesFlag(t *testing.T) {
	in := buildTestPDF(t)
	out := filepath.Join(filepath.Dir(in), "no-images.docx")

	rootCmd.SetArgs([]string{in, out, "--no-images", "--no-tables"})
	if code := Execute(); code != 0 {
		t.Fatalf("Execute() = %d, want 0", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}
