package csvutil

import (
	"bytes"
	"encoding/csv"
	"net/http/httptest"
	"testing"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"Name", "Note"}, [][]string{
		{"Ali", "plain"},
		{"=SUM(A1)", "has, comma"},
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), bom) {
		t.Fatal("missing BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(bom):])).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[2][0] != "'=SUM(A1)" {
		t.Errorf("formula not neutralised: %q", records[2][0])
	}
	if records[2][1] != "has, comma" {
		t.Errorf("quoted cell: got %q", records[2][1])
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"hello":  "hello",
		"+92300": "'+92300",
		"-1":     "'-1",
		"@cmd":   "'@cmd",
		"a=b":    "a=b",
		"=1+1":   "'=1+1",
	}
	for in, want := range tests {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAttachment(rec, "sessions 2026.csv")
	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Errorf("content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="sessions%202026.csv"` {
		t.Errorf("disposition: %q", got)
	}
}
