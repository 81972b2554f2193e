package project

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecode(t *testing.T) {
	p := sampleProject()
	p.Title = "Roadmap"
	p.Watermark.Text = "CONFIDENTIAL"
	p.Watermark.Rotate = 0

	data, err := Encode(p, time.Date(2023, 11, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{`"version": 4`, `"start": "2023-11-01"`, `"projectTitle": "Roadmap"`, `"pos": "bottom-right"`, `"createdAt": "2023-11-20T09:00:00Z"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("encoded document missing %s:\n%s", want, data)
		}
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Legacy {
		t.Fatalf("wrapper document decoded as legacy")
	}
	if len(got.Tasks) != 3 || got.Tasks[2].ID != 5 || !got.Tasks[0].End.Equal(p.Tasks[0].End.Time) {
		t.Fatalf("tasks did not survive: %+v", got.Tasks)
	}
	if got.Watermark.Text != "CONFIDENTIAL" || got.Watermark.Rotate != 0 {
		t.Fatalf("watermark = %+v", got.Watermark)
	}
	if got.Title != "Roadmap" || got.Subtitle != DefaultSubtitle {
		t.Fatalf("titles = %q / %q", got.Title, got.Subtitle)
	}
}

func TestDecodeLegacyArray(t *testing.T) {
	data := []byte(`[{"id":1,"name":"Kickoff","start":"2023-11-01","end":"2023-11-05","progress":100,"category":"planning"}]`)
	p, err := Decode(data)
	if err != nil {
		t.Fatalf("decode legacy: %v", err)
	}
	if !p.Legacy {
		t.Fatalf("expected legacy flag")
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Name != "Kickoff" {
		t.Fatalf("tasks = %+v", p.Tasks)
	}
	if len(p.Categories) != len(DefaultCategories()) {
		t.Fatalf("legacy file should get default categories")
	}
}

func TestDecodeDefaults(t *testing.T) {
	data := []byte(`{"version":2,"tasks":[],"watermark":{"text":"draft"}}`)
	p, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := DefaultWatermark()
	want.Text = "draft"
	if p.Watermark != want {
		t.Fatalf("watermark = %+v, want %+v", p.Watermark, want)
	}
	if p.Title != DefaultTitle || len(p.Categories) != 5 {
		t.Fatalf("defaults not applied: %+v", p)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []string{
		``,
		`"tasks"`,
		`{"tasks":[]}`,
		`{"version":0,"tasks":[]}`,
		`{"version":4}`,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Decode(%q) = %v, want ErrUnknownFormat", in, err)
		}
	}
}

func TestDecodeSchemaViolation(t *testing.T) {
	data := []byte(`{"version":4,"tasks":[{"id":1,"name":"x","start":"yesterday","end":"2023-11-05"}]}`)
	_, err := Decode(data)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Path != "tasks[0].start" {
		t.Fatalf("path = %q", ve.Path)
	}
}

func TestDecodeLegacyRejectsMissingDates(t *testing.T) {
	tests := []struct {
		data string
		path string
	}{
		{`[{"id":1,"name":"Kickoff","start":"","end":"2023-11-05"}]`, "tasks[0].start"},
		{`[{"id":1,"name":"Kickoff","start":"2023-11-01","end":"2023-11-05"},{"id":2,"name":"API","start":"2023-11-06"}]`, "tasks[1]"},
	}
	for _, tc := range tests {
		_, err := Decode([]byte(tc.data))
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Decode(%s) = %v, want ValidationError", tc.data, err)
			continue
		}
		if ve.Path != tc.path {
			t.Errorf("Decode(%s) path = %q, want %q", tc.data, ve.Path, tc.path)
		}
	}
	if p, err := Decode([]byte(`[]`)); err != nil || len(p.Tasks) != 0 {
		t.Fatalf("empty legacy list = %+v, %v", p, err)
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	if err := d.UnmarshalJSON([]byte(`"2023-11-05T10:00:00Z"`)); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.String() != "2023-11-05" {
		t.Fatalf("date = %s", d)
	}
	if err := d.UnmarshalJSON([]byte(`""`)); err != nil || !d.IsZero() {
		t.Fatalf("empty date should be zero, got %v %v", d, err)
	}
	b, _ := Date{}.MarshalJSON()
	if string(b) != `""` {
		t.Fatalf("zero date marshals to %s", b)
	}
}

func TestPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"/tasks/0/name":     "tasks[0].name",
		"#/watermark/pos":   "watermark.pos",
		"/a~1b/3":           "a/b[3]",
		"/categories/12/id": "categories[12].id",
	}
	for in, want := range tests {
		if got := pointerToPath(in); got != want {
			t.Errorf("pointerToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
