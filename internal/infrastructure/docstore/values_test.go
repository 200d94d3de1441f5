package docstore

import (
	"testing"
	"time"
)

type label string

func TestEncode(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 5, time.FixedZone("BRT", -3*3600))
	var nilTime *time.Time
	n := 7

	if got := Encode(at); got != "2024-03-01T13:00:00.000000005Z" {
		t.Errorf("unexpected time encoding %v", got)
	}
	if got := Encode(nilTime); got != nil {
		t.Errorf("expected nil for nil time pointer, got %v", got)
	}
	if got := Encode(&n); got != 7 {
		t.Errorf("expected dereferenced int, got %v", got)
	}
	if got := Encode(label("Tools")); got != "Tools" {
		t.Errorf("expected named string to encode as string, got %#v", got)
	}
}

func TestCompareOrdersTimestampsLexically(t *testing.T) {
	early := FormatTime(time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC))
	late := FormatTime(time.Date(2024, 1, 1, 0, 0, 5, 500, time.UTC))
	if Compare(early, late) >= 0 {
		t.Errorf("expected %s < %s", early, late)
	}
	if Compare(nil, early) >= 0 {
		t.Error("expected nil to sort before strings")
	}
	if Compare(2, 10.0) >= 0 {
		t.Error("expected numeric comparison across int and float")
	}
}

func TestDataReaders(t *testing.T) {
	d := Data{
		"n":     float64(3),
		"flag":  int64(1),
		"tags":  []any{"x", 2, "y"},
		"when":  "2024-03-01T13:00:00.000000000Z",
		"when2": "2024-03-01T13:00:00Z",
	}
	if got := d.Int("n"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if !d.Bool("flag") {
		t.Error("expected integer 1 to read as true")
	}
	if got := d.Strings("tags"); len(got) != 2 {
		t.Errorf("expected non-strings skipped, got %v", got)
	}
	if d.TimePtr("when") == nil || d.TimePtr("when2") == nil {
		t.Error("expected both timestamp layouts to parse")
	}
	if d.IntPtr("absent") != nil {
		t.Error("expected nil for absent int")
	}
	if got := d.Strings("absent"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
