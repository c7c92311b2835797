package export

import (
	"testing"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

func rec(number string, minutes int) model.CallRecord {
	return model.CallRecord{
		Date:    "11/04",
		Time:    "8:14PM",
		Number:  number,
		Minutes: minutes,
	}
}

func TestTransform_DurationFilter(t *testing.T) {
	tr := NewTransformer(1, nil)

	out := tr.Transform([]model.CallRecord{
		rec("555.987.0001", 1),
		rec("555.987.0002", 2),
		rec("555.987.0003", 45),
		rec("555.987.0004", 1),
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 records at or under 1 minute, got %d", len(out))
	}
	if out[0].Number != "555.987.0001" || out[1].Number != "555.987.0004" {
		t.Errorf("document order not preserved: %+v", out)
	}
}

func TestTransform_DurationFilterDisabled(t *testing.T) {
	tr := NewTransformer(0, nil)

	out := tr.Transform([]model.CallRecord{rec("555.987.0001", 45)})
	if len(out) != 1 {
		t.Errorf("maxMinutes 0 should disable the filter, got %d records", len(out))
	}
}

func TestTransform_WhitelistNormalization(t *testing.T) {
	tr := NewTransformer(1, []string{"5559870001", "555.987.0002"})

	out := tr.Transform([]model.CallRecord{
		rec("555.987.0001", 1), // whitelisted as bare digits
		rec("555-987-0002", 1), // whitelisted with different separators
		rec("555.987.0003", 1),
	})

	if len(out) != 1 || out[0].Number != "555.987.0003" {
		t.Errorf("expected only the non-whitelisted record, got %+v", out)
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"555.123.4567", "5551234567"},
		{"555-123-4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"(555) 123 4567", "5551234567"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeNumber(tt.in); got != tt.want {
			t.Errorf("NormalizeNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
