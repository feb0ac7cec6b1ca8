package entities

import (
	"testing"
	"time"
)

func TestParseRecordDate(t *testing.T) {
	t.Run("bare date anchors at local noon", func(t *testing.T) {
		got, ok := ParseRecordDate("2024-05-31")
		if !ok {
			t.Fatal("expected ok")
		}
		if got.Hour() != 12 || got.Year() != 2024 || got.Month() != time.May || got.Day() != 31 {
			t.Fatalf("unexpected time: %v", got)
		}
	})

	t.Run("iso instant keeps its time", func(t *testing.T) {
		got, ok := ParseRecordDate("2024-05-31T14:02:11.000Z")
		if !ok {
			t.Fatal("expected ok")
		}
		if !got.Equal(time.Date(2024, 5, 31, 14, 2, 11, 0, time.UTC)) {
			t.Fatalf("unexpected time: %v", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, ok := ParseRecordDate("no es fecha"); ok {
			t.Fatal("expected not ok")
		}
		if _, ok := ParseRecordDate(""); ok {
			t.Fatal("expected not ok for empty")
		}
	})
}

func TestIsDateOnly(t *testing.T) {
	if !IsDateOnly("2024-05-31") {
		t.Fatal("expected date-only")
	}
	if IsDateOnly("2024-05-31T00:00:00Z") {
		t.Fatal("instant is not date-only")
	}
	if IsDateOnly("31/05/2024") {
		t.Fatal("slash date is not date-only")
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2024-05-31"); got != "31/05/2024" {
		t.Fatalf("expected 31/05/2024, got %q", got)
	}
	if got := FormatDisplayDate("basura"); got != "-" {
		t.Fatalf("expected -, got %q", got)
	}
}
