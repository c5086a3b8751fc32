package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	madrid := Location("Europe/Madrid")

	got, err := ParseDate("2024-06-01", madrid)
	if err != nil {
		t.Fatalf("date only: %v", err)
	}
	if !got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, madrid)) {
		t.Fatalf("unexpected %v", got)
	}

	got, err = ParseDate("2024-06-03T18:30:00Z", madrid)
	if err != nil || !got.Equal(time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339: %v %v", got, err)
	}

	if _, err := ParseDate("03/06/2024", madrid); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("Not/AZone") != time.UTC {
		t.Fatal("invalid zone should fall back to UTC")
	}
	if IsValid("") {
		t.Fatal("empty zone reported valid")
	}
}
