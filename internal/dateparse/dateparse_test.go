package dateparse

import "testing"

func TestYear_RangeTakesStart(t *testing.T) {
	y, ok := Year("1940-12-20/1940-12-31")
	if !ok || y != 1940 {
		t.Errorf("Year = %d, %v; want 1940, true", y, ok)
	}
}

func TestYear_NoDigits(t *testing.T) {
	if _, ok := Year("o.D."); ok {
		t.Error("expected no year for o.D.")
	}
	if _, ok := Year(""); ok {
		t.Error("expected no year for empty string")
	}
}

func TestYear_EmbeddedYear(t *testing.T) {
	y, ok := Year("ca. 1952 (Bayreuth)")
	if !ok || y != 1952 {
		t.Errorf("Year = %d, %v; want 1952, true", y, ok)
	}
}

func TestPeriod(t *testing.T) {
	if got := Period(1952, 5); got != "1950-1954" {
		t.Errorf("Period(1952, 5) = %q", got)
	}
	if got := Period(1950, 5); got != "1950-1954" {
		t.Errorf("Period(1950, 5) = %q", got)
	}
	if got := Period(1944, 5); got != "1940-1944" {
		t.Errorf("Period(1944, 5) = %q", got)
	}
}

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1958-04-18", "18. Apr. 1958"},
		{"1958", "1958"},
		{"1958-04", "Apr. 1958"},
		{"1958-01-01/1958-12-31", "1958"},
		{"1950-01-01/1960-12-31", "1950 – 1960"},
		{"1950/1960", "1950 – 1960"},
		{"1958-04-06/1958-04-12", "6. – 12. Apr. 1958"},
		{"1958-04-01/1958-04-30", "Apr. 1958"},
		{"1958-04-01/1958-06-30", "Apr. 1958 – Juni 1958"},
		{"1958-04-06/1958-05-12", "6. Apr. 1958 – 12. Mai 1958"},
		{"1958-04-18 00:00:00", "18. Apr. 1958"},
		{"", ""},
		{"o.D.", "o.D."},
	}
	for _, c := range cases {
		if got := FormatDisplay(c.in); got != c.want {
			t.Errorf("FormatDisplay(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
