package normalize

import "testing"

func TestPerson_VariantsCollapse(t *testing.T) {
	variants := []string{"Dermotas, Anton", "Dermota, Anton", "DERMOTA, ANTON"}
	for _, v := range variants {
		if got := Person(v); got != "Dermota, Anton" {
			t.Errorf("Person(%q) = %q, want %q", v, got, "Dermota, Anton")
		}
	}
	if got := Person("Dermota"); got != "Dermota, Anton" {
		t.Errorf("Person(Dermota) = %q", got)
	}
}

func TestPerson_UnknownPassesThrough(t *testing.T) {
	if got := Person("Niemand, Kein"); got != "Niemand, Kein" {
		t.Errorf("Person = %q, want input unchanged", got)
	}
}

func TestPerson_Idempotent(t *testing.T) {
	names := []string{"Dermota", "Krauß, Clemens", "Hartmann, Prof.", "Unbekannt, X", "Taubmann, Frau"}
	for _, n := range names {
		once := Person(n)
		if twice := Person(once); twice != once {
			t.Errorf("Person not idempotent for %q: %q → %q", n, once, twice)
		}
	}
}

func TestCategory_LongestKeywordWins(t *testing.T) {
	if got := Category("Wieland Wagner"); got != "Regisseur" {
		t.Errorf("Category(Wieland Wagner) = %q, want Regisseur", got)
	}
	if got := Category("Wagner, Richard"); got != "Komponist" {
		t.Errorf("Category(Wagner, Richard) = %q, want Komponist", got)
	}
}

func TestCategory_Default(t *testing.T) {
	if got := Category("Mustermann, Max"); got != DefaultCategory {
		t.Errorf("Category = %q, want %q", got, DefaultCategory)
	}
	if got := Category(""); got != DefaultCategory {
		t.Errorf("Category(empty) = %q, want %q", got, DefaultCategory)
	}
}

func TestIsJunkName(t *testing.T) {
	junk := []string{"Y.", "X", "", "[Organi]", "[?]"}
	for _, n := range junk {
		if !IsJunkName(n) {
			t.Errorf("IsJunkName(%q) = false, want true", n)
		}
	}
	if IsJunkName("Karajan, Herbert von") {
		t.Error("real name flagged as junk")
	}
}

func TestComposer(t *testing.T) {
	if got := Composer("wagner, richard"); got != "Wagner" {
		t.Errorf("Composer = %q, want Wagner", got)
	}
	if got := Composer("Verdi, Guiseppe"); got != "Verdi" {
		t.Errorf("Composer = %q, want Verdi", got)
	}
	if got := Composer(""); got != "" {
		t.Errorf("Composer(empty) = %q, want empty", got)
	}
}

func TestComposerForTitle(t *testing.T) {
	if c, ok := ComposerForTitle("Programmheft: Der Ring des Nibelungen"); !ok || c != "Wagner" {
		t.Errorf("ComposerForTitle = %q, %v", c, ok)
	}
	if _, ok := ComposerForTitle("Quittung Hotel Sacher"); ok {
		t.Error("unexpected composer match")
	}
}

func TestComposerForTitle_StableOnMixedPrograms(t *testing.T) {
	// A title naming works of two composers must resolve by rule order,
	// identically on every call.
	title := "Programm: Fidelio und Lohengrin"
	for i := 0; i < 20; i++ {
		c, ok := ComposerForTitle(title)
		if !ok || c != "Wagner" {
			t.Fatalf("call %d: ComposerForTitle = %q, %v, want Wagner", i, c, ok)
		}
	}
}

func TestIsComposerName(t *testing.T) {
	if !IsComposerName("Wagner, Richard") {
		t.Error("Wagner should be a composer name")
	}
	if IsComposerName("Karajan, Herbert von") {
		t.Error("Karajan is not a composer name")
	}
}

func TestRules_Ranked(t *testing.T) {
	rules := Rules()
	for i := 1; i < len(rules); i++ {
		if len(rules[i-1].Keyword) < len(rules[i].Keyword) {
			t.Fatalf("rules not ranked by length at %d: %q before %q",
				i, rules[i-1].Keyword, rules[i].Keyword)
		}
	}
}
