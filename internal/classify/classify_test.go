package classify

import (
	"testing"

	"github.com/kolhapurmc/civicbot/internal/menu"
	"github.com/kolhapurmc/civicbot/internal/models"
)

func TestLanguageChoice(t *testing.T) {
	cases := []struct {
		input string
		want  models.Language
	}{
		{"1", models.LanguageEnglish},
		{"2", models.LanguageMarathi},
		{"3", models.LanguageHindi},
		{" 1 ", models.LanguageEnglish},
		{"English please", models.LanguageEnglish},
		{"ENGLISH", models.LanguageEnglish},
		{"marathi", models.LanguageMarathi},
		{"मराठी", models.LanguageMarathi},
		{"hindi me bolo", models.LanguageHindi},
		{"हिंदी", models.LanguageHindi},
		{"4", models.LanguageUnset},
		{"bonjour", models.LanguageUnset},
		{"", models.LanguageUnset},
	}
	for _, c := range cases {
		if got := LanguageChoice(c.input); got != c.want {
			t.Errorf("LanguageChoice(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestMenuSelectionNumericTakesPriority(t *testing.T) {
	opt, ok := MenuSelection("2", menu.Main())
	if !ok {
		t.Fatal("expected a match for digit 2")
	}
	if opt.Category != models.CategoryPropertyTax {
		t.Errorf("digit 2 resolved to %q, want property_tax", opt.Category)
	}
}

func TestMenuSelectionLabelSubstring(t *testing.T) {
	cases := []struct {
		input string
		want  models.Category
	}{
		{"I want to pay my Property Tax", models.CategoryPropertyTax},
		{"property tax", models.CategoryPropertyTax},
		{"birth certificate please", models.CategoryBirthCertificate},
		{"मालमत्ता कर", models.CategoryPropertyTax},
		{"disaster management", models.CategoryDisaster},
	}
	for _, c := range cases {
		opt, ok := MenuSelection(c.input, menu.Main())
		if !ok {
			t.Errorf("MenuSelection(%q) matched nothing, want %q", c.input, c.want)
			continue
		}
		if opt.Category != c.want {
			t.Errorf("MenuSelection(%q) = %q, want %q", c.input, opt.Category, c.want)
		}
	}
}

func TestMenuSelectionNoMatch(t *testing.T) {
	if _, ok := MenuSelection("what is the weather", menu.Main()); ok {
		t.Error("expected no match for unrelated text")
	}
}

func TestDisasterSubOption(t *testing.T) {
	opt, ok := DisasterSubOption("7")
	if !ok || opt.Category != menu.BackCategory {
		t.Errorf("digit 7 resolved to %v, want back option", opt.Category)
	}
	opt, ok = DisasterSubOption("flood safety")
	if !ok || opt.Category != models.Category(menu.SubFloodSafety) {
		t.Errorf("flood text resolved to %v, want flood_safety", opt.Category)
	}
	if _, ok := DisasterSubOption("xyzzy"); ok {
		t.Error("expected no match for gibberish")
	}
}

func TestIsMenuTrigger(t *testing.T) {
	positives := []string{"menu", "show me the MENU", "help", "what options do I have", "services", "मदत", "सेवाएं"}
	for _, in := range positives {
		if !IsMenuTrigger(in) {
			t.Errorf("IsMenuTrigger(%q) = false, want true", in)
		}
	}
	negatives := []string{"hello", "property tax", ""}
	for _, in := range negatives {
		if IsMenuTrigger(in) {
			t.Errorf("IsMenuTrigger(%q) = true, want false", in)
		}
	}
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		input string
		want  Command
		ok    bool
	}{
		{"/help", CommandHelp, true},
		{"/MENU", CommandMenu, true},
		{" /clear ", CommandClear, true},
		{"/clear everything", "", false},
		{"clear", "", false},
	}
	for _, c := range cases {
		got, ok := ParseCommand(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseCommand(%q) = (%q, %v), want (%q, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}
