package models

import (
	"testing"
	"time"
)

func TestIsValidLanguage(t *testing.T) {
	cases := []struct {
		lang  Language
		valid bool
	}{
		{LanguageEnglish, true},
		{LanguageMarathi, true},
		{LanguageHindi, true},
		{LanguageUnset, false},
		{Language("german"), false},
	}
	for _, c := range cases {
		if got := IsValidLanguage(c.lang); got != c.valid {
			t.Errorf("IsValidLanguage(%q) = %v, want %v", c.lang, got, c.valid)
		}
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("919876543210")
	if s.State != StateInitial {
		t.Errorf("expected initial state, got %q", s.State)
	}
	if s.Language != LanguageUnset {
		t.Errorf("expected unset language, got %q", s.Language)
	}
	if len(s.History) != 0 {
		t.Errorf("expected empty history, got %d turns", len(s.History))
	}
}

func TestAppendTurnCapsHistory(t *testing.T) {
	s := NewSession("919876543210")
	for i := 0; i < 25; i++ {
		s.AppendTurn(RoleUser, "message")
	}
	if len(s.History) != MaxHistoryTurns {
		t.Fatalf("expected history capped at %d, got %d", MaxHistoryTurns, len(s.History))
	}
}

func TestAppendTurnOrder(t *testing.T) {
	s := NewSession("919876543210")
	s.AppendTurn(RoleUser, "hello")
	s.AppendTurn(RoleAssistant, "hi there")
	if s.History[0].Role != RoleUser || s.History[1].Role != RoleAssistant {
		t.Errorf("expected user then assistant, got %q then %q", s.History[0].Role, s.History[1].Role)
	}
	if s.History[0].Timestamp.After(time.Now()) {
		t.Error("turn timestamp in the future")
	}
}
