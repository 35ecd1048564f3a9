// Package models defines the core data structures for civicbot.
//
// It includes the session record persisted per phone number, the dialogue
// state machine vocabulary, and the envelope types shared across modules.
package models

import (
	"errors"
	"time"
)

// Language identifies one of the supported reply languages.
type Language string

const (
	// LanguageUnset indicates the user has not selected a language yet.
	LanguageUnset Language = ""
	// LanguageEnglish selects English replies.
	LanguageEnglish Language = "english"
	// LanguageMarathi selects Marathi replies.
	LanguageMarathi Language = "marathi"
	// LanguageHindi selects Hindi replies.
	LanguageHindi Language = "hindi"
)

// IsValidLanguage checks if the given language is a selectable language.
func IsValidLanguage(l Language) bool {
	switch l {
	case LanguageEnglish, LanguageMarathi, LanguageHindi:
		return true
	default:
		return false
	}
}

// DialogueState identifies where a user is in the menu conversation.
type DialogueState string

const (
	// StateInitial is the implicit state of a user with no session record.
	StateInitial DialogueState = "initial"
	// StateLanguageSelection means the language prompt has been sent.
	StateLanguageSelection DialogueState = "language_selection"
	// StateMenuShown means the main menu has been sent.
	StateMenuShown DialogueState = "menu_shown"
	// StateDisasterSubmenu means the disaster sub-menu has been sent.
	StateDisasterSubmenu DialogueState = "disaster_submenu"
	// StateFreeText means the user chose the free-text escape option.
	StateFreeText DialogueState = "free_text_mode"
)

// Category is the symbolic tag a menu option dispatches on.
type Category string

const (
	CategoryWater            Category = "water"
	CategoryPropertyTax      Category = "property_tax"
	CategoryBirthCertificate Category = "birth_certificate"
	CategoryDeathCertificate Category = "death_certificate"
	CategoryTradeLicense     Category = "trade_license"
	CategoryComplaints       Category = "complaints"
	CategoryDisaster         Category = "disaster"
	CategoryContact          Category = "contact"
	CategoryFreeText         Category = "free_text"
)

// Turn roles stored in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// MaxHistoryTurns bounds the persisted conversation history per session.
const MaxHistoryTurns = 20

// SessionTTL is the sliding expiry applied on every session write.
const SessionTTL = time.Hour

// Turn is a single entry in the conversation history.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the composite per-phone-number record persisted by the store.
//
// History, language, dialogue state and service context share one record and
// one TTL, refreshed atomically on every write. The observed per-field keys
// with independent expiries allowed a history to outlive its state field; a
// single record cannot partially expire.
type Session struct {
	Phone          string        `json:"phone"`
	Language       Language      `json:"language,omitempty"`
	State          DialogueState `json:"state"`
	ServiceContext string        `json:"service_context,omitempty"` // last selected category, telemetry only
	History        []Turn        `json:"history,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewSession returns a fresh session for the given phone number.
func NewSession(phone string) *Session {
	now := time.Now()
	return &Session{
		Phone:     phone,
		State:     StateInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendTurn adds a turn to the history, trimming to MaxHistoryTurns.
func (s *Session) AppendTurn(role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content, Timestamp: time.Now()})
	if len(s.History) > MaxHistoryTurns {
		s.History = s.History[len(s.History)-MaxHistoryTurns:]
	}
}

// Response represents an incoming message from a citizen on any channel.
type Response struct {
	From        string `json:"from"`
	Body        string `json:"body"`
	ProfileName string `json:"profile_name,omitempty"`
	Time        int64  `json:"time"`
}

// Error variables for better error handling and testability
var (
	ErrEmptyRecipient = errors.New("recipient cannot be empty")
	ErrMissingSender  = errors.New("webhook payload missing sender")
	ErrMissingBody    = errors.New("webhook payload missing message body")
)

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
