// Package dialog implements the per-user dialogue state machine and the
// free-text fallback bridge. The controller owns every state transition:
// it loads the session, classifies the inbound text against the current
// state, renders the reply and persists the updated session.
package dialog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kolhapurmc/civicbot/internal/classify"
	"github.com/kolhapurmc/civicbot/internal/content"
	"github.com/kolhapurmc/civicbot/internal/menu"
	"github.com/kolhapurmc/civicbot/internal/models"
	"github.com/kolhapurmc/civicbot/internal/store"
)

// Controller drives the conversation for every phone number. It is
// stateless between calls; all session state lives in the store, so
// concurrent requests for different numbers are fully independent.
type Controller struct {
	store    store.Store
	fallback FallbackGenerator
}

// NewController creates a dialogue controller over the given session store
// and free-text generator.
func NewController(st store.Store, fallback FallbackGenerator) *Controller {
	return &Controller{store: st, fallback: fallback}
}

// HandleMessage processes one inbound message and returns the reply text.
// It never returns an error: any unexpected failure is converted to the
// fixed apology so the user always gets an in-band answer.
func (c *Controller) HandleMessage(ctx context.Context, phone, text string) (reply string) {
	lang := models.LanguageUnset
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Controller.HandleMessage: panic recovered", "phone", phone, "panic", r)
			reply = content.Apology(lang)
		}
	}()

	session, err := c.store.GetSession(phone)
	if err != nil {
		slog.Error("Controller.HandleMessage: session load failed", "error", err, "phone", phone)
		return content.Apology(lang)
	}
	if session == nil {
		session = models.NewSession(phone)
	}
	lang = session.Language
	trimmed := strings.TrimSpace(text)

	// Commands bypass the state machine entirely.
	if cmd, ok := classify.ParseCommand(trimmed); ok {
		return c.handleCommand(cmd, session)
	}

	reply = c.advance(ctx, session, trimmed)

	// The reply is already computed; persistence failures are logged and
	// swallowed so the user still gets the answer.
	session.AppendTurn(models.RoleUser, text)
	session.AppendTurn(models.RoleAssistant, reply)
	if err := c.store.SaveSession(session); err != nil {
		slog.Error("Controller.HandleMessage: session save failed", "error", err, "phone", phone)
	}
	return reply
}

func (c *Controller) handleCommand(cmd classify.Command, session *models.Session) string {
	switch cmd {
	case classify.CommandClear:
		if err := c.store.DeleteSession(session.Phone); err != nil {
			slog.Error("Controller.handleCommand: clear failed", "error", err, "phone", session.Phone)
			return content.Apology(session.Language)
		}
		slog.Info("Controller.handleCommand: session cleared", "phone", session.Phone)
		return content.ClearConfirmation(session.Language)
	default:
		// /help and /menu re-render the menu without mutating state.
		return content.MainMenu(session.Language)
	}
}

// advance applies one state machine step and mutates the session in place.
func (c *Controller) advance(ctx context.Context, session *models.Session, text string) string {
	switch session.State {
	case models.StateInitial:
		// The first message always gets the language prompt, regardless
		// of content.
		session.State = models.StateLanguageSelection
		return content.LanguagePrompt()

	case models.StateLanguageSelection:
		if lang := classify.LanguageChoice(text); lang != models.LanguageUnset {
			session.Language = lang
			session.State = models.StateMenuShown
			slog.Info("Controller.advance: language selected", "phone", session.Phone, "language", lang)
			return content.MainMenu(lang)
		}
		return content.LanguagePrompt()

	case models.StateDisasterSubmenu:
		return c.advanceDisaster(session, text)

	default: // StateMenuShown, StateFreeText
		return c.advanceMain(ctx, session, text)
	}
}

func (c *Controller) advanceMain(ctx context.Context, session *models.Session, text string) string {
	if session.State == models.StateMenuShown {
		if opt, ok := classify.MenuSelection(text, menu.Main()); ok {
			return c.selectService(session, opt)
		}
	}
	if classify.IsMenuTrigger(text) {
		return content.MainMenu(session.Language)
	}
	return c.freeTextReply(ctx, session, text)
}

func (c *Controller) selectService(session *models.Session, opt menu.Option) string {
	session.ServiceContext = string(opt.Category)
	switch opt.Category {
	case models.CategoryDisaster:
		session.State = models.StateDisasterSubmenu
		return content.DisasterMenu(session.Language)
	case models.CategoryFreeText:
		session.State = models.StateFreeText
		return content.FreeTextPrompt(session.Language)
	default:
		body, ok := content.ServiceInfo(opt.Category, session.Language)
		if !ok {
			// Catalog and canned bodies are maintained together; a gap
			// here falls back to the menu rather than a blank reply.
			slog.Warn("Controller.selectService: no canned body", "category", opt.Category)
			return content.MainMenu(session.Language)
		}
		slog.Info("Controller.selectService: service selected", "phone", session.Phone, "category", opt.Category)
		return content.WithMainReminder(body, session.Language)
	}
}

func (c *Controller) advanceDisaster(session *models.Session, text string) string {
	opt, ok := classify.DisasterSubOption(text)
	if !ok {
		// Unmatched input re-renders the sub-menu; there is no free-text
		// fallback from here.
		return content.DisasterMenu(session.Language)
	}
	if opt.Category == menu.BackCategory {
		session.State = models.StateMenuShown
		return content.MainMenu(session.Language)
	}
	session.ServiceContext = string(opt.Category)
	body, ok := content.DisasterInfo(opt.Category, session.Language)
	if !ok {
		slog.Warn("Controller.advanceDisaster: no canned body", "category", opt.Category)
		return content.DisasterMenu(session.Language)
	}
	return content.WithDisasterReminder(body, session.Language)
}

func (c *Controller) freeTextReply(ctx context.Context, session *models.Session, text string) string {
	answer, err := c.fallback.Generate(ctx, text, session.History, session.Language)
	if err != nil {
		// The apology carries its own recovery guidance; no reminder
		// footer is appended on this path.
		slog.Error("Controller.freeTextReply: fallback failed", "error", err, "phone", session.Phone)
		return content.FallbackApology(session.Language)
	}
	return content.WithMainReminder(answer, session.Language)
}
