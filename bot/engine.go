package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/mm-relief/lostfound-bot/consts"
	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
)

// Menu options outside the report types.
const (
	optSearchByID    = "Search Reports by ID"
	optSearchMissing = "Search for Missing Person"
	optContactByID   = "Contact Report Submitter"
	optContactSearch = "Find & Contact Reporter"
	optUpdateStatus  = "Update Report Status"
	optSkip          = "Skip"
	optSkipPhoto     = "Skip Photo"
)

// PhotoStore uploads photo bytes to durable object storage and returns a
// public URL plus the storage path. Implementations live in external/.
type PhotoStore interface {
	Upload(ctx context.Context, name string, data []byte) (url string, path string, err error)
}

// VolunteerTeam is one entry of the configured volunteer roster.
type VolunteerTeam struct {
	Name  string `mapstructure:"name"`
	Phone string `mapstructure:"phone"`
	Info  string `mapstructure:"info"`
}

// Config carries the engine's wiring that comes from configuration.
type Config struct {
	// Channel is the public broadcast destination for finalized reports.
	Channel string
	// Volunteers backs the /volunteer command.
	Volunteers []VolunteerTeam
}

// Engine is the conversation state machine. One instance serves all chats;
// per-chat state lives in the session registry.
type Engine struct {
	transport Transport
	store     store.LostFoundCore
	photos    PhotoStore
	publisher *Publisher
	relay     *ContactRelay

	sessions   *sessionStore
	validator  *Validator
	copy       *Copy
	volunteers []VolunteerTeam

	log *logrus.Entry
}

// NewEngine wires the engine. photos may be nil, in which case reports keep
// only the platform file handle for their photo.
func NewEngine(transport Transport, core store.LostFoundCore, photos PhotoStore, cfg Config) *Engine {
	return &Engine{
		transport:  transport,
		store:      core,
		photos:     photos,
		publisher:  NewPublisher(transport, cfg.Channel),
		relay:      NewContactRelay(transport),
		sessions:   newSessionStore(),
		validator:  NewValidator(),
		copy:       NewCopy(),
		volunteers: cfg.Volunteers,
		log:        logrus.WithField("prefix", "engine"),
	}
}

// HandleUpdate processes one inbound chat event. A panicking state handler
// is caught here: the session is reset to the menu so no chat can get stuck
// in a state it cannot leave.
func (e *Engine) HandleUpdate(msg Message) {
	sess := e.sessions.get(msg.ChatID, msg.From)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("state handler panic: %v", r)
			e.log.WithFields(logrus.Fields{
				"chat_id": msg.ChatID,
				"state":   fmt.Sprintf("%T", sess.st),
			}).WithError(err).Error("recovered from state handler")
			sentry.CaptureException(err)

			sess.reset()
			e.reply(sess.chatID, msgApology, nil, e.mainMenuKeyboard())
		}
	}()

	if msg.Command != "" {
		e.handleCommand(sess, msg)
		return
	}

	sess.st = e.dispatch(sess, msg)
}

func (e *Engine) handleCommand(sess *session, msg Message) {
	switch strings.ToLower(msg.Command) {
	case "start":
		sess.reset()
		e.reply(sess.chatID, msgWelcome, nil, e.mainMenuKeyboard())
	case "cancel":
		// Valid from every state; scratch data goes, the sticky
		// in-conversation marker stays.
		sess.reset()
		e.reply(sess.chatID, msgCancelled, nil, e.mainMenuKeyboard())
	case "help":
		e.reply(sess.chatID, msgHelp, nil, nil)
	case "menu":
		e.reply(sess.chatID, msgMenuCommands, nil, nil)
	case "getid":
		e.reply(sess.chatID, msgGetID, map[string]interface{}{
			"ID":       sess.user.ID,
			"Name":     strings.TrimSpace(sess.user.FirstName + " " + sess.user.LastName),
			"Username": sess.user.Username,
		}, nil)
	case "volunteer":
		e.sendVolunteerRoster(sess.chatID)
	default:
		e.reply(sess.chatID, msgUnknownCommand, nil, nil)
	}
}

func (e *Engine) dispatch(sess *session, msg Message) state {
	switch st := sess.st.(type) {
	case stateIdle:
		return e.handleMenu(sess, msg)
	case stateLocationSelect:
		return e.handleLocationSelect(sess, st, msg)
	case stateExactLocation:
		return e.handleExactLocation(sess, st, msg)
	case stateFreeform:
		return e.handleFreeform(sess, st, msg)
	case stateFieldCollect:
		return e.handleFieldCollect(sess, st, msg)
	case stateUrgencySelect:
		return e.handleUrgencySelect(sess, st, msg)
	case statePhoto:
		return e.handlePhoto(sess, st, msg)
	case stateSearchByID:
		return e.handleSearchByID(sess, msg)
	case stateSearchMissing:
		return e.handleSearchMissing(sess, msg)
	case stateContactByID:
		return e.handleContactByID(sess, msg)
	case stateContactSearch:
		return e.handleContactSearch(sess, msg)
	case statePickResult:
		return e.handlePickResult(sess, st, msg)
	case stateCompose:
		return e.handleCompose(sess, st, msg)
	case stateStatusByID:
		return e.handleStatusByID(sess, msg)
	case stateChooseStatus:
		return e.handleChooseStatus(sess, st, msg)
	default:
		return stateIdle{}
	}
}

// handleMenu processes a main-menu selection. Idle is the only state where
// bare media is possible, so the nudge lives here.
func (e *Engine) handleMenu(sess *session, msg Message) state {
	if msg.PhotoFileID != "" && msg.Text == "" {
		e.reply(sess.chatID, msgMediaOutsideFlow, nil, nil)
		return stateIdle{}
	}

	choice := strings.TrimSpace(msg.Text)

	if t, ok := schema.ParseReportType(choice); ok {
		sess.inConversation = true
		e.reply(sess.chatID, msgChooseLocation, nil, locationKeyboard())
		return stateLocationSelect{flow: flowFor(t)}
	}

	switch {
	case strings.EqualFold(choice, optSearchByID):
		sess.inConversation = true
		e.reply(sess.chatID, msgSearchPromptID, nil, Keyboard{})
		return stateSearchByID{}
	case strings.EqualFold(choice, optSearchMissing):
		sess.inConversation = true
		e.reply(sess.chatID, msgSearchMissingPrompt, nil, Keyboard{})
		return stateSearchMissing{}
	case strings.EqualFold(choice, optContactByID):
		sess.inConversation = true
		e.reply(sess.chatID, msgContactPromptID, nil, Keyboard{})
		return stateContactByID{}
	case strings.EqualFold(choice, optContactSearch):
		sess.inConversation = true
		e.reply(sess.chatID, msgContactSearchPrompt, nil, Keyboard{})
		return stateContactSearch{}
	case strings.EqualFold(choice, optUpdateStatus):
		sess.inConversation = true
		e.reply(sess.chatID, msgStatusPromptID, nil, Keyboard{})
		return stateStatusByID{}
	}

	// Someone who has never started a flow is likely just typing at the bot
	// for the first time; give them the full welcome instead of an error.
	if !sess.inConversation {
		e.reply(sess.chatID, msgWelcome, nil, e.mainMenuKeyboard())
		return stateIdle{}
	}

	e.reply(sess.chatID, msgInvalidSelection, nil, e.mainMenuKeyboard())
	return stateIdle{}
}

// backToMenu ends a flow: scratch state is dropped and the menu keyboard is
// re-displayed so Idle's accepting set is live again.
func (e *Engine) backToMenu(sess *session) state {
	e.reply(sess.chatID, msgMenuAgain, nil, e.mainMenuKeyboard())
	return stateIdle{}
}

func (e *Engine) sendVolunteerRoster(chatID int64) {
	lines := []string{e.copy.T(msgVolunteerHeader, nil)}
	for _, team := range e.volunteers {
		lines = append(lines, fmt.Sprintf("• %s\n  Phone: %s\n  Info: %s", team.Name, team.Phone, team.Info))
	}
	e.send(chatID, strings.Join(lines, "\n"), nil)
}

// reply localizes and sends one message.
func (e *Engine) reply(chatID int64, msg *i18n.Message, data map[string]interface{}, kb Keyboard) {
	e.send(chatID, e.copy.T(msg, data), kb)
}

func (e *Engine) send(chatID int64, text string, kb Keyboard) {
	if err := e.transport.Send(chatID, text, kb); err != nil {
		e.log.WithField("chat_id", chatID).WithError(err).Error("sending reply failed")
	}
}

func (e *Engine) mainMenuKeyboard() Keyboard {
	return Keyboard{
		{string(schema.ReportTypeMissingPerson), string(schema.ReportTypeFoundPerson)},
		{string(schema.ReportTypeRescueRequest), string(schema.ReportTypeOfferHelp)},
		{string(schema.ReportTypeLostItem), string(schema.ReportTypeFoundItem)},
		{optSearchByID, optSearchMissing},
		{optContactByID, optContactSearch},
		{optUpdateStatus},
	}
}

func locationKeyboard() Keyboard {
	kb := Keyboard{}
	row := []string{}
	for _, r := range consts.Regions {
		row = append(row, r.Name)
		if len(row) == 2 {
			kb = append(kb, row)
			row = []string{}
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	return kb
}

func urgencyKeyboard() Keyboard {
	kb := Keyboard{}
	for _, u := range schema.AllUrgencies {
		kb = append(kb, []string{u.Glyph() + " " + string(u)})
	}
	return kb
}

func statusKeyboard() Keyboard {
	kb := Keyboard{}
	for _, s := range schema.AllStatuses {
		kb = append(kb, []string{string(s)})
	}
	return kb
}

// isSkip recognizes the skip signal in both supported languages, typed or
// pressed.
func isSkip(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == strings.ToLower(optSkip) ||
		t == strings.ToLower(optSkipPhoto) ||
		t == "ကျော်မည်"
}
