package bot

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
)

// fakeTransport records everything the engine sends. failSendTo simulates a
// recipient that blocked the bot.
type fakeTransport struct {
	mu         sync.Mutex
	sent       []sentMessage
	broadcasts []sentMessage
	files      map[string][]byte
	failSendTo int64
}

type sentMessage struct {
	chatID      int64
	destination string
	text        string
	fileID      string
	keyboard    Keyboard
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{files: map[string][]byte{}}
}

func (f *fakeTransport) Send(chatID int64, text string, keyboard Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSendTo != 0 && chatID == f.failSendTo {
		return fmt.Errorf("forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, keyboard: keyboard})
	return nil
}

func (f *fakeTransport) SendPhoto(chatID int64, fileID string, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: caption, fileID: fileID})
	return nil
}

func (f *fakeTransport) Broadcast(destination string, fileID string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, sentMessage{destination: destination, text: text, fileID: fileID})
	return nil
}

func (f *fakeTransport) DownloadFile(fileID string) ([]byte, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("unknown file %s", fileID)
	}
	return data, nil
}

// received reports whether any message to chatID contained substr. Most
// flows speak twice on exit (the outcome, then the menu again), so terminal
// replies are checked with this rather than lastTo.
func (f *fakeTransport) received(chatID int64, substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if m.chatID == chatID && strings.Contains(m.text, substr) {
			return true
		}
	}
	return false
}

func (f *fakeTransport) lastTo(chatID int64) sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].chatID == chatID {
			return f.sent[i]
		}
	}
	return sentMessage{}
}

var testUser = User{ID: 42, FirstName: "Kyaw", LastName: "Zin", Username: "kyawzin"}

const testChat = int64(42)

func newTestEngine(t *testing.T) (*Engine, *fakeTransport, store.LostFoundCore) {
	t.Helper()

	tr := newFakeTransport()
	// A nil orm handle keeps every write on the fallback tier, the exact
	// shape of running through a database outage.
	core := store.NewLostFoundStore(nil, store.NewFallbackStore())
	engine := NewEngine(tr, core, nil, Config{Channel: "@lost_and_found_news"})
	return engine, tr, core
}

func say(text string) Message {
	return Message{ChatID: testChat, From: testUser, Text: text}
}

func command(name string) Message {
	return Message{ChatID: testChat, From: testUser, Command: name}
}

var reportIDPattern = regexp.MustCompile(`YGN-[A-Z0-9]{6}[A-Z0-9]*`)

func TestGuidedIntakeHappyPath(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	assert.Contains(t, tr.lastTo(testChat).text, "EMERGENCY RESPONSE")

	engine.HandleUpdate(say("Missing Person"))
	assert.Contains(t, tr.lastTo(testChat).text, "region")

	engine.HandleUpdate(say("Yangon"))
	assert.Contains(t, tr.lastTo(testChat).text, "location pin")

	engine.HandleUpdate(say("Skip"))
	assert.Contains(t, tr.lastTo(testChat).text, "1/8")

	answers := []string{
		"Ma Thida", "32", "Female", "Short hair, red longyi",
		"Near Hledan market", "Yesterday evening", "skip", "09791112233",
	}
	for _, a := range answers {
		engine.HandleUpdate(say(a))
	}
	assert.Contains(t, tr.lastTo(testChat).text, "urgent")

	engine.HandleUpdate(say("🔴 Critical (Medical Emergency)"))
	assert.Contains(t, tr.lastTo(testChat).text, "photo")

	engine.HandleUpdate(say("Skip Photo"))

	// The confirmation carries a region-prefixed id.
	var confirmation string
	for _, m := range tr.sent {
		if m.chatID == testChat && strings.Contains(m.text, "submitted successfully") {
			confirmation = m.text
		}
	}
	require.NotEmpty(t, confirmation)
	reportID := reportIDPattern.FindString(confirmation)
	require.NotEmpty(t, reportID, "confirmation did not carry a report id: %s", confirmation)

	saved, err := core.GetReport(reportID)
	require.NoError(t, err)
	assert.Equal(t, schema.ReportTypeMissingPerson, saved.ReportType)
	assert.Equal(t, schema.UrgencyCritical, saved.Urgency)
	assert.Equal(t, schema.StatusStillMissing, saved.Status)
	assert.Equal(t, "Yangon", saved.Location)
	assert.Equal(t, int64(42), saved.UserID)
	assert.Contains(t, saved.Details, "1. Name: Ma Thida")
	assert.Contains(t, saved.Details, "7. Medical conditions: Not provided")

	// Finalizing also broadcast the report to the channel.
	require.Len(t, tr.broadcasts, 1)
	assert.Equal(t, "@lost_and_found_news", tr.broadcasts[0].destination)
	assert.Contains(t, tr.broadcasts[0].text, reportID)
	assert.Contains(t, tr.broadcasts[0].text, "Ma Thida")
	assert.Contains(t, tr.broadcasts[0].text, "Full Details")
}

func TestCancelMidFlowDiscardsDraft(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Missing Person"))
	engine.HandleUpdate(say("Yangon"))
	engine.HandleUpdate(say("Skip"))
	engine.HandleUpdate(say("Ma Thida"))

	engine.HandleUpdate(command("cancel"))
	assert.Contains(t, tr.lastTo(testChat).text, "cancelled")

	// Nothing was persisted and the next message lands on the menu again.
	results, err := core.SearchReports("thida", "")
	require.NoError(t, err)
	assert.Empty(t, results)

	engine.HandleUpdate(say("32"))
	assert.Contains(t, tr.lastTo(testChat).text, "Invalid selection")
}

func TestMalformedCoordinatesDegradeSilently(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Lost Item"))
	engine.HandleUpdate(say("Yangon"))

	// Garbage coordinates never block the flow.
	engine.HandleUpdate(say("not,coords"))
	assert.Contains(t, tr.lastTo(testChat).text, "Lost Item Report")

	engine.HandleUpdate(say("Black Honda wave 125, lost near Hledan junction yesterday, frame number ends 4471, call 09791112233"))
	engine.HandleUpdate(say("🟢 Low (Information Only)"))
	engine.HandleUpdate(say("Skip Photo"))

	results, err := core.SearchReports("honda", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Not provided", results[0].ExactCoordinates)
	assert.Equal(t, schema.StatusOther, results[0].Status)
}

func TestSharedPinBecomesCoordinates(t *testing.T) {
	engine, tr, _ := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Missing Person"))
	engine.HandleUpdate(say("Mandalay"))

	pin := Message{ChatID: testChat, From: testUser, Location: &Coordinates{Latitude: 21.9588, Longitude: 96.0891}}
	engine.HandleUpdate(pin)
	assert.Contains(t, tr.lastTo(testChat).text, "1/8")

	st, ok := engine.sessions.get(testChat, testUser).st.(stateFieldCollect)
	require.True(t, ok)
	assert.Equal(t, "21.95880,96.08910", st.draft.exactCoordinates)
}

func TestUrgencyMenuReprompts(t *testing.T) {
	engine, tr, _ := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Lost Item"))
	engine.HandleUpdate(say("Yangon"))
	engine.HandleUpdate(say("Skip"))
	engine.HandleUpdate(say("Black Honda wave 125, lost near Hledan junction yesterday, frame number ends 4471, call 09791112233"))

	engine.HandleUpdate(say("somewhat urgent I guess"))
	assert.Contains(t, tr.lastTo(testChat).text, "urgency levels")

	// The state held; a valid pick still works.
	engine.HandleUpdate(say("🟡 Medium (Safe but Separated)"))
	assert.Contains(t, tr.lastTo(testChat).text, "photo")
}

func TestDetailsValidatorReprompts(t *testing.T) {
	engine, tr, _ := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Found Item"))
	engine.HandleUpdate(say("Bago"))
	engine.HandleUpdate(say("Skip"))

	engine.HandleUpdate(say("hi"))
	assert.Contains(t, tr.lastTo(testChat).text, "too short")

	engine.HandleUpdate(say("Found a brown leather wallet with NRC card inside, near the Bago market east gate. Holding it at the tea shop, ask for Ko Myo 09420011223"))
	assert.Contains(t, tr.lastTo(testChat).text, "urgent")
}

func TestContactSubmitterByID(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	seeded, err := core.SaveReport(&schema.Report{
		ReportID:   "YGN-ABCD1234",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: U Ba Win",
		UserID:     999,
		Username:   "submitter",
	})
	require.NoError(t, err)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Contact Report Submitter"))
	engine.HandleUpdate(say("ygn-abcd1234"))
	assert.Contains(t, tr.lastTo(testChat).text, seeded.ReportID)

	engine.HandleUpdate(say("hello, I saw him near the national stadium this morning"))

	forwarded := tr.lastTo(999)
	assert.Contains(t, forwarded.text, "hello, I saw him")
	assert.Contains(t, forwarded.text, seeded.ReportID)
	assert.Contains(t, forwarded.text, "From: Kyaw Zin")

	assert.True(t, tr.received(testChat, "has been sent"))
}

func TestContactDeliveryFailureIsSoft(t *testing.T) {
	engine, tr, core := newTestEngine(t)
	tr.failSendTo = 999

	_, err := core.SaveReport(&schema.Report{
		ReportID:   "YGN-ABCD9999",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: U Ba Win",
		UserID:     999,
	})
	require.NoError(t, err)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Contact Report Submitter"))
	engine.HandleUpdate(say("YGN-ABCD9999"))
	engine.HandleUpdate(say("hello there, any news?"))

	assert.True(t, tr.received(testChat, "could not be delivered"))
}

func TestContactViaSearchPick(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	_, err := core.SaveReport(&schema.Report{
		ReportID:   "YGN-CAFE0001",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: Ma Thida\n2. Last seen location: Hledan market",
		UserID:     777,
	})
	require.NoError(t, err)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Find & Contact Reporter"))
	engine.HandleUpdate(say("thida"))
	assert.Contains(t, tr.lastTo(testChat).text, "reply with its number")

	engine.HandleUpdate(say("99"))
	assert.Contains(t, tr.lastTo(testChat).text, "number from the list")

	engine.HandleUpdate(say("1"))
	assert.Contains(t, tr.lastTo(testChat).text, "YGN-CAFE0001")

	engine.HandleUpdate(say("hello, is there any update on her?"))
	forwarded := tr.lastTo(777)
	assert.Contains(t, forwarded.text, "hello, is there any update")
	assert.Contains(t, forwarded.text, "YGN-CAFE0001")
}

func TestStatusUpdateOwnerOnly(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	_, err := core.SaveReport(&schema.Report{
		ReportID:   "YGN-FACE0001",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: Ma Thida",
		UserID:     999, // someone else's report
	})
	require.NoError(t, err)
	_, err = core.SaveReport(&schema.Report{
		ReportID:   "YGN-FACE0002",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: U Ba Win",
		UserID:     testUser.ID,
	})
	require.NoError(t, err)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Update Report Status"))
	engine.HandleUpdate(say("YGN-FACE0001"))
	assert.True(t, tr.received(testChat, "Only the person who submitted"))

	engine.HandleUpdate(say("Update Report Status"))
	engine.HandleUpdate(say("YGN-FACE0002"))
	assert.Contains(t, tr.lastTo(testChat).text, "current status")

	engine.HandleUpdate(say("Found"))
	assert.True(t, tr.received(testChat, "marked as: Found"))

	updated, err := core.GetReport("YGN-FACE0002")
	require.NoError(t, err)
	assert.Equal(t, schema.StatusFound, updated.Status)
}

func TestSearchMissingShowsPreviews(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	_, err := core.SaveReport(&schema.Report{
		ReportID:   "YGN-BEEF0001",
		ReportType: schema.ReportTypeMissingPerson,
		Details:    "1. Name: Ma Thida\n2. Last seen location: Hledan market",
		UserID:     999,
	})
	require.NoError(t, err)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Search for Missing Person"))
	engine.HandleUpdate(say("thida"))

	assert.True(t, tr.received(testChat, "1. Report ID: YGN-BEEF0001"))
}

func TestSearchMissingNoMatches(t *testing.T) {
	engine, tr, _ := newTestEngine(t)

	engine.HandleUpdate(command("start"))
	engine.HandleUpdate(say("Search for Missing Person"))
	engine.HandleUpdate(say("nobody by this name"))

	assert.True(t, tr.received(testChat, "No matching reports"))
}

func TestFirstContactTextGetsWelcome(t *testing.T) {
	engine, tr, _ := newTestEngine(t)

	// A first message that isn't a menu option reads like someone typing at
	// the bot cold; they get the welcome, not an error.
	engine.HandleUpdate(say("hello??"))
	assert.Contains(t, tr.lastTo(testChat).text, "EMERGENCY RESPONSE")

	// Once a flow has been started the short error applies.
	engine.HandleUpdate(say("Missing Person"))
	engine.HandleUpdate(command("cancel"))
	engine.HandleUpdate(say("garbage"))
	assert.Contains(t, tr.lastTo(testChat).text, "Invalid selection")
}

func TestBareMediaOutsideFlowIsNudged(t *testing.T) {
	engine, tr, core := newTestEngine(t)

	engine.HandleUpdate(Message{ChatID: testChat, From: testUser, PhotoFileID: "file-123"})
	assert.Contains(t, tr.lastTo(testChat).text, "/start")

	results, err := core.SearchReports("", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVolunteerCommand(t *testing.T) {
	tr := newFakeTransport()
	core := store.NewLostFoundStore(nil, store.NewFallbackStore())
	engine := NewEngine(tr, core, nil, Config{
		Volunteers: []VolunteerTeam{{Name: "Team A", Phone: "09111", Info: "Medical"}},
	})

	engine.HandleUpdate(command("volunteer"))
	reply := tr.lastTo(testChat)
	assert.Contains(t, reply.text, "Team A")
	assert.Contains(t, reply.text, "09111")
}
