package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm-relief/lostfound-bot/schema"
)

func sampleReport() *schema.Report {
	return &schema.Report{
		ReportID:         "YGN-3F2A1B7C",
		ReportType:       schema.ReportTypeMissingPerson,
		Details:          "1. Name: Ma Thida\n2. Age: 32",
		Urgency:          schema.UrgencyCritical,
		Location:         "Yangon",
		ExactCoordinates: "16.84000,96.17000",
		FirstName:        "Aung",
		LastName:         "Kyaw",
		CreatedAt:        time.Date(2026, 3, 28, 14, 30, 0, 0, time.UTC),
	}
}

func TestFormatBroadcast(t *testing.T) {
	text := FormatBroadcast(sampleReport())

	assert.Contains(t, text, "🔴 Missing Person 🔴")
	assert.Contains(t, text, "Report ID / အစီရင်ခံအမှတ်: YGN-3F2A1B7C")
	assert.Contains(t, text, "Location / တည်နေရာ: Yangon (16.84000,96.17000)")
	assert.Contains(t, text, "Full Details / အပြည့်အစုံ:\n1. Name: Ma Thida")
	assert.Contains(t, text, "Urgency / အရေးပေါ်အဆင့်: 🔴 Critical (Medical Emergency)")
	assert.Contains(t, text, "Reported by / တင်သွင်းသူ: Aung Kyaw")
}

func TestFormatBroadcastOmitsMissingCoordinates(t *testing.T) {
	r := sampleReport()
	r.ExactCoordinates = notProvided

	text := FormatBroadcast(r)
	assert.Contains(t, text, "Location / တည်နေရာ: Yangon\n")
	assert.NotContains(t, text, "(Not provided)")
}

func TestPublishSendsPhotoWhenPresent(t *testing.T) {
	tr := newFakeTransport()
	p := NewPublisher(tr, "@lost_and_found_news")

	r := sampleReport()
	r.PhotoID = "file-abc"
	p.Publish(r)

	require.Len(t, tr.broadcasts, 1)
	assert.Equal(t, "@lost_and_found_news", tr.broadcasts[0].destination)
	assert.Equal(t, "file-abc", tr.broadcasts[0].fileID)
	assert.Contains(t, tr.broadcasts[0].text, "YGN-3F2A1B7C")
}

func TestPublishWithoutDestinationIsNoop(t *testing.T) {
	tr := newFakeTransport()
	p := NewPublisher(tr, "")

	p.Publish(sampleReport())
	assert.Empty(t, tr.broadcasts)
}
