package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm-relief/lostfound-bot/schema"
)

func TestFormatResultListTruncatesOnRuneBoundary(t *testing.T) {
	// Burmese details are multibyte throughout; the preview cut must never
	// leave a split codepoint behind.
	details := "1. Name: မသီတာ\n2. Last seen location: " +
		strings.Repeat("လှည်းတန်းဈေးအနီးတွင် နောက်ဆုံးတွေ့ရှိခဲ့သည် ", 5)
	require.Greater(t, len([]rune(details)), previewLength)

	out := formatResultList([]schema.Report{{
		ReportID: "YGN-3F2A1B7C",
		Details:  details,
	}})

	assert.True(t, utf8.ValidString(out), "result list carries a split codepoint: %q", out)
	assert.Contains(t, out, "1. Report ID: YGN-3F2A1B7C")
	assert.Contains(t, out, "...")
}

func TestFormatResultListShortDetailsUntouched(t *testing.T) {
	out := formatResultList([]schema.Report{{
		ReportID: "YGN-AAAA0001",
		Details:  "1. Name: Ma Thida",
	}})

	assert.Contains(t, out, "1. Name: Ma Thida")
	assert.NotContains(t, out, "...")
}

func TestFormatReportReplyPersonStatus(t *testing.T) {
	r := &schema.Report{
		ReportID:   "YGN-AAAA0002",
		ReportType: schema.ReportTypeMissingPerson,
		Urgency:    schema.UrgencyHigh,
		Location:   "Yangon",
		Status:     schema.StatusStillMissing,
		Details:    "1. Name: Ma Thida",
	}
	assert.Contains(t, formatReportReply(r), "Status: Still Missing")

	r.ReportType = schema.ReportTypeLostItem
	assert.NotContains(t, formatReportReply(r), "Status:")
}
