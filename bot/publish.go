package bot

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/utils"
)

// Publisher republishes finalized reports to the public broadcast channel.
// It is strictly best effort: every error is logged and swallowed so a
// broadcast failure can never roll back or delay the submission the user
// already had confirmed. At-most-once, no retry.
type Publisher struct {
	transport   Transport
	destination string
	log         *logrus.Entry
}

func NewPublisher(transport Transport, destination string) *Publisher {
	return &Publisher{
		transport:   transport,
		destination: destination,
		log:         logrus.WithField("prefix", "publish"),
	}
}

func (p *Publisher) Publish(r *schema.Report) {
	if p.destination == "" {
		return
	}

	text := FormatBroadcast(r)

	var err error
	if r.PhotoID != "" {
		err = p.transport.Broadcast(p.destination, r.PhotoID, text)
	} else {
		err = p.transport.Broadcast(p.destination, "", text)
	}
	if err != nil {
		p.log.WithError(err).Errorf("broadcasting report %s failed", r.ReportID)
	}
}

// FormatBroadcast renders the fixed channel template.
func FormatBroadcast(r *schema.Report) string {
	glyph := r.Urgency.Glyph()
	location := r.Location
	if r.ExactCoordinates != "" && r.ExactCoordinates != notProvided {
		location = fmt.Sprintf("%s (%s)", location, r.ExactCoordinates)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", glyph, r.ReportType, glyph)
	fmt.Fprintf(&b, "Report ID / အစီရင်ခံအမှတ်: %s\n", r.ReportID)
	fmt.Fprintf(&b, "Location / တည်နေရာ: %s\n\n", location)
	fmt.Fprintf(&b, "Full Details / အပြည့်အစုံ:\n%s\n\n", r.Details)
	fmt.Fprintf(&b, "Urgency / အရေးပေါ်အဆင့်: %s %s\n", glyph, r.Urgency)
	fmt.Fprintf(&b, "Reported / အချိန်: %s\n", utils.FormatReportTime(r.CreatedAt))
	fmt.Fprintf(&b, "Reported by / တင်သွင်းသူ: %s", r.SubmitterName())
	return b.String()
}
