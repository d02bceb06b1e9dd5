package bot

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContactRelay forwards a free-text message from a searcher to the
// submitter of a report. Attribution is the sender's display name only —
// nothing beyond what the platform already exposes — and the message text
// is never persisted.
type ContactRelay struct {
	transport Transport
	log       *logrus.Entry
}

func NewContactRelay(transport Transport) *ContactRelay {
	return &ContactRelay{
		transport: transport,
		log:       logrus.WithField("prefix", "contact"),
	}
}

// Forward makes a single delivery attempt; the caller reports failure back
// to the sender.
func (c *ContactRelay) Forward(from User, toID int64, reportID, text string) error {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.Username
	}

	body := fmt.Sprintf("Message regarding your report %s:\n\n%s\n\nFrom: %s", reportID, text, name)
	if err := c.transport.Send(toID, body, nil); err != nil {
		c.log.WithError(err).Warnf("forwarding message about report %s failed", reportID)
		return err
	}
	return nil
}
