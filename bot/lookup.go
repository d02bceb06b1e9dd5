package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
	"github.com/mm-relief/lostfound-bot/utils"
)

const previewLength = 100

// handleSearchByID resolves a report id and shows the record, photo
// included. Terminal either way.
func (e *Engine) handleSearchByID(sess *session, msg Message) state {
	reportID := strings.ToUpper(strings.TrimSpace(msg.Text))

	report, err := e.store.GetReport(reportID)
	if err != nil {
		e.reply(sess.chatID, msgReportNotFound, map[string]interface{}{"ReportID": reportID}, nil)
		return e.backToMenu(sess)
	}

	e.send(sess.chatID, formatReportReply(report), nil)
	if report.PhotoID != "" {
		if err := e.transport.SendPhoto(sess.chatID, report.PhotoID, report.ReportID); err != nil {
			e.log.WithError(err).Warnf("re-sending photo of report %s failed", report.ReportID)
		}
	}
	return e.backToMenu(sess)
}

// handleSearchMissing runs a free-text search over missing-person reports
// and shows previews. Terminal.
func (e *Engine) handleSearchMissing(sess *session, msg Message) state {
	results := e.searchMissing(sess, msg.Text)
	if results == nil {
		return e.backToMenu(sess)
	}

	e.send(sess.chatID, formatResultList(results), nil)
	return e.backToMenu(sess)
}

// handleContactByID resolves the report whose submitter to contact, then
// asks for the message text.
func (e *Engine) handleContactByID(sess *session, msg Message) state {
	reportID := strings.ToUpper(strings.TrimSpace(msg.Text))

	report, err := e.store.GetReport(reportID)
	if err != nil {
		e.reply(sess.chatID, msgReportNotFound, map[string]interface{}{"ReportID": reportID}, nil)
		return e.backToMenu(sess)
	}

	e.reply(sess.chatID, msgComposePrompt, map[string]interface{}{"ReportID": report.ReportID}, nil)
	return stateCompose{reportID: report.ReportID, ownerID: report.UserID}
}

// handleContactSearch searches like handleSearchMissing but keeps the
// result list in the session so the user can pick whom to contact.
func (e *Engine) handleContactSearch(sess *session, msg Message) state {
	results := e.searchMissing(sess, msg.Text)
	if results == nil {
		return e.backToMenu(sess)
	}

	e.send(sess.chatID, formatResultList(results)+"\n\n"+e.copy.T(msgPickPrompt, nil), nil)
	return statePickResult{results: results}
}

// handlePickResult expects a 1-based index into the held result list.
// Non-numeric or out-of-range input re-prompts; a missing list means the
// session scratch was lost and the flow terminates.
func (e *Engine) handlePickResult(sess *session, st statePickResult, msg Message) state {
	if len(st.results) == 0 {
		e.reply(sess.chatID, msgSessionExpired, nil, nil)
		return e.backToMenu(sess)
	}

	index, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || index < 1 || index > len(st.results) {
		e.reply(sess.chatID, msgPickInvalid, nil, nil)
		return st
	}

	chosen := st.results[index-1]
	e.reply(sess.chatID, msgComposePrompt, map[string]interface{}{"ReportID": chosen.ReportID}, nil)
	return stateCompose{reportID: chosen.ReportID, ownerID: chosen.UserID}
}

// handleCompose forwards the typed message to the report owner. Delivery
// failure is a soft warning to the sender, nothing is retried or persisted.
func (e *Engine) handleCompose(sess *session, st stateCompose, msg Message) state {
	if err := e.relay.Forward(sess.user, st.ownerID, st.reportID, msg.Text); err != nil {
		e.reply(sess.chatID, msgMessageFailed, nil, nil)
	} else {
		e.reply(sess.chatID, msgMessageSent, map[string]interface{}{"ReportID": st.reportID}, nil)
	}
	return e.backToMenu(sess)
}

// handleStatusByID resolves the report and enforces the ownership gate
// before offering the status menu. A non-owner is turned away immediately
// with no retry loop.
func (e *Engine) handleStatusByID(sess *session, msg Message) state {
	reportID := strings.ToUpper(strings.TrimSpace(msg.Text))

	report, err := e.store.GetReport(reportID)
	if err != nil {
		e.reply(sess.chatID, msgReportNotFound, map[string]interface{}{"ReportID": reportID}, nil)
		return e.backToMenu(sess)
	}
	if report.UserID != sess.user.ID {
		e.reply(sess.chatID, msgNotOwner, nil, nil)
		return e.backToMenu(sess)
	}

	e.reply(sess.chatID, msgChooseStatus, map[string]interface{}{"ReportID": report.ReportID}, statusKeyboard())
	return stateChooseStatus{reportID: report.ReportID}
}

// handleChooseStatus is menu-constrained like urgency selection.
func (e *Engine) handleChooseStatus(sess *session, st stateChooseStatus, msg Message) state {
	status, ok := schema.ParseStatus(msg.Text)
	if !ok {
		e.reply(sess.chatID, msgStatusInvalid, nil, statusKeyboard())
		return st
	}

	err := e.store.UpdateReportStatus(st.reportID, status, sess.user.ID)
	switch err {
	case nil:
		e.reply(sess.chatID, msgStatusUpdated, map[string]interface{}{
			"ReportID": st.reportID,
			"Status":   string(status),
		}, Keyboard{})
	case store.ErrNotOwner:
		e.reply(sess.chatID, msgNotOwner, nil, Keyboard{})
	case store.ErrReportNotFound:
		e.reply(sess.chatID, msgReportNotFound, map[string]interface{}{"ReportID": st.reportID}, Keyboard{})
	default:
		e.log.WithError(err).Errorf("status update failed for %s", st.reportID)
		e.reply(sess.chatID, msgApology, nil, Keyboard{})
	}
	return e.backToMenu(sess)
}

// searchMissing runs the shared query path of the two search flows and
// reports the no-match case itself; a nil return means "nothing to show".
func (e *Engine) searchMissing(sess *session, query string) []schema.Report {
	query = strings.TrimSpace(query)

	results, err := e.store.SearchReports(query, schema.ReportTypeMissingPerson)
	if err != nil {
		e.log.WithError(err).Error("report search failed")
	}
	if len(results) == 0 {
		e.reply(sess.chatID, msgNoMatches, nil, nil)
		return nil
	}
	return results
}

func formatReportReply(r *schema.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 Report Found\n\n")
	fmt.Fprintf(&b, "Report ID: %s\n", r.ReportID)
	fmt.Fprintf(&b, "Type: %s\n", r.ReportType)
	fmt.Fprintf(&b, "Location: %s\n", r.Location)
	fmt.Fprintf(&b, "Urgency: %s %s\n", r.Urgency.Glyph(), r.Urgency)
	if r.ReportType.IsPersonReport() {
		fmt.Fprintf(&b, "Status: %s\n", r.Status)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", utils.FormatReportTime(r.CreatedAt))
	fmt.Fprintf(&b, "Details:\n%s", r.Details)
	return b.String()
}

func formatResultList(results []schema.Report) string {
	lines := []string{"Found the following matching reports:\n"}
	for i, r := range results {
		// Truncate on rune boundaries; Burmese details are multibyte and a
		// split codepoint makes the platform reject the whole message.
		preview := r.Details
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%d. Report ID: %s\n   %s", i+1, r.ReportID, strings.ReplaceAll(preview, "\n", " / ")))
	}
	return strings.Join(lines, "\n")
}
