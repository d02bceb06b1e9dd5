package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mm-relief/lostfound-bot/consts"
	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
	"github.com/mm-relief/lostfound-bot/utils"
)

// handleLocationSelect stores the chosen region and moves to the optional
// exact-location step.
func (e *Engine) handleLocationSelect(sess *session, st stateLocationSelect, msg Message) state {
	region, ok := consts.RegionByName(msg.Text)
	if !ok {
		e.reply(sess.chatID, msgInvalidSelection, nil, locationKeyboard())
		return st
	}

	d := draft{
		flow:         st.flow,
		location:     region.Name,
		locationCode: region.Code,
	}
	e.reply(sess.chatID, msgExactLocation, nil, Keyboard{{optSkip}})
	return stateExactLocation{draft: d}
}

// handleExactLocation resolves one of three inputs: a shared pin, manually
// typed "lat,lon", or a skip. Malformed coordinates are silently treated as
// not provided; the flow never blocks here.
func (e *Engine) handleExactLocation(sess *session, st stateExactLocation, msg Message) state {
	d := st.draft

	switch {
	case msg.Location != nil:
		d.exactCoordinates = fmt.Sprintf("%.5f,%.5f", msg.Location.Latitude, msg.Location.Longitude)
	case isSkip(msg.Text):
		d.exactCoordinates = notProvided
	default:
		d.exactCoordinates = parseCoordinates(msg.Text)
	}

	return e.enterDetailCollection(sess, d)
}

// enterDetailCollection branches into the guided chain or the legacy
// free-form block, depending on the report type.
func (e *Engine) enterDetailCollection(sess *session, d draft) state {
	fields := d.flow.fields()
	if len(fields) == 0 {
		e.reply(sess.chatID, d.flow.instructions(), nil, Keyboard{})
		return stateFreeform{draft: d}
	}

	e.reply(sess.chatID, fields[0].prompt, nil, Keyboard{})
	return stateFieldCollect{draft: d, idx: 0}
}

// handleFreeform validates the single details block of the legacy path.
func (e *Engine) handleFreeform(sess *session, st stateFreeform, msg Message) state {
	if !e.validator.AcceptDetails(msg.Text) {
		e.reply(sess.chatID, msgDetailsRejected, nil, nil)
		return st
	}

	d := st.draft
	d.details = strings.TrimSpace(msg.Text)
	e.reply(sess.chatID, msgChooseUrgency, nil, urgencyKeyboard())
	return stateUrgencySelect{draft: d}
}

// handleFieldCollect advances the guided chain one field at a time,
// re-prompting in place on unusable answers.
func (e *Engine) handleFieldCollect(sess *session, st stateFieldCollect, msg Message) state {
	d := st.draft
	fields := d.flow.fields()
	f := fields[st.idx]

	answer := strings.TrimSpace(msg.Text)
	if f.optional && isSkip(answer) {
		answer = ""
	} else if !e.validator.AcceptFieldAnswer(answer) {
		e.reply(sess.chatID, msgFieldRejected, map[string]interface{}{
			"Prompt": e.copy.T(f.prompt, nil),
		}, nil)
		return st
	}

	d.answers = append(d.answers, answer)

	if st.idx+1 < len(fields) {
		e.reply(sess.chatID, fields[st.idx+1].prompt, nil, nil)
		return stateFieldCollect{draft: d, idx: st.idx + 1}
	}

	// Chain complete: compile once, then ask for urgency.
	d.details = CompileDetails(d.flow.reportType(), d.answers)
	e.reply(sess.chatID, msgChooseUrgency, nil, urgencyKeyboard())
	return stateUrgencySelect{draft: d}
}

// handleUrgencySelect is menu-constrained: anything but a known tier
// re-displays the menu with an error prefix.
func (e *Engine) handleUrgencySelect(sess *session, st stateUrgencySelect, msg Message) state {
	u, ok := parseUrgencyLabel(msg.Text)
	if !ok {
		e.reply(sess.chatID, msgUrgencyInvalid, nil, urgencyKeyboard())
		return st
	}

	d := st.draft
	d.urgency = u
	e.reply(sess.chatID, msgPhotoPrompt, nil, Keyboard{{optSkipPhoto}})
	return statePhoto{draft: d}
}

// handlePhoto accepts a photo or a skip; everything else re-prompts.
func (e *Engine) handlePhoto(sess *session, st statePhoto, msg Message) state {
	d := st.draft

	switch {
	case msg.PhotoFileID != "":
		d.photoID = msg.PhotoFileID
		e.reply(sess.chatID, msgPhotoReceived, nil, Keyboard{})
	case isSkip(msg.Text):
		// proceed without a photo
	default:
		e.reply(sess.chatID, msgPhotoAgain, nil, Keyboard{{optSkipPhoto}})
		return st
	}

	return e.finalize(sess, d)
}

// finalize persists, publishes and resets. The save goes through the façade
// so a primary-store outage is invisible here; publication is best effort
// and can never fail the submission.
func (e *Engine) finalize(sess *session, d draft) state {
	report := &schema.Report{
		ReportID:         utils.GenerateReportID(d.locationCode),
		ReportType:       d.flow.reportType(),
		Details:          d.details,
		Urgency:          schema.ClassifyUrgency(d.urgency, d.details),
		PhotoID:          d.photoID,
		Location:         d.location,
		ExactCoordinates: d.exactCoordinates,
		UserID:           sess.user.ID,
		Username:         sess.user.Username,
		FirstName:        sess.user.FirstName,
		LastName:         sess.user.LastName,
		Status:           schema.DefaultStatus(d.flow.reportType()),
		CreatedAt:        time.Now(),
	}

	e.attachPhoto(report)

	saved, err := e.store.SaveReport(report)
	if err == store.ErrDuplicateReportID {
		// Collision is a nuisance, not a failure: one regenerate is enough
		// at 8 hex chars of entropy.
		report.ReportID = utils.GenerateReportID(d.locationCode)
		saved, err = e.store.SaveReport(report)
	}
	if err != nil {
		e.log.WithError(err).Error("saving report failed")
		e.reply(sess.chatID, msgApology, nil, e.mainMenuKeyboard())
		return stateIdle{}
	}

	e.publisher.Publish(saved)

	e.reply(sess.chatID, msgConfirmation, map[string]interface{}{
		"ReportID": saved.ReportID,
	}, nil)
	return e.backToMenu(sess)
}

// attachPhoto mirrors the platform photo into object storage. Any failure
// degrades to referencing the photo by its platform file handle only.
func (e *Engine) attachPhoto(report *schema.Report) {
	if report.PhotoID == "" || e.photos == nil {
		return
	}

	data, err := e.transport.DownloadFile(report.PhotoID)
	if err != nil {
		e.log.WithError(err).Warnf("downloading photo for report %s failed", report.ReportID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, path, err := e.photos.Upload(ctx, report.ReportID+".jpg", data)
	if err != nil {
		e.log.WithError(err).Warnf("uploading photo for report %s failed", report.ReportID)
		return
	}
	report.PhotoURL = url
	report.PhotoPath = path
}

// parseCoordinates validates manually typed "lat,lon". Malformed input maps
// to the explicit placeholder instead of an error.
func parseCoordinates(text string) string {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) != 2 {
		return notProvided
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return notProvided
	}
	return fmt.Sprintf("%.5f,%.5f", lat, lon)
}

// parseUrgencyLabel tolerates the glyph prefix the keyboard buttons carry.
func parseUrgencyLabel(text string) (schema.Urgency, bool) {
	trimmed := strings.TrimSpace(text)
	for _, u := range schema.AllUrgencies {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, u.Glyph()))
	}
	return schema.ParseUrgency(trimmed)
}
