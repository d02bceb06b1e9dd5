package bot

import (
	"github.com/mm-relief/lostfound-bot/schema"
)

// Session state is a sum type: one variant per conversation state, each
// carrying exactly the fields that are valid there. The engine drives the
// machine by type-switching on the current variant, so a handler can never
// read a field that hasn't been collected yet.
type state interface {
	isState()
}

// stateIdle accepts main-menu selections.
type stateIdle struct{}

// stateLocationSelect waits for a region pick for a new report.
type stateLocationSelect struct {
	flow flow
}

// stateExactLocation waits for a pin, typed coordinates, or a skip.
type stateExactLocation struct {
	draft draft
}

// stateFreeform waits for the legacy single-block details message.
type stateFreeform struct {
	draft draft
}

// stateFieldCollect waits for the answer to field idx of the guided chain.
type stateFieldCollect struct {
	draft draft
	idx   int
}

// stateUrgencySelect waits for a tier pick from the fixed menu.
type stateUrgencySelect struct {
	draft draft
}

// statePhoto waits for a photo or an explicit skip.
type statePhoto struct {
	draft draft
}

// stateSearchByID waits for a report id to look up.
type stateSearchByID struct{}

// stateSearchMissing waits for a free-text missing-person query.
type stateSearchMissing struct{}

// stateContactByID waits for the report id whose submitter to contact.
type stateContactByID struct{}

// stateContactSearch waits for a free-text query to find a reporter.
type stateContactSearch struct{}

// statePickResult waits for a 1-based index into the last result list.
type statePickResult struct {
	results []schema.Report
}

// stateCompose waits for the message text to forward to a report owner.
type stateCompose struct {
	reportID string
	ownerID  int64
}

// stateStatusByID waits for the id of the report whose status to change.
type stateStatusByID struct{}

// stateChooseStatus waits for a status pick for an ownership-checked report.
type stateChooseStatus struct {
	reportID string
}

func (stateIdle) isState()           {}
func (stateLocationSelect) isState() {}
func (stateExactLocation) isState()  {}
func (stateFreeform) isState()       {}
func (stateFieldCollect) isState()   {}
func (stateUrgencySelect) isState()  {}
func (statePhoto) isState()          {}
func (stateSearchByID) isState()     {}
func (stateSearchMissing) isState()  {}
func (stateContactByID) isState()    {}
func (stateContactSearch) isState()  {}
func (statePickResult) isState()     {}
func (stateCompose) isState()        {}
func (stateStatusByID) isState()     {}
func (stateChooseStatus) isState()   {}

// draft is the partially-collected report threaded through the intake chain.
// It only ever lives inside state variants and is dropped wholesale on
// cancel.
type draft struct {
	flow             flow
	location         string
	locationCode     string
	exactCoordinates string
	answers          []string
	details          string
	urgency          schema.Urgency
	photoID          string
}
