package bot

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/mm-relief/lostfound-bot/schema"
)

// flow is the per-report-type behaviour of the intake chain: the ordered
// fields of the guided path, or the instruction block of the legacy
// free-form path. One implementation exists per report type; it is chosen
// once at flow entry and threaded through the chain inside the draft.
type flow interface {
	reportType() schema.ReportType
	// fields returns the guided chain, or nil for free-form-only types.
	fields() []field
	// instructions is the free-form prompt, only used when fields is nil.
	instructions() *i18n.Message
}

// field is one step of the guided chain.
type field struct {
	label    string // label rendered into the compiled details block
	prompt   *i18n.Message
	optional bool // optional fields accept "skip"
}

func flowFor(t schema.ReportType) flow {
	switch t {
	case schema.ReportTypeMissingPerson:
		return missingPersonFlow{}
	case schema.ReportTypeFoundPerson:
		return foundPersonFlow{}
	case schema.ReportTypeRescueRequest:
		return rescueFlow{}
	case schema.ReportTypeOfferHelp:
		return offerHelpFlow{}
	case schema.ReportTypeLostItem:
		return lostItemFlow{}
	default:
		return foundItemFlow{}
	}
}

type missingPersonFlow struct{}

func (missingPersonFlow) reportType() schema.ReportType { return schema.ReportTypeMissingPerson }
func (missingPersonFlow) instructions() *i18n.Message   { return nil }
func (missingPersonFlow) fields() []field {
	return []field{
		{label: "Name", prompt: &i18n.Message{ID: "mp_name", Other: "1/8 — What is the missing person's name?"}},
		{label: "Age", prompt: &i18n.Message{ID: "mp_age", Other: "2/8 — How old are they (approximately)?"}},
		{label: "Gender", prompt: &i18n.Message{ID: "mp_gender", Other: "3/8 — What is their gender?"}},
		{label: "Physical description", prompt: &i18n.Message{ID: "mp_description", Other: "4/8 — Describe them: height, build, clothing, distinguishing features."}},
		{label: "Last seen location", prompt: &i18n.Message{ID: "mp_last_seen", Other: "5/8 — Where were they last seen? Be as specific as possible."}},
		{label: "Last seen time", prompt: &i18n.Message{ID: "mp_time", Other: "6/8 — When were they last seen (date and time)?"}},
		{label: "Medical conditions", prompt: &i18n.Message{ID: "mp_medical", Other: "7/8 — Any medical conditions or special needs? Send 'skip' if none."}, optional: true},
		{label: "Contact information", prompt: &i18n.Message{ID: "mp_contact", Other: "8/8 — Your contact information (phone number preferred):"}},
	}
}

type foundPersonFlow struct{}

func (foundPersonFlow) reportType() schema.ReportType { return schema.ReportTypeFoundPerson }
func (foundPersonFlow) instructions() *i18n.Message   { return nil }
func (foundPersonFlow) fields() []field {
	return []field{
		{label: "Name", prompt: &i18n.Message{ID: "fp_name", Other: "1/8 — The person's name, if known. Send 'skip' if unknown."}, optional: true},
		{label: "Approximate age", prompt: &i18n.Message{ID: "fp_age", Other: "2/8 — Their approximate age?"}},
		{label: "Gender", prompt: &i18n.Message{ID: "fp_gender", Other: "3/8 — Their gender?"}},
		{label: "Physical description", prompt: &i18n.Message{ID: "fp_description", Other: "4/8 — Describe them: height, build, clothing, distinguishing features."}},
		{label: "Found location", prompt: &i18n.Message{ID: "fp_found_at", Other: "5/8 — Where were they found?"}},
		{label: "Current location/status", prompt: &i18n.Message{ID: "fp_current", Other: "6/8 — Where are they now, and in what condition?"}},
		{label: "Injuries or medical needs", prompt: &i18n.Message{ID: "fp_medical", Other: "7/8 — Any injuries or medical needs? Send 'skip' if none."}, optional: true},
		{label: "Contact information", prompt: &i18n.Message{ID: "fp_contact", Other: "8/8 — Your contact information (phone number preferred):"}},
	}
}

type rescueFlow struct{}

func (rescueFlow) reportType() schema.ReportType { return schema.ReportTypeRescueRequest }
func (rescueFlow) instructions() *i18n.Message   { return nil }
func (rescueFlow) fields() []field {
	return []field{
		{label: "Number of people", prompt: &i18n.Message{ID: "rr_count", Other: "1/6 — How many people need rescue?"}},
		{label: "Exact location", prompt: &i18n.Message{ID: "rr_location", Other: "2/6 — Exact location of the people needing rescue. Be as specific as possible."}},
		{label: "Injuries", prompt: &i18n.Message{ID: "rr_injuries", Other: "3/6 — Any injuries or medical needs? Send 'skip' if none."}, optional: true},
		{label: "Building condition", prompt: &i18n.Message{ID: "rr_building", Other: "4/6 — Current situation: trapped, unsafe building, collapsed structure?"}},
		{label: "Relationship", prompt: &i18n.Message{ID: "rr_relationship", Other: "5/6 — Your relationship to the people needing rescue?"}},
		{label: "Contact information", prompt: &i18n.Message{ID: "rr_contact", Other: "6/6 — Your contact information (phone number preferred):"}},
	}
}

type offerHelpFlow struct{}

func (offerHelpFlow) reportType() schema.ReportType { return schema.ReportTypeOfferHelp }
func (offerHelpFlow) instructions() *i18n.Message   { return nil }
func (offerHelpFlow) fields() []field {
	return []field{
		{label: "Name", prompt: &i18n.Message{ID: "oh_name", Other: "1/5 — Your name or your team's name?"}},
		{label: "Type of help", prompt: &i18n.Message{ID: "oh_type", Other: "2/5 — What kind of help can you provide (rescue, medical, supplies, ...)?"}},
		{label: "Resources available", prompt: &i18n.Message{ID: "oh_resources", Other: "3/5 — Resources available: vehicles, equipment, medical supplies?"}},
		{label: "Availability", prompt: &i18n.Message{ID: "oh_availability", Other: "4/5 — When and for how long are you available?"}},
		{label: "Contact information", prompt: &i18n.Message{ID: "oh_contact", Other: "5/5 — Your contact information (phone number preferred):"}},
	}
}

// The item types predate the guided chain and only get the free-form path.

type lostItemFlow struct{}

func (lostItemFlow) reportType() schema.ReportType { return schema.ReportTypeLostItem }
func (lostItemFlow) fields() []field               { return nil }
func (lostItemFlow) instructions() *i18n.Message {
	return &i18n.Message{
		ID: "li_instructions",
		Other: "Lost Item Report\n\n" +
			"Please provide the following information in a single message:\n\n" +
			"1. Item description\n" +
			"2. Where and when it was lost\n" +
			"3. Any identifying features\n" +
			"4. Your contact information\n\n" +
			"Note: You can add a photo in a later step.",
	}
}

type foundItemFlow struct{}

func (foundItemFlow) reportType() schema.ReportType { return schema.ReportTypeFoundItem }
func (foundItemFlow) fields() []field               { return nil }
func (foundItemFlow) instructions() *i18n.Message {
	return &i18n.Message{
		ID: "fi_instructions",
		Other: "Found Item Report\n\n" +
			"Please provide the following information in a single message:\n\n" +
			"1. Item description\n" +
			"2. Where and when it was found\n" +
			"3. Where the item is now\n" +
			"4. Your contact information\n\n" +
			"Note: You can add a photo in a later step.",
	}
}
