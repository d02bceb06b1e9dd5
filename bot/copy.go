package bot

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/mm-relief/lostfound-bot/utils"
)

// Copy renders user-facing text. Every message carries an English default;
// when a Burmese translation exists in the bundle, both languages go out in
// one message, English first, the way the original channel posts read.
type Copy struct {
	en *i18n.Localizer
	my *i18n.Localizer
}

func NewCopy() *Copy {
	return &Copy{
		en: utils.NewLocalizer("en"),
		my: utils.NewLocalizer("my"),
	}
}

// T localizes a message bilingually.
func (c *Copy) T(msg *i18n.Message, data map[string]interface{}) string {
	enText := c.en.MustLocalize(&i18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
	myText, err := c.my.Localize(&i18n.LocalizeConfig{
		MessageID:    msg.ID,
		TemplateData: data,
	})
	if err != nil || myText == "" || myText == enText {
		return enText
	}
	return enText + "\n\n" + myText
}

var (
	msgWelcome = &i18n.Message{
		ID: "welcome",
		Other: "🚨 EMERGENCY RESPONSE 🚨\n\n" +
			"Welcome to the Emergency Lost and Found Bot. " +
			"I'll help you broadcast critical information during this disaster.\n\n" +
			"Please select an option below:",
	}
	msgMenuAgain = &i18n.Message{
		ID:    "menu_again",
		Other: "What would you like to do next?",
	}
	msgCancelled = &i18n.Message{
		ID:    "cancelled",
		Other: "Operation cancelled. Pick an option below to start again.",
	}
	msgInvalidSelection = &i18n.Message{
		ID:    "invalid_selection",
		Other: "❌ Invalid selection. Please pick one of the menu options.",
	}
	msgChooseLocation = &i18n.Message{
		ID:    "choose_location",
		Other: "📍 Which region does this report concern?",
	}
	msgExactLocation = &i18n.Message{
		ID: "exact_location",
		Other: "If you can, share a location pin, or type coordinates as \"lat,lon\" " +
			"(for example 16.84,96.17). Otherwise press Skip.",
	}
	msgDetailsRejected = &i18n.Message{
		ID: "details_rejected",
		Other: "That message is too short to act on. Please describe the situation in a few " +
			"sentences — include names, places and contact information where you can.",
	}
	msgFieldRejected = &i18n.Message{
		ID:    "field_rejected",
		Other: "Sorry, I didn't catch that. {{.Prompt}}",
	}
	msgChooseUrgency = &i18n.Message{
		ID:    "choose_urgency",
		Other: "⚠️ How urgent is this report? Pick one of the levels below.",
	}
	msgUrgencyInvalid = &i18n.Message{
		ID:    "urgency_invalid",
		Other: "❌ Please pick one of the urgency levels on the keyboard.",
	}
	msgPhotoPrompt = &i18n.Message{
		ID: "photo_prompt",
		Other: "📸 If you have a photo, please send it now. " +
			"Or press 'Skip Photo' to continue without one.",
	}
	msgPhotoAgain = &i18n.Message{
		ID:    "photo_again",
		Other: "Please either send a photo or press 'Skip Photo'.",
	}
	msgPhotoReceived = &i18n.Message{
		ID:    "photo_received",
		Other: "✅ Photo received! Processing your report...",
	}
	msgConfirmation = &i18n.Message{
		ID: "confirmation",
		Other: "✅ Your report has been submitted successfully!\n\n" +
			"📝 Report ID: {{.ReportID}}\n\n" +
			"Please save this ID for future reference. You can use it to check for " +
			"updates or change the report status later.",
	}
	msgSearchPromptID = &i18n.Message{
		ID:    "search_prompt_id",
		Other: "Please enter the Report ID you want to search for:",
	}
	msgReportNotFound = &i18n.Message{
		ID:    "report_not_found",
		Other: "❌ No report found with ID: {{.ReportID}}",
	}
	msgSearchMissingPrompt = &i18n.Message{
		ID:    "search_missing_prompt",
		Other: "Please enter the name or any details (like location, appearance) of the missing person:",
	}
	msgNoMatches = &i18n.Message{
		ID:    "no_matches",
		Other: "No matching reports found. Try a different search term.",
	}
	msgContactPromptID = &i18n.Message{
		ID:    "contact_prompt_id",
		Other: "Please enter the Report ID of the post whose submitter you want to contact:",
	}
	msgContactSearchPrompt = &i18n.Message{
		ID:    "contact_search_prompt",
		Other: "Type the name or details of the person whose reporter you want to reach:",
	}
	msgComposePrompt = &i18n.Message{
		ID: "compose_prompt",
		Other: "✅ Report {{.ReportID}} found. Please type your message for its submitter. " +
			"Include your own contact information if you want a direct response:",
	}
	msgPickPrompt = &i18n.Message{
		ID:    "pick_prompt",
		Other: "To contact someone about a specific report, reply with its number (e.g. 1).",
	}
	msgPickInvalid = &i18n.Message{
		ID:    "pick_invalid",
		Other: "Please reply with a number from the list above.",
	}
	msgSessionExpired = &i18n.Message{
		ID:    "session_expired",
		Other: "That search has expired. Please start again from the menu.",
	}
	msgMessageSent = &i18n.Message{
		ID:    "message_sent",
		Other: "✅ Your message has been sent to the submitter of report {{.ReportID}}.",
	}
	msgMessageFailed = &i18n.Message{
		ID:    "message_failed",
		Other: "❌ Your message could not be delivered. The submitter may have blocked the bot.",
	}
	msgStatusPromptID = &i18n.Message{
		ID:    "status_prompt_id",
		Other: "Please enter the Report ID of your report whose status you want to update:",
	}
	msgNotOwner = &i18n.Message{
		ID:    "not_owner",
		Other: "🚫 Only the person who submitted this report can change its status.",
	}
	msgChooseStatus = &i18n.Message{
		ID:    "choose_status",
		Other: "What is the current status of report {{.ReportID}}?",
	}
	msgStatusInvalid = &i18n.Message{
		ID:    "status_invalid",
		Other: "❌ Please pick one of the statuses on the keyboard.",
	}
	msgStatusUpdated = &i18n.Message{
		ID:    "status_updated",
		Other: "✅ Report {{.ReportID}} is now marked as: {{.Status}}",
	}
	msgApology = &i18n.Message{
		ID:    "apology",
		Other: "Sorry, something went wrong. Please try again from the menu.",
	}
	msgMediaOutsideFlow = &i18n.Message{
		ID:    "media_outside_flow",
		Other: "Please use /start to submit a structured emergency report.",
	}
	msgHelp = &i18n.Message{
		ID: "help",
		Other: "🆘 EMERGENCY HELP 🆘\n\n" +
			"• Use /start to report missing or found people\n" +
			"• Be precise with location details\n" +
			"• Include contact information\n" +
			"• Each report gets a unique ID - save it!\n" +
			"• Use 'Search Reports by ID' to find specific reports\n" +
			"• Use 'Contact Report Submitter' to message the person who posted\n" +
			"• For volunteer contacts, type /volunteer\n\n" +
			"Stay safe and avoid damaged structures!",
	}
	msgMenuCommands = &i18n.Message{
		ID: "menu_commands",
		Other: "Main Menu\n\n" +
			"/start - Begin a new report or search\n" +
			"/volunteer - View volunteer contact information\n" +
			"/help - General help\n" +
			"/cancel - Cancel current operation\n" +
			"/getid - Get your User ID and username",
	}
	msgGetID = &i18n.Message{
		ID:    "get_id",
		Other: "Your User ID: {{.ID}}\nYour Name: {{.Name}}\nYour Username: @{{.Username}}",
	}
	msgVolunteerHeader = &i18n.Message{
		ID:    "volunteer_header",
		Other: "Available Volunteer Teams:",
	}
	msgUnknownCommand = &i18n.Message{
		ID:    "unknown_command",
		Other: "Unknown command. Use /start to begin or /help for assistance.",
	}
)
