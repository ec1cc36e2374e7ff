package discord

import "strings"

// Action payloads ride in Discord component CustomIDs. The record id is
// the opaque value on the buttons; the edit modal additionally carries
// the channel and message of the review card so a submission can find
// its way back without any server-side session state.
const (
	actionApprove = "approve"
	actionEdit    = "edit"

	buttonPrefix = "qa"
	modalPrefix  = "qa_edit"

	answerInputID = "edited_answer"
)

func approveCustomID(recordID string) string {
	return strings.Join([]string{buttonPrefix, actionApprove, recordID}, ":")
}

func editCustomID(recordID string) string {
	return strings.Join([]string{buttonPrefix, actionEdit, recordID}, ":")
}

// parseButtonID returns the action and record id from a button CustomID.
func parseButtonID(customID string) (action, recordID string, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != buttonPrefix {
		return "", "", false
	}
	return parts[1], parts[2], true
}

func editModalCustomID(recordID, channelID, messageID string) string {
	return strings.Join([]string{modalPrefix, recordID, channelID, messageID}, ":")
}

// parseEditModalID decodes the metadata embedded in an edit modal
// CustomID. Record, channel and message ids contain no ':' so the
// encoding round-trips losslessly.
func parseEditModalID(customID string) (recordID, channelID, messageID string, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != modalPrefix {
		return "", "", "", false
	}
	return parts[1], parts[2], parts[3], true
}
