package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonCustomIDRoundTrip(t *testing.T) {
	action, recordID, ok := parseButtonID(approveCustomID("6f1c2f9a"))
	require.True(t, ok)
	assert.Equal(t, actionApprove, action)
	assert.Equal(t, "6f1c2f9a", recordID)

	action, recordID, ok = parseButtonID(editCustomID("temp-abc"))
	require.True(t, ok)
	assert.Equal(t, actionEdit, action)
	assert.Equal(t, "temp-abc", recordID)
}

func TestParseButtonIDRejectsForeignIDs(t *testing.T) {
	for _, id := range []string{"", "qa", "vote:pass:123", "qa:approve:a:b"} {
		_, _, ok := parseButtonID(id)
		assert.False(t, ok, "customID %q should not parse", id)
	}
}

func TestEditModalCustomIDRoundTrip(t *testing.T) {
	recordID, channelID, messageID, ok := parseEditModalID(editModalCustomID("R1", "C1", "T1"))
	require.True(t, ok)
	assert.Equal(t, "R1", recordID)
	assert.Equal(t, "C1", channelID)
	assert.Equal(t, "T1", messageID)
}

func TestParseEditModalIDRejectsForeignIDs(t *testing.T) {
	for _, id := range []string{"", "qa:approve:R1", "qa_edit:R1:C1", "other:R1:C1:T1"} {
		_, _, _, ok := parseEditModalID(id)
		assert.False(t, ok, "customID %q should not parse", id)
	}
}
