package discord

import (
	"context"
	"fmt"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/review"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const (
	colorPending  = 0xFFFF00 // yellow
	colorApproved = 0x00FF00 // green
)

// ReviewChannel posts and updates review cards in a Discord channel.
// It implements review.Channel.
type ReviewChannel struct {
	session   *discordgo.Session
	channelID string
	log       *logrus.Logger
}

func NewReviewChannel(session *discordgo.Session, channelID string, log *logrus.Logger) *ReviewChannel {
	return &ReviewChannel{session: session, channelID: channelID, log: log}
}

// PostReviewCard renders the question/answer pair with approve and edit
// buttons. The record id rides in each button's CustomID.
func (rc *ReviewChannel) PostReviewCard(ctx context.Context, card review.Card) (review.MessageRef, error) {
	source := "text message"
	if card.FromImage {
		source = "photo (extracted text)"
	}

	embed := &discordgo.MessageEmbed{
		Title: "New answer awaiting review",
		Color: colorPending,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Student", Value: card.StudentName, Inline: true},
			{Name: "Source", Value: source, Inline: true},
			{Name: "Question", Value: card.Question},
			{Name: "Proposed answer", Value: card.Answer},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Record ID: %s", card.RecordID),
		},
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Approve",
					Style:    discordgo.SuccessButton,
					CustomID: approveCustomID(card.RecordID),
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Edit",
					Style:    discordgo.PrimaryButton,
					CustomID: editCustomID(card.RecordID),
					Emoji:    &discordgo.ComponentEmoji{Name: "✏️"},
				},
			},
		},
	}

	msg, err := rc.session.ChannelMessageSendComplex(rc.channelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	})
	if err != nil {
		return review.MessageRef{}, fmt.Errorf("error posting review card: %w", err)
	}

	return review.MessageRef{ChannelID: rc.channelID, MessageID: msg.ID}, nil
}

// UpdateReviewCard replaces the card with the final answer and removes
// the action buttons. Calling it again re-renders the same final state.
func (rc *ReviewChannel) UpdateReviewCard(ctx context.Context, ref review.MessageRef, finalAnswer string) error {
	embed := &discordgo.MessageEmbed{
		Title: "✅ Answer approved and sent to the student",
		Color: colorApproved,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Final answer", Value: finalAnswer},
		},
	}

	noComponents := []discordgo.MessageComponent{}
	_, err := rc.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.ChannelID,
		ID:         ref.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &noComponents,
	})
	if err != nil {
		return fmt.Errorf("error updating review card: %w", err)
	}
	return nil
}

// PostMessage posts a plain text message to the review channel.
func (rc *ReviewChannel) PostMessage(ctx context.Context, text string) error {
	if _, err := rc.session.ChannelMessageSend(rc.channelID, text); err != nil {
		return fmt.Errorf("error posting message to review channel: %w", err)
	}
	return nil
}
