package discord

import (
	"context"

	"github.com/VinothPrinzz/student-tutor-automation/internal/app"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/review"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/logger"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Discord caps modal titles at 45 characters.
const maxModalTitleLen = 45

// Handlers decodes reviewer interactions (button clicks, modal
// submissions) and drives the workflow service. Unrecognized payloads
// are logged and ignored; the handler itself never fails the gateway.
type Handlers struct {
	ctx      context.Context
	workflow *app.WorkflowService
	log      *logrus.Logger
}

func NewHandlers(ctx context.Context, workflow *app.WorkflowService, log *logrus.Logger) *Handlers {
	return &Handlers{ctx: ctx, workflow: workflow, log: log}
}

func (h *Handlers) Register(session *discordgo.Session) {
	session.AddHandler(h.onInteraction)
}

func (h *Handlers) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		h.onButton(s, i)
	case discordgo.InteractionModalSubmit:
		h.onModalSubmit(s, i)
	}
}

func (h *Handlers) onButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, recordID, ok := parseButtonID(i.MessageComponentData().CustomID)
	if !ok {
		logger.DeadLetter(h.log).Warnf("Unrecognized button CustomID: %s", i.MessageComponentData().CustomID)
		h.ack(s, i)
		return
	}

	switch action {
	case actionApprove:
		h.ack(s, i)
		ref := review.MessageRef{ChannelID: i.ChannelID, MessageID: i.Message.ID}
		if err := h.workflow.HandleApprove(h.ctx, recordID, reviewerID(i), ref); err != nil {
			h.log.Errorf("Approve handling failed for record %s: %v", recordID, err)
		}

	case actionEdit:
		rec, err := h.workflow.RecordForEdit(h.ctx, recordID)
		if err != nil {
			// Unknown record: drop the click, no reviewer-facing error.
			h.ack(s, i)
			return
		}
		h.openEditModal(s, i, recordID, rec.Question, rec.FinalAnswer())

	default:
		logger.DeadLetter(h.log).Warnf("Unknown button action %q for record %s", action, recordID)
		h.ack(s, i)
	}
}

// openEditModal opens the edit form pre-filled with the current answer.
// The modal CustomID carries record, channel and message ids so the
// submission can resume the approval without any stored session.
func (h *Handlers) openEditModal(s *discordgo.Session, i *discordgo.InteractionCreate, recordID, questionText, currentAnswer string) {
	title := "Edit: " + questionText
	if r := []rune(title); len(r) > maxModalTitleLen {
		title = string(r[:maxModalTitleLen-1]) + "…"
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: editModalCustomID(recordID, i.ChannelID, i.Message.ID),
			Title:    title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: answerInputID,
							Label:    "Answer",
							Style:    discordgo.TextInputParagraph,
							Value:    currentAnswer,
							Required: true,
						},
					},
				},
			},
		},
	})
	if err != nil {
		h.log.Errorf("Could not open edit modal for record %s: %v", recordID, err)
	}
}

func (h *Handlers) onModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	recordID, channelID, messageID, ok := parseEditModalID(data.CustomID)
	if !ok {
		logger.DeadLetter(h.log).Warnf("Unrecognized modal CustomID: %s", data.CustomID)
		h.ack(s, i)
		return
	}

	text, ok := submittedText(data)
	if !ok {
		logger.DeadLetter(h.log).Warnf("Edit modal for record %s carried no answer input", recordID)
		h.ack(s, i)
		return
	}

	h.ack(s, i)
	err := h.workflow.HandleEditSubmit(h.ctx, review.EditSubmission{
		RecordID:   recordID,
		ChannelID:  channelID,
		MessageID:  messageID,
		ReviewerID: reviewerID(i),
		Text:       text,
	})
	if err != nil {
		h.log.Errorf("Edit submission handling failed for record %s: %v", recordID, err)
	}
}

// ack closes the interaction without changing the message; card updates
// happen through the review channel adapter instead.
func (h *Handlers) ack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		h.log.Warnf("Could not acknowledge interaction: %v", err)
	}
}

func submittedText(data discordgo.ModalSubmitInteractionData) (string, bool) {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if !ok || input.CustomID != answerInputID {
				continue
			}
			return input.Value, true
		}
	}
	return "", false
}

func reviewerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
