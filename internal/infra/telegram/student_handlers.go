package telegram

import (
	"context"

	"github.com/VinothPrinzz/student-tutor-automation/internal/app"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/messaging"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterStudentHandlers wires inbound student messages (text and
// photo) into the workflow service. Each message is one independent
// unit of work; the handler never propagates workflow errors back to
// telebot beyond logging them.
func RegisterStudentHandlers(ctx context.Context, b *telebot.Bot, workflow *app.WorkflowService, log *logrus.Logger) {
	b.Handle(telebot.OnText, func(c telebot.Context) error {
		msg := inboundFrom(c)
		msg.Text = c.Text()

		if err := workflow.HandleQuestion(ctx, msg); err != nil {
			log.Errorf("Text question handling failed for user %d: %v", msg.UserID, err)
		}
		return nil
	})

	b.Handle(telebot.OnPhoto, func(c telebot.Context) error {
		photo := c.Message().Photo
		if photo == nil {
			log.Warn("Photo handler invoked without a photo payload")
			return nil
		}

		msg := inboundFrom(c)
		msg.PhotoFileID = photo.FileID
		msg.Text = c.Message().Caption

		if err := workflow.HandleQuestion(ctx, msg); err != nil {
			log.Errorf("Photo question handling failed for user %d: %v", msg.UserID, err)
		}
		return nil
	})
}

func inboundFrom(c telebot.Context) messaging.Inbound {
	sender := c.Sender()
	return messaging.Inbound{
		UserID:    sender.ID,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
	}
}
