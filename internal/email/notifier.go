package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// Notifier turns workflow events into emails. The recipient is taken from
// the event; stage-2 approvals carry no recipient and resolve to the leader
// of the directorate area instead.
type Notifier struct {
	sender          port.EmailSender
	userRepo        port.UserRepository
	areaRepo        port.BusinessAreaRepository
	frontendURL     string
	directorateName string
}

// NewNotifier creates a Notifier on top of an EmailSender.
func NewNotifier(
	sender port.EmailSender,
	userRepo port.UserRepository,
	areaRepo port.BusinessAreaRepository,
	frontendURL, directorateName string,
) *Notifier {
	return &Notifier{
		sender:          sender,
		userRepo:        userRepo,
		areaRepo:        areaRepo,
		frontendURL:     frontendURL,
		directorateName: directorateName,
	}
}

// Dispatch sends the email for one workflow event. The transition it
// describes has already committed; a failure here is the caller's to log,
// never to act on.
func (n *Notifier) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	recipientID := event.RecipientID
	if recipientID == uuid.Nil {
		id, err := n.directorateLeader(ctx)
		if err != nil {
			return fmt.Errorf("email.Dispatch: %w", err)
		}
		recipientID = id
	}
	recipient, err := n.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("email.Dispatch: %w", err)
	}

	actorName := "A colleague"
	if actor, err := n.userRepo.GetByID(ctx, event.ActorID); err == nil {
		actorName = actor.FullName()
	}

	subject, text := n.compose(event, actorName)
	html := buildActionHTML(recipient.FirstName, text, n.documentURL(event))
	if err := n.sender.Send(ctx, recipient.Email, subject, html, text); err != nil {
		return fmt.Errorf("email.Dispatch: %w", err)
	}
	return nil
}

func (n *Notifier) compose(event domain.NotificationEvent, actorName string) (subject, text string) {
	docName := event.DocumentKind.DisplayName()
	capacity := event.Stage.Capacity()

	switch event.Kind {
	case domain.NotifyApprovalRequested:
		subject = fmt.Sprintf("%s awaiting your approval: %s", docName, event.ProjectTitle)
		text = fmt.Sprintf("%s approved the %s for %q as %s. It is now waiting on you.",
			actorName, docName, event.ProjectTitle, capacity)
	case domain.NotifyApproved:
		subject = fmt.Sprintf("%s fully approved: %s", docName, event.ProjectTitle)
		text = fmt.Sprintf("%s granted the final %s approval on the %s for %q.",
			actorName, capacity, docName, event.ProjectTitle)
	case domain.NotifyRecalled:
		subject = fmt.Sprintf("%s approval recalled: %s", docName, event.ProjectTitle)
		text = fmt.Sprintf("%s recalled their %s approval on the %s for %q.",
			actorName, capacity, docName, event.ProjectTitle)
	case domain.NotifySentBack:
		subject = fmt.Sprintf("%s sent back for revision: %s", docName, event.ProjectTitle)
		text = fmt.Sprintf("%s sent the %s for %q back for revision as %s.",
			actorName, docName, event.ProjectTitle, capacity)
	case domain.NotifyProjectReopened:
		subject = fmt.Sprintf("Project reopened: %s", event.ProjectTitle)
		text = fmt.Sprintf("%s reopened %q from its approved closure. The project is back in the update phase.",
			actorName, event.ProjectTitle)
	default:
		subject = fmt.Sprintf("Update on %s: %s", docName, event.ProjectTitle)
		text = fmt.Sprintf("%s acted on the %s for %q.", actorName, docName, event.ProjectTitle)
	}
	return subject, text
}

func (n *Notifier) documentURL(event domain.NotificationEvent) string {
	return fmt.Sprintf("%s/projects/%s/documents/%s", n.frontendURL, event.ProjectID, event.DocumentID)
}

func (n *Notifier) directorateLeader(ctx context.Context) (uuid.UUID, error) {
	area, err := n.areaRepo.GetByName(ctx, n.directorateName)
	if err != nil {
		return uuid.Nil, err
	}
	if area.LeaderID == nil {
		return uuid.Nil, fmt.Errorf("business area %q has no leader", n.directorateName)
	}
	return *area.LeaderID, nil
}

func buildActionHTML(name, text, docURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1D4ED8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Document</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">DocFlow - Project Document Workflow</p>
</body>
</html>`, name, text, docURL)
}
