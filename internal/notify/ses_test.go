package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/agencysite/internal/db"
	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, nil
}

func TestNotifySubmissionBuildsEmail(t *testing.T) {
	client := &fakeSES{}
	notifier := NewSESNotifierWithClient(client, "noreply@misafa.tech", "admin@misafa.tech", "Misafa")

	err := notifier.NotifySubmission(context.Background(), db.ContactSubmission{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Quote",
		Message: "Need <b>a site</b>",
		Service: "Web Design",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	in := client.input
	if aws.ToString(in.FromEmailAddress) != "noreply@misafa.tech" || in.Destination.ToAddresses[0] != "admin@misafa.tech" {
		t.Fatalf("unexpected addressing %#v", in)
	}
	if in.ReplyToAddresses[0] != "asha@example.com" {
		t.Fatalf("expected reply-to visitor, got %v", in.ReplyToAddresses)
	}
	if subject := aws.ToString(in.Content.Simple.Subject.Data); subject != "[Misafa] Quote" {
		t.Fatalf("unexpected subject %q", subject)
	}
	html := aws.ToString(in.Content.Simple.Body.Html.Data)
	if !strings.Contains(html, "Web Design") || strings.Contains(html, "<b>a site</b>") {
		t.Fatalf("expected escaped html body, got %s", html)
	}
}
