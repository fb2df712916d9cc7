// Package notify sends admin notifications for new contact submissions.
package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI 是 SESNotifier 用到的客户端方法
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier 通过 SESv2 给管理员发邮件
type SESNotifier struct {
	client   SESAPI
	from     string
	to       string
	siteName string
}

// NewSESNotifier 使用默认凭证链构造 SESNotifier
func NewSESNotifier(ctx context.Context, region, from, to, siteName string) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESNotifierWithClient(sesv2.NewFromConfig(cfg), from, to, siteName), nil
}

// NewSESNotifierWithClient 使用已有客户端构造 SESNotifier
func NewSESNotifierWithClient(client SESAPI, from, to, siteName string) *SESNotifier {
	return &SESNotifier{client: client, from: from, to: to, siteName: siteName}
}

var submissionEmail = template.Must(template.New("submission").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: sans-serif; line-height: 1.5;">
  <h2>New message on {{.Site}}</h2>
  <p><strong>From:</strong> {{.Submission.Name}} &lt;{{.Submission.Email}}&gt;</p>
  {{if .Submission.Service}}<p><strong>Service:</strong> {{.Submission.Service}}</p>{{end}}
  <p><strong>Subject:</strong> {{.Submission.Subject}}</p>
  <p style="white-space: pre-wrap;">{{.Submission.Message}}</p>
</body>
</html>`))

// NotifySubmission implements service.Notifier.
func (n *SESNotifier) NotifySubmission(ctx context.Context, submission db.ContactSubmission) error {
	var body strings.Builder
	if err := submissionEmail.Execute(&body, struct {
		Site       string
		Submission db.ContactSubmission
	}{n.siteName, submission}); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &sestypes.Destination{ToAddresses: []string{n.to}},
		ReplyToAddresses: []string{submission.Email},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(fmt.Sprintf("[%s] %s", n.siteName, submission.Subject))},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(body.String())},
					Text: &sestypes.Content{Data: aws.String(fmt.Sprintf("%s <%s>\n\n%s", submission.Name, submission.Email, submission.Message))},
				},
			},
		},
	}
	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send notification email: %w", err)
	}
	return nil
}
