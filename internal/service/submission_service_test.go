package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agencysite/internal/db"
)

type recordingNotifier struct {
	sent []db.ContactSubmission
	err  error
}

func (n *recordingNotifier) NotifySubmission(_ context.Context, submission db.ContactSubmission) error {
	n.sent = append(n.sent, submission)
	return n.err
}

func TestSubmissionSubmitNotifies(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewSubmissionService(newTestDB(t), notifier)

	submission, err := svc.Submit(ctx, SubmissionInput{
		Name:    "Asha",
		Email:   "asha@example.com",
		Message: "<i>Need</i> a landing page",
		Service: "Web Design",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.Subject != "Inquiry about Web Design" || submission.Message != "Need a landing page" || submission.Read {
		t.Fatalf("unexpected submission %#v", submission)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].ID != submission.ID {
		t.Fatalf("expected one notification, got %#v", notifier.sent)
	}
}

func TestSubmissionNotifyFailureDoesNotFailSubmit(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewSubmissionService(newTestDB(t), notifier)

	var reported error
	svc.OnNotifyError(func(err error) { reported = err })

	if _, err := svc.Submit(ctx, SubmissionInput{Name: "A", Email: "a@example.com", Subject: "Hi", Message: "Hello"}); err != nil {
		t.Fatalf("submit should succeed when notification fails: %v", err)
	}
	if reported == nil {
		t.Fatal("expected notification error to be reported")
	}
	if count, _ := svc.Count(ctx); count != 1 {
		t.Fatalf("expected stored submission, got %d", count)
	}
}

func TestSubmissionValidation(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t), nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, SubmissionInput{Name: "A", Email: "not-an-email", Subject: "s", Message: "m"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmissionInput{Name: "A", Email: "a@example.com", Subject: "s", Message: "<script>x</script>"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty message, got %v", err)
	}
}

func TestSubmissionReadAndNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewSubmissionService(newTestDB(t), nil)

	first, _ := svc.Submit(ctx, SubmissionInput{Name: "A", Email: "a@example.com", Subject: "s", Message: "m"})
	if _, err := svc.Submit(ctx, SubmissionInput{Name: "B", Email: "b@example.com", Subject: "s", Message: "m"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	read, err := svc.ToggleRead(ctx, first.ID)
	if err != nil || !read {
		t.Fatalf("expected read=true, got %v (%v)", read, err)
	}
	unread, err := svc.UnreadCount(ctx)
	if err != nil || unread != 1 {
		t.Fatalf("expected 1 unread, got %d (%v)", unread, err)
	}

	noted, err := svc.SaveNotes(ctx, first.ID, "replied by phone")
	if err != nil || noted.AdminNotes != "replied by phone" || !noted.Read {
		t.Fatalf("unexpected notes update %#v (%v)", noted, err)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
