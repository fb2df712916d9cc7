package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agencysite/internal/db"
)

func TestContactDirectoryLookups(t *testing.T) {
	ctx := context.Background()
	svc := NewContactInfoService(newTestDB(t))

	inputs := []ContactInfoInput{
		{Key: "WhatsApp", Value: "+1 (555) 123-4567", Label: "WhatsApp", Category: "Contact"},
		{Key: "email", Value: "hello@misafa.tech", Label: "Email", Category: "contact"},
		{Key: "instagram", Value: "https://instagram.com/misafa", Label: "Instagram", Category: "social"},
		{Key: "address", Value: "Dar es Salaam", Label: "Address"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("create %s: %v", input.Key, err)
		}
	}

	dir, err := svc.Directory(ctx)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if got := dir.ByKey("email"); got != "hello@misafa.tech" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := dir.ByKey("missing"); got != "" {
		t.Fatalf("expected empty value for missing key, got %q", got)
	}
	if got := dir.ByKeyOr("phone", "n/a"); got != "n/a" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := dir.WhatsAppLink("+49 170 0000000", ""); got != "https://wa.me/15551234567" {
		t.Fatalf("unexpected whatsapp link %q", got)
	}
	if contact := dir.ByCategory("contact"); len(contact) != 2 {
		t.Fatalf("expected 2 contact entries, got %d", len(contact))
	}

	groups := dir.Grouped()
	if len(groups) != 3 || groups[0].Category != "contact" || groups[1].Category != "general" || groups[2].Category != "social" {
		t.Fatalf("unexpected groups %#v", groups)
	}
}

func TestContactInfoDuplicateKey(t *testing.T) {
	ctx := context.Background()
	svc := NewContactInfoService(newTestDB(t))

	phone, err := svc.Create(ctx, ContactInfoInput{Key: "phone", Value: "1", Label: "Phone"})
	if err != nil {
		t.Fatalf("create phone: %v", err)
	}
	email, err := svc.Create(ctx, ContactInfoInput{Key: "email", Value: "a@b.co", Label: "Email"})
	if err != nil {
		t.Fatalf("create email: %v", err)
	}
	if _, err := svc.Create(ctx, ContactInfoInput{Key: "PHONE", Value: "2", Label: "Phone"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.Update(ctx, email.ID, ContactInfoInput{Key: "phone", Value: "x", Label: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on rename, got %v", err)
	}
	if _, err := svc.Update(ctx, phone.ID, ContactInfoInput{Key: "phone", Value: "+255 700", Label: "Call us"}); err != nil {
		t.Fatalf("update keeping key: %v", err)
	}
}

func TestContactInfoUpdateValueOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewContactInfoService(newTestDB(t))

	item, err := svc.Create(ctx, ContactInfoInput{Key: db.ContactKeyWhatsApp, Value: "+1 000", Label: "WhatsApp", Category: "contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.UpdateValue(ctx, item.ID, " +1 999 ")
	if err != nil {
		t.Fatalf("update value: %v", err)
	}
	if updated.Value != "+1 999" || updated.Label != "WhatsApp" || updated.Category != "contact" {
		t.Fatalf("unexpected row after inline edit %#v", updated)
	}
	if _, err := svc.UpdateValue(ctx, item.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank value, got %v", err)
	}
	if _, err := svc.UpdateValue(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
