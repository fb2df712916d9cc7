package service

import (
	"testing"

	"github.com/agencysite/internal/db"
)

func TestWhatsAppLinkStripsNonDigits(t *testing.T) {
	if got := DigitsOnly("+1 (555) 123-4567"); got != "15551234567" {
		t.Fatalf("expected 15551234567, got %s", got)
	}
	if got := WhatsAppLink("+1 (555) 123-4567", ""); got != "https://wa.me/15551234567" {
		t.Fatalf("unexpected link %s", got)
	}
}

func TestWhatsAppLinkEncodesMessage(t *testing.T) {
	got := WhatsAppLink("+44 20 7946 0958", " Hi, I'd like a quote & more ")
	want := "https://wa.me/442079460958?text=Hi%2C+I%27d+like+a+quote+%26+more"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDirectoryWhatsAppFallsBackToDefault(t *testing.T) {
	empty := NewContactDirectory(nil)
	if got := empty.WhatsAppLink("", ""); got != "https://wa.me/1234567890" {
		t.Fatalf("unexpected fallback link %s", got)
	}
	if got := empty.WhatsAppLink("+49 170 0000000", "Hello"); got != "https://wa.me/491700000000?text=Hello" {
		t.Fatalf("configured fallback should win over the default, got %s", got)
	}

	stored := NewContactDirectory([]db.ContactInformation{{Key: db.ContactKeyWhatsApp, Value: "+255 712-345-678"}})
	if got := stored.WhatsAppLink("+49 170 0000000", ""); got != "https://wa.me/255712345678" {
		t.Fatalf("unexpected stored link %s", got)
	}
}
