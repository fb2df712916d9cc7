package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agencysite/internal/db"
)

func TestOfferingCreateAppearsInList(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	created, err := svc.Create(ctx, OfferingInput{
		Title:        " Web Design ",
		Description:  "Responsive sites",
		Icon:         "Globe",
		Features:     "Mobile first\n\nSEO",
		Pricing:      `[{"name":"Basic","price":"$149","period":"","features":["3 pages"]}]`,
		DisplayOrder: intPtr(2),
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	items, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 service, got %d", len(items))
	}
	got := items[0]
	if got.Title != "Web Design" || got.Icon != "Globe" || !got.Visible || got.DisplayOrder != 2 {
		t.Fatalf("unexpected stored service %#v", got)
	}
	if len(got.Features) != 2 || got.Features[1] != "SEO" {
		t.Fatalf("unexpected features %v", got.Features)
	}
	if len(got.Pricing) != 1 || got.Pricing[0].Name != "Basic" {
		t.Fatalf("unexpected pricing %v", got.Pricing)
	}
}

func TestOfferingListOrderedByDisplayOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	for _, item := range []struct {
		title string
		order int
	}{{"Third", 3}, {"First", 1}, {"Second", 2}} {
		if _, err := svc.Create(ctx, OfferingInput{Title: item.title, Description: "d", DisplayOrder: intPtr(item.order)}); err != nil {
			t.Fatalf("create %s: %v", item.title, err)
		}
	}

	items, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if items[i].Title != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, items[i].Title)
		}
	}
}

func TestOfferingDeleteRemovesFromList(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	keep, _ := svc.Create(ctx, OfferingInput{Title: "Keep", Description: "d"})
	drop, _ := svc.Create(ctx, OfferingInput{Title: "Drop", Description: "d"})

	if err := svc.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("delete service: %v", err)
	}
	items, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(items) != 1 || items[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %#v", keep.ID, items)
	}
	if err := svc.Delete(ctx, drop.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestOfferingToggleVisibilityHidesFromPublicList(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	created, err := svc.Create(ctx, OfferingInput{Title: "Branding", Description: "Logos", Features: "Logo", DisplayOrder: intPtr(4)})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	visible, err := svc.ToggleVisibility(ctx, created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if visible {
		t.Fatal("expected service to become hidden")
	}

	public, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("hidden service leaked into public list: %#v", public)
	}

	reloaded, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Visible || reloaded.Title != "Branding" || reloaded.Description != "Logos" ||
		reloaded.DisplayOrder != 4 || len(reloaded.Features) != 1 {
		t.Fatalf("toggle changed more than visibility: %#v", reloaded)
	}

	if visible, _ = svc.ToggleVisibility(ctx, created.ID); !visible {
		t.Fatal("expected second toggle to show the service again")
	}
}

func TestOfferingMalformedPricingWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	for _, pricing := range []string{`[{"name": "Basic",}]`, `[{"name": "Basic"}]]`, `[{"name": "Basic"}] }`} {
		if _, err := svc.Create(ctx, OfferingInput{Title: "Apps", Description: "d", Pricing: pricing}); !errors.Is(err, ErrInvalidPricing) {
			t.Fatalf("expected ErrInvalidPricing for %s, got %v", pricing, err)
		}
	}
	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows after rejected pricing, got %d", count)
	}

	existing, _ := svc.Create(ctx, OfferingInput{Title: "Apps", Description: "d"})
	for _, pricing := range []string{"not json", `[{"name": "Basic"}]]`} {
		if _, err := svc.Update(ctx, existing.ID, OfferingInput{Title: "Changed", Description: "d", Pricing: pricing}); !errors.Is(err, ErrInvalidPricing) {
			t.Fatalf("expected ErrInvalidPricing on update for %s, got %v", pricing, err)
		}
	}
	if count, _ := svc.Count(ctx); count != 1 {
		t.Fatalf("expected exactly one row after rejected updates, got %d", count)
	}
	reloaded, _ := svc.Get(ctx, existing.ID)
	if reloaded.Title != "Apps" {
		t.Fatalf("rejected update changed the row: %#v", reloaded)
	}
}

func TestOfferingFormRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	pricing := FormatPricing([]db.PricingTier{
		{Name: "Starter", Price: "$149", Features: []string{"1-3 pages", "SEO"}},
		{Name: "Enterprise", Price: "$899+", Period: "project", Features: []string{"Unlimited pages"}},
	})
	created, err := svc.Create(ctx, OfferingInput{
		Title:       "Web",
		Description: "Sites",
		Features:    "Fast\nSecure",
		Pricing:     pricing,
		LinkURL:     "https://example.com/web",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	form, err := svc.Form(ctx, created.ID)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Pricing != pricing || form.Features != "Fast\nSecure" {
		t.Fatalf("form does not match submitted values: %#v", form)
	}

	if _, err := svc.Update(ctx, created.ID, OfferingInput{
		Title:       form.Title,
		Description: form.Description,
		Features:    form.Features,
		Pricing:     form.Pricing,
		LinkURL:     form.LinkURL,
		Visible:     boolPtr(form.Visible),
	}); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	reopened, err := svc.Form(ctx, created.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened != form {
		t.Fatalf("form changed after resubmit:\nbefore %#v\nafter  %#v", form, reopened)
	}
}

func TestOfferingRequiresTitleAndValidLink(t *testing.T) {
	svc := NewOfferingService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, OfferingInput{Description: "d"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}
	if _, err := svc.Create(ctx, OfferingInput{Title: "t", Description: "d", LinkURL: "javascript:alert(1)"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad link, got %v", err)
	}
}

func TestPlansFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewOfferingService(newTestDB(t))

	plans, err := svc.Plans(ctx)
	if err != nil {
		t.Fatalf("plans: %v", err)
	}
	if len(plans) != 4 || plans[0].Tier.Name != "Starter" || !plans[1].Popular || !plans[3].OpenEnded {
		t.Fatalf("unexpected default plans %#v", plans)
	}

	if _, err := svc.Create(ctx, OfferingInput{Title: "Bots", Description: "d", Pricing: `[{"name":"Bot","price":"$50+","period":"month","features":[]}]`}); err != nil {
		t.Fatalf("create: %v", err)
	}
	plans, err = svc.Plans(ctx)
	if err != nil {
		t.Fatalf("plans: %v", err)
	}
	if len(plans) != 1 || plans[0].Service != "Bots" || plans[0].Tier.Price != "$50" || !plans[0].OpenEnded {
		t.Fatalf("unexpected service plans %#v", plans)
	}
}
