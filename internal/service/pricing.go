package service

import (
	"context"
	"strings"

	"github.com/agencysite/internal/db"
)

// PricingPlan 是定价页上的一张方案卡片
type PricingPlan struct {
	Service   string         `json:"service,omitempty"`
	Tier      db.PricingTier `json:"tier"`
	Popular   bool           `json:"popular"`
	OpenEnded bool           `json:"open_ended"`
}

// DefaultPlans 在没有任何服务配置价格方案时展示
func DefaultPlans() []PricingPlan {
	return []PricingPlan{
		plan("Starter", "$149", false,
			"1–3 pages (Home, About, Contact)",
			"Mobile-friendly design",
			"Basic SEO setup",
			"Contact form integration",
			"Free SSL + Hosting support setup",
			"Delivery in 3–5 days",
		),
		plan("Professional", "$299", true,
			"Up to 7 pages (includes Services or Products section)",
			"Custom responsive design",
			"Basic animations & icons",
			"Google Maps & social links",
			"SEO optimization",
			"Blog setup or gallery",
			"Delivery in 5–7 days",
		),
		plan("Business", "$499", false,
			"Up to 12 pages",
			"Premium modern UI/UX",
			"E-commerce (Shop + Cart + Payment integration)",
			"Admin dashboard (optional)",
			"Live chat integration",
			"Speed optimization & analytics",
			"Delivery in 7–10 days",
		),
		plan("Enterprise", "$899+", false,
			"Unlimited pages",
			"Full custom system (Portal / SaaS / Marketplace)",
			"Database & API integration",
			"Advanced security setup",
			"Maintenance & updates (1 month free)",
			"Priority support",
		),
	}
}

func plan(name, price string, popular bool, features ...string) PricingPlan {
	return PricingPlan{
		Tier:      db.PricingTier{Name: name, Price: strings.TrimSuffix(price, "+"), Features: features},
		Popular:   popular,
		OpenEnded: strings.HasSuffix(price, "+"),
	}
}

// Plans 返回定价页方案：优先使用可见服务的价格方案，否则回退到 DefaultPlans
func (s *OfferingService) Plans(ctx context.Context) ([]PricingPlan, error) {
	offerings, err := s.WithPricing(ctx)
	if err != nil {
		return nil, err
	}
	if len(offerings) == 0 {
		return DefaultPlans(), nil
	}
	var plans []PricingPlan
	for _, offering := range offerings {
		for _, tier := range offering.Pricing {
			price := strings.TrimSpace(tier.Price)
			tier.Price = strings.TrimSuffix(price, "+")
			plans = append(plans, PricingPlan{
				Service:   offering.Title,
				Tier:      tier,
				OpenEnded: strings.HasSuffix(price, "+"),
			})
		}
	}
	return plans, nil
}
