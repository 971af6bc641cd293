package ampemail

import "fmt"

// CampaignType identifies the kind of campaign a template set is generated for.
type CampaignType string

const (
	CampaignTypeAbandonedCart CampaignType = "abandoned_cart"
	CampaignTypePromotional   CampaignType = "promotional"
	CampaignTypeProductLaunch CampaignType = "product_launch"
	CampaignTypePriceDrop     CampaignType = "price_drop"
	CampaignTypeBackInStock   CampaignType = "back_in_stock"
)

// Validate checks the value against the set of campaign types the API accepts.
func (t CampaignType) Validate() error {
	switch t {
	case CampaignTypeAbandonedCart, CampaignTypePromotional, CampaignTypeProductLaunch,
		CampaignTypePriceDrop, CampaignTypeBackInStock:
		return nil
	}
	return fmt.Errorf("%w: unknown campaign type %q", ErrValidation, string(t))
}

// CampaignGoal describes the outcome a campaign is optimized for.
type CampaignGoal string

const (
	CampaignGoalAcquisition CampaignGoal = "acquisition"
	CampaignGoalRetention   CampaignGoal = "retention"
	CampaignGoalEngagement  CampaignGoal = "engagement"
	CampaignGoalConversion  CampaignGoal = "conversion"
)

// Validate checks the value against the set of campaign goals the API accepts.
func (g CampaignGoal) Validate() error {
	switch g {
	case CampaignGoalAcquisition, CampaignGoalRetention, CampaignGoalEngagement, CampaignGoalConversion:
		return nil
	}
	return fmt.Errorf("%w: unknown campaign goal %q", ErrValidation, string(g))
}

// Urgency sets the tone intensity of the generated copy.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Validate checks the value against the set of urgency levels the API accepts.
func (u Urgency) Validate() error {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return nil
	}
	return fmt.Errorf("%w: unknown urgency %q", ErrValidation, string(u))
}
