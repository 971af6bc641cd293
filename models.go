package ampemail

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultCurrency is applied to products built with NewProduct.
const DefaultCurrency = "USD"

// Product describes an item featured in generated emails. Every field is
// optional: the server scrapes or infers whatever is left unset. Unset fields
// are omitted from the request body entirely, which is distinct from sending
// an explicitly empty value.
type Product struct {
	ID          *string  `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Image       *string  `json:"image,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Description *string  `json:"description,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
}

// NewProduct returns a Product with the default currency applied. A zero
// Product is also valid; it just carries no currency hint for the server.
func NewProduct() Product {
	return Product{Currency: Ptr(DefaultCurrency)}
}

// CampaignContext configures what kind of campaign the templates are
// generated for. Type and Goal are required; Urgency and Discount are
// optional. The discount unit (fraction vs percentage) is a server contract
// and is not validated here.
type CampaignContext struct {
	Type     CampaignType `json:"type"`
	Goal     CampaignGoal `json:"goal"`
	Urgency  *Urgency     `json:"urgency,omitempty"`
	Discount *float64     `json:"discount,omitempty"`
}

// NewCampaignContext builds a CampaignContext and validates the enumerated
// fields up front, so a bad value fails here rather than on the wire.
func NewCampaignContext(typ CampaignType, goal CampaignGoal) (CampaignContext, error) {
	cc := CampaignContext{Type: typ, Goal: goal}
	if err := cc.Validate(); err != nil {
		return CampaignContext{}, err
	}
	return cc, nil
}

// Validate checks all enumerated fields against their declared value sets.
func (c CampaignContext) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if err := c.Goal.Validate(); err != nil {
		return err
	}
	if c.Urgency != nil {
		if err := c.Urgency.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes and validates, so a payload carrying an unknown
// enum value fails the decode instead of surfacing later at use.
func (c *CampaignContext) UnmarshalJSON(data []byte) error {
	type campaignContext CampaignContext
	var aux campaignContext
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	cc := CampaignContext(aux)
	if err := cc.Validate(); err != nil {
		return err
	}
	*c = cc
	return nil
}

// UserContext carries recipient data used to personalize generated copy.
// The wire format uses camelCase field names; the json tags are the
// bidirectional mapping applied on both serialize and deserialize.
type UserContext struct {
	FirstName    *string        `json:"firstName,omitempty"`
	LastName     *string        `json:"lastName,omitempty"`
	Email        *string        `json:"email,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// BrandContext carries brand styling and voice hints for generation.
type BrandContext struct {
	Voice       *string  `json:"voice,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Logo        *string  `json:"logo,omitempty"`
	CompanyName *string  `json:"companyName,omitempty"`
}

// GenerationOptions tunes template generation. Both fields always serialize;
// there is no meaningful "absent" state once the struct is sent.
type GenerationOptions struct {
	Variations        int  `json:"variations"`
	PreserveMergeTags bool `json:"preserveMergeTags"`
}

// DefaultGenerationOptions returns the server defaults: three variations
// with merge tags preserved.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{Variations: 3, PreserveMergeTags: true}
}

// Validate rejects non-positive variation counts.
func (o GenerationOptions) Validate() error {
	if o.Variations <= 0 {
		return fmt.Errorf("%w: variations must be a positive integer, got %d", ErrValidation, o.Variations)
	}
	return nil
}

// Template is one generated email variation. All fields are required when
// decoding a server response; a payload missing any of them fails the decode.
type Template struct {
	ID            string         `json:"id"`
	VariationName string         `json:"variationName"`
	AMPURL        string         `json:"ampUrl"`
	FallbackURL   string         `json:"fallbackUrl"`
	Content       map[string]any `json:"content"`
	MergeTags     []string       `json:"mergeTags"`
}

// UnmarshalJSON performs a strict decode: every required field must be
// present and non-null. Unknown extra fields are ignored.
func (t *Template) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID            *string        `json:"id"`
		VariationName *string        `json:"variationName"`
		AMPURL        *string        `json:"ampUrl"`
		FallbackURL   *string        `json:"fallbackUrl"`
		Content       map[string]any `json:"content"`
		MergeTags     *[]string      `json:"mergeTags"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	switch {
	case aux.ID == nil:
		return missingField("template", "id")
	case aux.VariationName == nil:
		return missingField("template", "variationName")
	case aux.AMPURL == nil:
		return missingField("template", "ampUrl")
	case aux.FallbackURL == nil:
		return missingField("template", "fallbackUrl")
	case aux.Content == nil:
		return missingField("template", "content")
	case aux.MergeTags == nil:
		return missingField("template", "mergeTags")
	}
	*t = Template{
		ID:            *aux.ID,
		VariationName: *aux.VariationName,
		AMPURL:        *aux.AMPURL,
		FallbackURL:   *aux.FallbackURL,
		Content:       aux.Content,
		MergeTags:     *aux.MergeTags,
	}
	return nil
}

// Campaign is the result of a generate call: the generated template
// variations plus preview links, cost accounting, and metadata. All fields
// are required on decode.
type Campaign struct {
	CampaignID  string              `json:"campaignId"`
	Templates   []Template          `json:"templates"`
	PreviewURLs []map[string]string `json:"previewUrls"`
	Cost        map[string]any      `json:"cost"`
	Metadata    map[string]any      `json:"metadata"`
}

// UnmarshalJSON performs a strict decode of the campaign envelope. Template
// elements are themselves decoded strictly, and their errors pass through
// unwrapped a second time.
func (c *Campaign) UnmarshalJSON(data []byte) error {
	var aux struct {
		CampaignID  *string              `json:"campaignId"`
		Templates   *[]Template          `json:"templates"`
		PreviewURLs *[]map[string]string `json:"previewUrls"`
		Cost        map[string]any       `json:"cost"`
		Metadata    map[string]any       `json:"metadata"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		if errors.Is(err, ErrDecodeResponse) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	switch {
	case aux.CampaignID == nil:
		return missingField("campaign", "campaignId")
	case aux.Templates == nil:
		return missingField("campaign", "templates")
	case aux.PreviewURLs == nil:
		return missingField("campaign", "previewUrls")
	case aux.Cost == nil:
		return missingField("campaign", "cost")
	case aux.Metadata == nil:
		return missingField("campaign", "metadata")
	}
	*c = Campaign{
		CampaignID:  *aux.CampaignID,
		Templates:   *aux.Templates,
		PreviewURLs: *aux.PreviewURLs,
		Cost:        aux.Cost,
		Metadata:    aux.Metadata,
	}
	return nil
}

func missingField(entity, field string) error {
	return fmt.Errorf("%w: %s is missing required field %q", ErrDecodeResponse, entity, field)
}
