package ampemail_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ampemail "github.com/amp-platform/amp-email-go"
)

func TestProduct_RoundTrip(t *testing.T) {
	t.Parallel()

	product := ampemail.NewProduct()
	product.ID = ampemail.Ptr("prod_123")
	product.Name = ampemail.Ptr("Classic Tee")
	product.Price = ampemail.Ptr(29.90)
	product.Image = ampemail.Ptr("https://cdn.example.com/tee.png")
	product.URL = ampemail.Ptr("https://shop.example.com/p/classic-tee")
	product.Description = ampemail.Ptr("A classic cotton tee")
	product.Brand = ampemail.Ptr("Acme")

	data, err := json.Marshal(product)
	require.NoError(t, err)

	var got ampemail.Product
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, product, got)
}

func TestProduct_OmitsUnsetFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ampemail.Product{Name: ampemail.Ptr("Tee")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tee"}`, string(data))

	// Zero product serializes to an empty object, not a set of nulls.
	data, err = json.Marshal(ampemail.Product{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestNewProduct_DefaultCurrency(t *testing.T) {
	t.Parallel()

	product := ampemail.NewProduct()
	require.NotNil(t, product.Currency)
	assert.Equal(t, "USD", *product.Currency)

	data, err := json.Marshal(product)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD"}`, string(data))
}

func TestNewCampaignContext(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		cc, err := ampemail.NewCampaignContext(ampemail.CampaignTypePromotional, ampemail.CampaignGoalRetention)
		require.NoError(t, err)
		assert.Equal(t, ampemail.CampaignTypePromotional, cc.Type)
		assert.Equal(t, ampemail.CampaignGoalRetention, cc.Goal)
	})

	t.Run("bogus type", func(t *testing.T) {
		t.Parallel()

		_, err := ampemail.NewCampaignContext("bogus", ampemail.CampaignGoalRetention)
		require.Error(t, err)
		assert.ErrorIs(t, err, ampemail.ErrValidation)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("bogus goal", func(t *testing.T) {
		t.Parallel()

		_, err := ampemail.NewCampaignContext(ampemail.CampaignTypePromotional, "virality")
		require.Error(t, err)
		assert.ErrorIs(t, err, ampemail.ErrValidation)
	})
}

func TestCampaignContext_Validate(t *testing.T) {
	t.Parallel()

	cc := ampemail.CampaignContext{
		Type:    ampemail.CampaignTypePriceDrop,
		Goal:    ampemail.CampaignGoalConversion,
		Urgency: ampemail.Ptr(ampemail.Urgency("extreme")),
	}
	err := cc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ampemail.ErrValidation)
	assert.Contains(t, err.Error(), "extreme")
}

func TestCampaignContext_RoundTrip(t *testing.T) {
	t.Parallel()

	cc := ampemail.CampaignContext{
		Type:     ampemail.CampaignTypeBackInStock,
		Goal:     ampemail.CampaignGoalEngagement,
		Urgency:  ampemail.Ptr(ampemail.UrgencyHigh),
		Discount: ampemail.Ptr(0.15),
	}

	data, err := json.Marshal(cc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"back_in_stock","goal":"engagement","urgency":"high","discount":0.15}`, string(data))

	var got ampemail.CampaignContext
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, cc, got)
}

func TestCampaignContext_UnmarshalRejectsUnknownEnum(t *testing.T) {
	t.Parallel()

	var cc ampemail.CampaignContext
	err := json.Unmarshal([]byte(`{"type":"bogus","goal":"retention"}`), &cc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ampemail.ErrValidation)
}

func TestUserContext_FieldMapping(t *testing.T) {
	t.Parallel()

	uc := ampemail.UserContext{
		FirstName: ampemail.Ptr("Ada"),
		LastName:  ampemail.Ptr("Lovelace"),
		Email:     ampemail.Ptr("ada@example.com"),
		CustomFields: map[string]any{
			"loyalty_tier": "gold",
		},
	}

	data, err := json.Marshal(uc)
	require.NoError(t, err)

	// Wire names are camelCase even though the Go fields follow Go naming.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Contains(t, wire, "firstName")
	assert.Contains(t, wire, "lastName")
	assert.Contains(t, wire, "email")
	assert.Contains(t, wire, "customFields")

	var got ampemail.UserContext
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uc, got)
}

func TestBrandContext_FieldMapping(t *testing.T) {
	t.Parallel()

	bc := ampemail.BrandContext{
		Voice:       ampemail.Ptr("playful but direct"),
		Colors:      []string{"#0f172a", "#38bdf8"},
		Logo:        ampemail.Ptr("https://cdn.example.com/logo.svg"),
		CompanyName: ampemail.Ptr("Acme Inc."),
	}

	data, err := json.Marshal(bc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"voice": "playful but direct",
		"colors": ["#0f172a", "#38bdf8"],
		"logo": "https://cdn.example.com/logo.svg",
		"companyName": "Acme Inc."
	}`, string(data))

	var got ampemail.BrandContext
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, bc, got)
}

func TestGenerationOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		opts := ampemail.DefaultGenerationOptions()
		assert.Equal(t, 3, opts.Variations)
		assert.True(t, opts.PreserveMergeTags)
		require.NoError(t, opts.Validate())
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		opts := ampemail.GenerationOptions{Variations: 1, PreserveMergeTags: false}
		data, err := json.Marshal(opts)
		require.NoError(t, err)
		assert.JSONEq(t, `{"variations":1,"preserveMergeTags":false}`, string(data))

		var got ampemail.GenerationOptions
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, opts, got)
	})

	t.Run("non-positive variations", func(t *testing.T) {
		t.Parallel()

		err := ampemail.GenerationOptions{Variations: 0, PreserveMergeTags: true}.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ampemail.ErrValidation)
	})
}

const templateJSON = `{
	"id": "tpl_1",
	"variationName": "Urgent reminder",
	"ampUrl": "https://cdn.example.com/tpl_1.amp.html",
	"fallbackUrl": "https://cdn.example.com/tpl_1.html",
	"content": {"subject": "Still thinking it over?"},
	"mergeTags": ["first_name", "cart_total"]
}`

func TestTemplate_Decode(t *testing.T) {
	t.Parallel()

	var tpl ampemail.Template
	require.NoError(t, json.Unmarshal([]byte(templateJSON), &tpl))

	assert.Equal(t, "tpl_1", tpl.ID)
	assert.Equal(t, "Urgent reminder", tpl.VariationName)
	assert.Equal(t, "https://cdn.example.com/tpl_1.amp.html", tpl.AMPURL)
	assert.Equal(t, "https://cdn.example.com/tpl_1.html", tpl.FallbackURL)
	assert.Equal(t, map[string]any{"subject": "Still thinking it over?"}, tpl.Content)
	assert.Equal(t, []string{"first_name", "cart_total"}, tpl.MergeTags)
}

func TestTemplate_DecodeMissingField(t *testing.T) {
	t.Parallel()

	required := []string{"id", "variationName", "ampUrl", "fallbackUrl", "content", "mergeTags"}
	for _, field := range required {
		field := field
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(templateJSON), &doc))
			delete(doc, field)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			var tpl ampemail.Template
			err = json.Unmarshal(data, &tpl)
			require.Error(t, err)
			assert.ErrorIs(t, err, ampemail.ErrDecodeResponse)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestTemplate_DecodeIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(templateJSON), &doc))
	doc["experimental"] = true
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var tpl ampemail.Template
	require.NoError(t, json.Unmarshal(data, &tpl))
	assert.Equal(t, "tpl_1", tpl.ID)
}

func TestTemplate_RoundTrip(t *testing.T) {
	t.Parallel()

	var tpl ampemail.Template
	require.NoError(t, json.Unmarshal([]byte(templateJSON), &tpl))

	data, err := json.Marshal(tpl)
	require.NoError(t, err)

	var got ampemail.Template
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, tpl, got)
}

const campaignJSON = `{
	"campaignId": "camp_42",
	"templates": [` + templateJSON + `],
	"previewUrls": [{"tpl_1": "https://preview.example.com/tpl_1"}],
	"cost": {"total": 0.12, "currency": "USD"},
	"metadata": {"generation_time_ms": 8200}
}`

func TestCampaign_Decode(t *testing.T) {
	t.Parallel()

	var campaign ampemail.Campaign
	require.NoError(t, json.Unmarshal([]byte(campaignJSON), &campaign))

	assert.Equal(t, "camp_42", campaign.CampaignID)
	require.Len(t, campaign.Templates, 1)
	assert.Equal(t, "tpl_1", campaign.Templates[0].ID)
	assert.Equal(t, []map[string]string{{"tpl_1": "https://preview.example.com/tpl_1"}}, campaign.PreviewURLs)
	assert.Equal(t, map[string]any{"total": 0.12, "currency": "USD"}, campaign.Cost)
	assert.Equal(t, map[string]any{"generation_time_ms": 8200.0}, campaign.Metadata)
}

func TestCampaign_DecodeMissingField(t *testing.T) {
	t.Parallel()

	required := []string{"campaignId", "templates", "previewUrls", "cost", "metadata"}
	for _, field := range required {
		field := field
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(campaignJSON), &doc))
			delete(doc, field)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			var campaign ampemail.Campaign
			err = json.Unmarshal(data, &campaign)
			require.Error(t, err)
			assert.ErrorIs(t, err, ampemail.ErrDecodeResponse)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestCampaign_DecodeMalformedTemplate(t *testing.T) {
	t.Parallel()

	// A template element missing a required field fails the whole decode.
	var campaign ampemail.Campaign
	err := json.Unmarshal([]byte(`{
		"campaignId": "camp_42",
		"templates": [{"id": "tpl_1"}],
		"previewUrls": [],
		"cost": {},
		"metadata": {}
	}`), &campaign)
	require.Error(t, err)
	assert.ErrorIs(t, err, ampemail.ErrDecodeResponse)
	assert.Contains(t, err.Error(), "variationName")
}

func TestCampaign_RoundTrip(t *testing.T) {
	t.Parallel()

	var campaign ampemail.Campaign
	require.NoError(t, json.Unmarshal([]byte(campaignJSON), &campaign))

	data, err := json.Marshal(campaign)
	require.NoError(t, err)

	var got ampemail.Campaign
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, campaign, got)
}

func TestValidationHappensBeforeUse(t *testing.T) {
	t.Parallel()

	// Bad enum values never survive construction, so a payload built from
	// constructed models cannot carry them.
	_, err := ampemail.NewCampaignContext("flash_sale", ampemail.CampaignGoalConversion)
	assert.ErrorIs(t, err, ampemail.ErrValidation)

	var errs error
	for _, typ := range []ampemail.CampaignType{
		ampemail.CampaignTypeAbandonedCart,
		ampemail.CampaignTypePromotional,
		ampemail.CampaignTypeProductLaunch,
		ampemail.CampaignTypePriceDrop,
		ampemail.CampaignTypeBackInStock,
	} {
		errs = errors.Join(errs, typ.Validate())
	}
	assert.NoError(t, errs)
}
