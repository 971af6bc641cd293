// Package ampemail is the official Go client for the AMP Email Generation API.
// It turns typed product, campaign, user, and brand data into HTTP requests
// and decodes the server's responses back into typed values.
//
// The client is a thin, synchronous mapping layer: each operation is exactly
// one request/response round trip with no retries, backoff, or pagination.
// Failures surface immediately as typed errors and nothing is logged
// internally.
//
// # Basic Usage
//
//	client, err := ampemail.New(os.Getenv("AMP_EMAIL_API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	campaignCtx, err := ampemail.NewCampaignContext(
//		ampemail.CampaignTypeAbandonedCart,
//		ampemail.CampaignGoalConversion,
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	campaign, err := client.Generate(ctx, ampemail.GenerateParams{
//		ProductURLs:     []string{"https://shop.example.com/p/classic-tee"},
//		CampaignContext: &campaignCtx,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(campaign.CampaignID, len(campaign.Templates))
//
// # Configuration
//
// Construction accepts functional options for the endpoint, timeout, HTTP
// client, and user agent:
//
//	client, err := ampemail.New(apiKey,
//		ampemail.WithBaseURL("https://staging.amp-platform.com"),
//		ampemail.WithTimeout(10*time.Second),
//	)
//
// Environment-driven construction reads AMP_EMAIL_API_KEY, AMP_EMAIL_BASE_URL,
// and AMP_EMAIL_TIMEOUT, loading a .env file when one is present:
//
//	client, err := ampemail.NewFromEnv()
//
// # Error Handling
//
// Every failure is one of four kinds. Client-side input problems match
// ErrValidation before any network call; HTTP 401 and 429 match
// ErrAuthentication and ErrRateLimit; unparseable success bodies match
// ErrDecodeResponse; everything else is an *APIError carrying the status
// code and the server's message when it sent one:
//
//	campaign, err := client.Generate(ctx, params)
//	switch {
//	case errors.Is(err, ampemail.ErrAuthentication):
//		// rotate the API key
//	case errors.Is(err, ampemail.ErrRateLimit):
//		// back off and try again later
//	case errors.Is(err, ampemail.ErrValidation):
//		// fix the inputs; nothing was sent
//	}
//
//	var apiErr *ampemail.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("API failure: status=%d message=%s", apiErr.StatusCode, apiErr.Message)
//	}
package ampemail
