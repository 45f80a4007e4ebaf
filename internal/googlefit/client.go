// Package googlefit fetches daily step counts from the Google Fit REST API.
//
// Credential acquisition is out of scope: the client consumes an
// already-authorized user token from the GOOGLE_FIT_TOKEN environment
// variable and refreshes it through the standard OAuth2 flow when a refresh
// token is present.
package googlefit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	apperrors "github.com/fracturedbytes/vitals/internal/platform/errors"
	"github.com/fracturedbytes/vitals/internal/platform/timeouts"
	"golang.org/x/oauth2"
)

const (
	// TokenEnvVar names the environment variable holding the authorized-user
	// token JSON.
	TokenEnvVar = "GOOGLE_FIT_TOKEN"

	// ScopeActivityRead is the only OAuth scope this client needs.
	ScopeActivityRead = "https://www.googleapis.com/auth/fitness.activity.read"

	defaultBaseURL = "https://www.googleapis.com/fitness/v1"
	aggregatePath  = "/users/me/dataset:aggregate"
	stepDataType   = "com.google.step_count.delta"

	// dayBucketMillis buckets the aggregate into one daily bucket.
	dayBucketMillis = 86400000
)

// googleTokenURL is Google's OAuth2 token endpoint, used for refresh.
const googleTokenURL = "https://oauth2.googleapis.com/token"

// authorizedUserToken mirrors the authorized-user JSON produced by Google's
// OAuth tooling.
type authorizedUserToken struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Expiry       string `json:"expiry"`
}

// Client calls the Google Fit aggregate endpoint with an OAuth2-backed HTTP
// client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewFromEnv builds a client from the GOOGLE_FIT_TOKEN environment variable.
// A missing variable yields CONFIGURATION_CREDENTIAL_MISSING; malformed token
// JSON yields CONFIGURATION_CREDENTIAL_INVALID.
func NewFromEnv(ctx context.Context) (*Client, error) {
	tokenJSON, ok := os.LookupEnv(TokenEnvVar)
	if !ok || tokenJSON == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationCredentialMissing, TokenEnvVar+" not configured in environment")
	}
	return New(ctx, tokenJSON)
}

// New builds a client from authorized-user token JSON.
func New(ctx context.Context, tokenJSON string) (*Client, error) {
	var raw authorizedUserToken
	if err := json.Unmarshal([]byte(tokenJSON), &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigurationCredentialInvalid, "parse authorized user token", err)
	}
	if raw.AccessToken == "" && raw.RefreshToken == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationCredentialInvalid, "token JSON carries neither an access token nor a refresh token")
	}

	token := &oauth2.Token{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
	}
	if raw.Expiry != "" {
		if expiry, err := time.Parse(time.RFC3339, raw.Expiry); err == nil {
			token.Expiry = expiry
		}
	}

	conf := &oauth2.Config{
		ClientID:     raw.ClientID,
		ClientSecret: raw.ClientSecret,
		Scopes:       []string{ScopeActivityRead},
		Endpoint:     oauth2.Endpoint{TokenURL: googleTokenURL},
	}

	httpc := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))
	httpc.Timeout = timeouts.GoogleFitRequest
	return &Client{baseURL: defaultBaseURL, httpc: httpc}, nil
}

// aggregateRequest is the dataset:aggregate request body.
type aggregateRequest struct {
	AggregateBy     []aggregateBy `json:"aggregateBy"`
	BucketByTime    bucketByTime  `json:"bucketByTime"`
	StartTimeMillis int64         `json:"startTimeMillis"`
	EndTimeMillis   int64         `json:"endTimeMillis"`
}

type aggregateBy struct {
	DataTypeName string `json:"dataTypeName"`
}

type bucketByTime struct {
	DurationMillis int64 `json:"durationMillis"`
}

// aggregateResponse is the subset of the dataset:aggregate response this
// client reads. Every field is optional: partial responses sum what is
// present and treat the rest as zero.
type aggregateResponse struct {
	Bucket []struct {
		Dataset []struct {
			Point []struct {
				Value []struct {
					IntVal *int64 `json:"intVal"`
				} `json:"value"`
			} `json:"point"`
		} `json:"dataset"`
	} `json:"bucket"`
}

// FetchSteps returns the summed step-count delta for the [start, end) window.
// Transport failures and non-2xx statuses surface as UPSTREAM_REQUEST_FAILED;
// an unparseable body surfaces as UPSTREAM_RESPONSE_INVALID. Missing
// per-point values count as zero rather than failing the whole window.
func (c *Client) FetchSteps(ctx context.Context, start, end time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	body, err := json.Marshal(aggregateRequest{
		AggregateBy:     []aggregateBy{{DataTypeName: stepDataType}},
		BucketByTime:    bucketByTime{DurationMillis: dayBucketMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamRequestFailed, "encode aggregate request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+aggregatePath, bytes.NewReader(body))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamRequestFailed, "build aggregate request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamRequestFailed, "google fit aggregate request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperrors.WithMetadata(
			apperrors.CodeUpstreamRequestFailed,
			fmt.Sprintf("google fit aggregate returned %s", resp.Status),
			map[string]string{"status": resp.Status},
		)
	}

	var parsed aggregateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamResponseInvalid, "decode aggregate response", err)
	}

	var steps int64
	for _, bucket := range parsed.Bucket {
		for _, dataset := range bucket.Dataset {
			for _, point := range dataset.Point {
				for _, value := range point.Value {
					if value.IntVal != nil {
						steps += *value.IntVal
					}
				}
			}
		}
	}
	return steps, nil
}
