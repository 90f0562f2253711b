// Package coupon talks to the remote BD2 coupon endpoint and
// normalizes its responses into domain outcomes. One attempt per call,
// no retries: the remote side consumes codes, retrying risks double
// redemption.
package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
)

const (
	defaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20

	// The remote API rejects requests that do not look like the
	// official web checkout page, so the client carries its origin.
	originHeader         = "https://redeem.bd2.pmang.cloud"
	refererHeader        = "https://redeem.bd2.pmang.cloud/"
	userAgentHeader      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader         = "application/json, text/plain, */*"
	acceptLanguageHeader = "en-US,en;q=0.9"
)

type Client struct {
	httpClient *http.Client

	apiURL string
	appID  string
}

func NewClient(apiURL, appID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiURL:     apiURL,
		appID:      appID,
	}
}

// Redeem posts one redemption attempt and translates the wire response
// into an outcome. It never returns an error: every failure mode is an
// outcome variant.
func (c *Client) Redeem(ctx context.Context, accountID, code string) domain.Outcome {
	body, err := json.Marshal(&redeemRequest{
		AppID:  c.appID,
		UserID: accountID,
		Code:   code,
	})
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeBadRequest, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeBadRequest, Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", originHeader)
	req.Header.Set("Referer", refererHeader)
	req.Header.Set("User-Agent", userAgentHeader)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeTransportFailure, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeTransportFailure, Cause: err}
	}

	return translate(resp.StatusCode, respBody)
}

// translate maps one wire response to an outcome. A parseable error
// field wins over the HTTP status, because the remote reports business
// errors with non-2xx statuses too.
func translate(statusCode int, body []byte) domain.Outcome {
	res := &redeemResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		if statusCode >= 200 && statusCode < 300 {
			return domain.Outcome{Kind: domain.OutcomeParseFailure, Cause: err}
		}

		return domain.Outcome{
			Kind:    domain.OutcomeUnknownRemote,
			Message: "status " + strconv.Itoa(statusCode),
		}
	}

	if res.Error == nil {
		if statusCode >= 200 && statusCode < 300 {
			return domain.Outcome{Kind: domain.OutcomeSuccess}
		}

		return domain.Outcome{
			Kind:    domain.OutcomeUnknownRemote,
			Message: "status " + strconv.Itoa(statusCode),
		}
	}

	return mapRemoteError(res.errorMessage())
}
