package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

// UserAgent is sent with every submission.
var UserAgent = fmt.Sprintf("portfolio-contact (%s; %s)", runtime.GOOS, runtime.GOARCH)

// Payload is the JSON body posted to the contacts endpoint.
type Payload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// NewPayload maps form fields to their wire names. Values are sent as typed.
func NewPayload(f FormFields) Payload {
	return Payload{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Message:   f.Message,
	}
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("contact endpoint responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPSubmitter posts the payload as JSON to {baseURL}/contacts/.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter builds a submitter for the API rooted at baseURL. A nil
// client gets one without a timeout; the request runs until it settles.
func NewHTTPSubmitter(baseURL string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Transport: &userAgentTransport{agent: UserAgent, rt: http.DefaultTransport}}
	}
	return &HTTPSubmitter{
		endpoint: strings.TrimRight(baseURL, "/") + "/contacts/",
		client:   client,
	}
}

// Endpoint returns the URL submissions are posted to.
func (s *HTTPSubmitter) Endpoint() string {
	return s.endpoint
}

func (s *HTTPSubmitter) Submit(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode contact payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send contact request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

type userAgentTransport struct {
	agent string
	rt    http.RoundTripper
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.Header.Set("User-Agent", u.agent)
	return u.rt.RoundTrip(r2)
}
