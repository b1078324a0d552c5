package humanitix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// TokenProvider hands out a valid console ID token.
type TokenProvider interface {
	Token() (string, error)
}

// Client talks to the Humanitix producer console REST API.
type Client struct {
	client  *http.Client
	log     *logger.Logger
	baseURL string
	tokens  TokenProvider
}

func NewClient(client *http.Client, log *logger.Logger, baseURL string, tokens TokenProvider) *Client {
	return &Client{
		client:  client,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}
}

func (c *Client) newRequest(method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-token", token)
	req.Header.Set("x-user-level-location", "AU")
	req.Header.Set("x-override-location", "AU")
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("console request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error("CONSOLE", fmt.Sprintf("Failed to close response body: %v", cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("CONSOLE", fmt.Sprintf("%s %s returned status %d", req.Method, req.URL.Path, resp.StatusCode))
		return fmt.Errorf("console returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode console response: %w", err)
	}
	return nil
}

// SearchEvents lists the organizer's events, newest first.
func (c *Client) SearchEvents() (*models.EventSearchResponse, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("sortOrder", "newest")
	query.Set("filter", "all")
	query.Set("loc", "AU")
	query.Set("date", consoleDate(time.Now()))

	req, err := c.newRequest("GET", "/api/events/search", query, nil)
	if err != nil {
		return nil, err
	}

	var out models.EventSearchResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	c.log.Info("CONSOLE", fmt.Sprintf("Fetched %d events", len(out.Events)))
	return &out, nil
}

// GetEvent fetches a single event snapshot.
func (c *Client) GetEvent(eventID string) (*models.Event, error) {
	req, err := c.newRequest("GET", "/api/events/"+eventID, nil, nil)
	if err != nil {
		return nil, err
	}

	var out models.Event
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return &out, nil
}

// SendAutoDiscounts replaces the event's full discount collection.
func (c *Client) SendAutoDiscounts(eventID string, discounts []models.AutoDiscount) error {
	payload, err := json.Marshal(map[string][]models.AutoDiscount{"autoDiscounts": discounts})
	if err != nil {
		return fmt.Errorf("marshal auto discounts: %w", err)
	}

	req, err := c.newRequest("POST", "/api/events/"+eventID, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("send auto discounts for %s: %w", eventID, err)
	}
	return nil
}

// UploadAccessCodes pushes the code list as an access-code CSV upload.
func (c *Client) UploadAccessCodes(eventID, appliesTo string, codes []string) error {
	fields := map[string]string{
		"appliesTo": appliesTo,
		"enabled":   "true",
	}
	return c.uploadCSV("/api/events/access-codes/upload/"+eventID, "vips.csv", codes, fields)
}

// UploadDiscountCodes pushes the code list as a 100%-off discount-code CSV
// upload with the fixed metadata the console expects alongside the file.
func (c *Client) UploadDiscountCodes(eventID, appliesTo string, codes []string) error {
	fields := map[string]string{
		"appliesTo":          appliesTo,
		"enabled":            "true",
		"quantity":           "1",
		"maximumUsePerOrder": "1",
		"discount":           "100",
		"discountType":       "percent",
		"startDate":          "undefined",
		"endDate":            "undefined",
		"location":           "AU",
	}
	return c.uploadCSV("/api/events/discount-codes/upload/"+eventID, "codes.csv", codes, fields)
}

func (c *Client) uploadCSV(path, filename string, codes []string, fields map[string]string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", "text/csv")
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create csv part: %w", err)
	}
	if _, err := part.Write([]byte(strings.Join(codes, "\n"))); err != nil {
		return fmt.Errorf("write csv part: %w", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := c.newRequest("PUT", path, nil, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("upload codes: %w", err)
	}
	return nil
}

// consoleDate renders the timestamp the way the console's own frontend does,
// e.g. "Tue 3rd Feb 2026, 05:04 PM AEDT".
func consoleDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s %s, %s AEDT",
		t.Format("Mon"), t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 2006"), t.Format("03:04 PM"))
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
