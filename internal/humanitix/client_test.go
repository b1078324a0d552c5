package humanitix_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pupbiru/humanitix-auto-codes/internal/humanitix"
	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() (string, error) { return s.token, nil }

func newTestClient(server *httptest.Server) *humanitix.Client {
	return humanitix.NewClient(server.Client(), nil, server.URL, staticTokens{token: "tok-1"})
}

func TestSearchEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/search", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "newest", r.URL.Query().Get("sortOrder"))
		assert.Equal(t, "all", r.URL.Query().Get("filter"))
		assert.Equal(t, "AU", r.URL.Query().Get("loc"))
		assert.NotEmpty(t, r.URL.Query().Get("date"))
		assert.Equal(t, "tok-1", r.Header.Get("x-token"))
		assert.Equal(t, "AU", r.Header.Get("x-user-level-location"))
		assert.Equal(t, "AU", r.Header.Get("x-override-location"))

		json.NewEncoder(w).Encode(models.EventSearchResponse{
			Events: []models.Event{{EventID: "ev1", Name: "Buff Night"}},
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server).SearchEvents()

	assert.NoError(t, err)
	assert.Len(t, resp.Events, 1)
	assert.Equal(t, "ev1", resp.Events[0].EventID)
}

func TestGetEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/ev1", r.URL.Path)
		json.NewEncoder(w).Encode(models.Event{
			EventID:     "ev1",
			Name:        "Buff Night",
			TicketTypes: []models.TicketType{{ID: "tt1", Name: "VIP"}},
		})
	}))
	defer server.Close()

	event, err := newTestClient(server).GetEvent("ev1")

	assert.NoError(t, err)
	assert.Equal(t, "Buff Night", event.Name)
	assert.Len(t, event.TicketTypes, 1)
}

func TestSendAutoDiscounts(t *testing.T) {
	var payload map[string][]models.AutoDiscount
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/events/ev1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	discounts := []models.AutoDiscount{{Code: "[AUTO] VIP", Discount: 100, DiscountType: "percent"}}
	err := newTestClient(server).SendAutoDiscounts("ev1", discounts)

	assert.NoError(t, err)
	assert.Len(t, payload["autoDiscounts"], 1)
	assert.Equal(t, "[AUTO] VIP", payload["autoDiscounts"][0].Code)
}

func TestUploadAccessCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/events/access-codes/upload/ev1", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "id1,id2", r.MultipartForm.Value["appliesTo"][0])
		assert.Equal(t, "true", r.MultipartForm.Value["enabled"][0])

		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "vips.csv", header.Filename)
		body, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "CODE1\nCODE2", string(body))

		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := newTestClient(server).UploadAccessCodes("ev1", "id1,id2", []string{"CODE1", "CODE2"})

	assert.NoError(t, err)
}

func TestUploadDiscountCodesCarriesFixedMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/discount-codes/upload/ev1", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		values := r.MultipartForm.Value
		assert.Equal(t, "1", values["quantity"][0])
		assert.Equal(t, "1", values["maximumUsePerOrder"][0])
		assert.Equal(t, "100", values["discount"][0])
		assert.Equal(t, "percent", values["discountType"][0])
		assert.Equal(t, "undefined", values["startDate"][0])
		assert.Equal(t, "undefined", values["endDate"][0])
		assert.Equal(t, "AU", values["location"][0])

		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := newTestClient(server).UploadDiscountCodes("ev1", "id1", []string{"CODE1"})

	assert.NoError(t, err)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server).SearchEvents()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestTokenFailureShortCircuits(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := humanitix.NewClient(server.Client(), nil, server.URL, failingTokens{})
	_, err := client.SearchEvents()

	assert.Error(t, err)
	assert.Equal(t, 0, requests)
}

type failingTokens struct{}

func (failingTokens) Token() (string, error) {
	return "", assert.AnError
}

func TestConsoleDateFormat(t *testing.T) {
	// The date query parameter follows the console's display format.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		assert.Regexp(t, `^[A-Z][a-z]{2} \d{1,2}(st|nd|rd|th) [A-Z][a-z]{2} \d{4}, \d{2}:\d{2} (AM|PM) AEDT$`, date)
		json.NewEncoder(w).Encode(models.EventSearchResponse{})
	}))
	defer server.Close()

	_, err := newTestClient(server).SearchEvents()
	assert.NoError(t, err)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, strings.Contains(r.URL.Path, "//"))
		json.NewEncoder(w).Encode(models.EventSearchResponse{})
	}))
	defer server.Close()

	client := humanitix.NewClient(server.Client(), nil, server.URL+"/", staticTokens{token: "tok"})
	_, err := client.SearchEvents()

	assert.NoError(t, err)
}
