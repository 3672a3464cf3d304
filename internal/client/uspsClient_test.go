package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"floral-commerce/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetTrackingInfoDisabledReturnsMock(t *testing.T) {
	c := NewUSPSClient(&config.USPS{Enabled: false}, discardLogger())

	info := c.GetTrackingInfo(context.Background(), "9400111111")
	require.NotNil(t, info)
	assert.Equal(t, "9400111111", info.TrackingNumber)
	assert.Equal(t, "IN_TRANSIT", info.StatusCode)
	assert.NotNil(t, info.ExpectedDelivery)
	assert.Len(t, info.Events, 4)
}

func TestGetTrackingInfoUpstreamFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewUSPSClient(&config.USPS{
		Enabled:      true,
		BaseApiURL:   srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
	}, discardLogger())

	info := c.GetTrackingInfo(context.Background(), "9400222222")
	require.NotNil(t, info)
	assert.Equal(t, "ERROR", info.StatusCode)
	require.Len(t, info.Events, 1)
	assert.Contains(t, info.Events[0].Description, "Unable to retrieve tracking information")
}

func TestGetTrackingInfoNormalizesUpstreamPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v3/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok_abc"}`))
	})
	mux.HandleFunc("/tracking/v3/tracking/9400333333", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok_abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"trackingInfo": {
				"summary": {
					"status": "Delivered",
					"statusCategory": "DELIVERED",
					"expectedDeliveryDate": "2026-08-27"
				},
				"events": [
					{
						"eventDate": "2026-08-27",
						"eventTime": "14:05:00",
						"eventType": "Delivered",
						"eventDescription": "Delivered, In/At Mailbox",
						"eventCity": "DENVER",
						"eventState": "CO",
						"eventZIP": "80202",
						"facility": "Denver Post Office"
					}
				]
			}
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewUSPSClient(&config.USPS{
		Enabled:      true,
		BaseApiURL:   srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
	}, discardLogger())

	info := c.GetTrackingInfo(context.Background(), "9400333333")
	require.NotNil(t, info)
	assert.Equal(t, "Delivered", info.Status)
	assert.Equal(t, "DELIVERED", info.StatusCode)
	require.NotNil(t, info.ExpectedDelivery)
	assert.Equal(t, "2026-08-27", *info.ExpectedDelivery)
	require.Len(t, info.Events, 1)
	require.NotNil(t, info.Events[0].Location)
	assert.Equal(t, "DENVER, CO 80202", *info.Events[0].Location)
	require.NotNil(t, info.Events[0].Facility)
	assert.Equal(t, "Denver Post Office", *info.Events[0].Facility)
}
