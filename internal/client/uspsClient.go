package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"floral-commerce/internal/config"
)

// TrackingInfo is the normalized shipment-tracking payload handed to the
// admin surface regardless of what the carrier returns.
type TrackingInfo struct {
	TrackingNumber   string          `json:"tracking_number"`
	Status           string          `json:"status"`
	StatusCode       string          `json:"status_code"`
	ExpectedDelivery *string         `json:"expected_delivery"`
	Events           []TrackingEvent `json:"events"`
}

type TrackingEvent struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Location    *string `json:"location"`
	Facility    *string `json:"facility"`
}

type TrackingClient interface {
	GetTrackingInfo(ctx context.Context, trackingNumber string) *TrackingInfo
}

type uspsClientImpl struct {
	httpClient   *http.Client
	baseApiURL   string
	clientID     string
	clientSecret string
	enabled      bool
	logger       *slog.Logger
}

func NewUSPSClient(uspsCfg *config.USPS, logger *slog.Logger) TrackingClient {
	return &uspsClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:   uspsCfg.BaseApiURL,
		clientID:     uspsCfg.ClientID,
		clientSecret: uspsCfg.ClientSecret,
		enabled:      uspsCfg.Enabled,
		logger:       logger,
	}
}

// GetTrackingInfo never fails: disabled environments get a fixed mock
// payload and upstream failures degrade to an ERROR status payload.
func (c *uspsClientImpl) GetTrackingInfo(ctx context.Context, trackingNumber string) *TrackingInfo {
	if !c.enabled {
		return mockTrackingInfo(trackingNumber)
	}

	info, err := c.fetchTracking(ctx, trackingNumber)
	if err != nil {
		c.logger.Error("usps tracking lookup failed",
			"tracking_number", trackingNumber,
			"error", err,
		)
		return errorTrackingInfo(trackingNumber)
	}

	return info
}

func (c *uspsClientImpl) getAccessToken(ctx context.Context) (string, error) {
	payload := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal token payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseApiURL+"/oauth2/v3/token",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("usps token error %d: %s", resp.StatusCode, string(b))
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return res.AccessToken, nil
}

func (c *uspsClientImpl) fetchTracking(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get usps access token: %w", err)
	}

	url := fmt.Sprintf("%s/tracking/v3/tracking/%s?expand=DETAIL", c.baseApiURL, trackingNumber)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("usps error %d: %s", resp.StatusCode, string(b))
	}

	var payload uspsTrackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode usps response: %w", err)
	}

	return normalizeUSPSResponse(trackingNumber, &payload), nil
}

type uspsTrackingResponse struct {
	TrackingInfo struct {
		Summary struct {
			Status           string `json:"status"`
			StatusCategory   string `json:"statusCategory"`
			ExpectedDelivery string `json:"expectedDeliveryDate"`
		} `json:"summary"`
		Events []struct {
			EventDate        string `json:"eventDate"`
			EventTime        string `json:"eventTime"`
			EventType        string `json:"eventType"`
			EventDescription string `json:"eventDescription"`
			EventCity        string `json:"eventCity"`
			EventState       string `json:"eventState"`
			EventZIP         string `json:"eventZIP"`
			Facility         string `json:"facility"`
		} `json:"events"`
	} `json:"trackingInfo"`
}

func normalizeUSPSResponse(trackingNumber string, payload *uspsTrackingResponse) *TrackingInfo {
	summary := payload.TrackingInfo.Summary

	info := &TrackingInfo{
		TrackingNumber: trackingNumber,
		Status:         summary.Status,
		StatusCode:     summary.StatusCategory,
	}
	if summary.ExpectedDelivery != "" {
		expected := summary.ExpectedDelivery
		info.ExpectedDelivery = &expected
	}

	for _, evt := range payload.TrackingInfo.Events {
		var location *string
		if evt.EventCity != "" {
			loc := fmt.Sprintf("%s, %s %s", evt.EventCity, evt.EventState, evt.EventZIP)
			location = &loc
		}
		var facility *string
		if evt.Facility != "" {
			f := evt.Facility
			facility = &f
		}

		info.Events = append(info.Events, TrackingEvent{
			Date:        evt.EventDate,
			Time:        evt.EventTime,
			Status:      evt.EventType,
			Description: evt.EventDescription,
			Location:    location,
			Facility:    facility,
		})
	}

	return info
}

func mockTrackingInfo(trackingNumber string) *TrackingInfo {
	base := time.Now().AddDate(0, 0, -3)
	expected := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	event := func(at time.Time, status, description, location, facility string) TrackingEvent {
		return TrackingEvent{
			Date:        at.Format("2006-01-02 15:04:05"),
			Time:        at.Format("15:04:05"),
			Status:      status,
			Description: description,
			Location:    &location,
			Facility:    &facility,
		}
	}

	return &TrackingInfo{
		TrackingNumber:   trackingNumber,
		Status:           "In Transit",
		StatusCode:       "IN_TRANSIT",
		ExpectedDelivery: &expected,
		Events: []TrackingEvent{
			event(base, "Shipping Label Created",
				"USPS in possession of item",
				"DENVER, CO 80202", "Denver Processing & Distribution Center"),
			event(base.AddDate(0, 0, 1), "In Transit",
				"Your item departed our facility in Denver, CO 80202 on its way to the destination",
				"DENVER, CO 80202", "Denver Processing & Distribution Center"),
			event(base.AddDate(0, 0, 2), "In Transit",
				"Your item arrived at our facility in Kansas City, MO 64144",
				"KANSAS CITY, MO 64144", "Kansas City Processing & Distribution Center"),
			event(time.Now().Add(-4*time.Hour), "Out for Delivery",
				"Out for delivery, expected delivery by end of day",
				"CHICAGO, IL 60601", "Chicago Post Office"),
		},
	}
}

func errorTrackingInfo(trackingNumber string) *TrackingInfo {
	now := time.Now()

	return &TrackingInfo{
		TrackingNumber: trackingNumber,
		Status:         "Error",
		StatusCode:     "ERROR",
		Events: []TrackingEvent{
			{
				Date:        now.Format("2006-01-02 15:04:05"),
				Time:        now.Format("15:04:05"),
				Status:      "Error",
				Description: "Unable to retrieve tracking information. Please verify tracking number or try again later.",
			},
		},
	}
}
