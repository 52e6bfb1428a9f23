package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/srgjo27/staybook/internal/core/domain"
)

// StatusError is a non-2xx answer from the bookings API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bookings api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("bookings api returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers test conflicts and missing bookings with errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return domain.ErrDatesUnavailable
	case http.StatusNotFound:
		return domain.ErrBookingNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidBooking
	}
	return nil
}

// Client talks to a json-server style bookings collection.
type Client struct {
	HTTP    *http.Client
	BaseURL *url.URL
	Logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bookings api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid bookings api url %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: u,
		Logger:  logger,
	}, nil
}

// List fetches every booking, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "bookings?_sort=createdAt&_order=desc", nil, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (c *Client) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	var created domain.Booking
	if err := c.do(ctx, http.MethodPost, "bookings", booking, &created); err != nil {
		return domain.Booking{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	if !booking.IsPersisted() {
		return domain.Booking{}, fmt.Errorf("%w: update needs an id", domain.ErrInvalidBooking)
	}
	var updated domain.Booking
	if err := c.do(ctx, http.MethodPut, bookingPath(booking.ID), booking, &updated); err != nil {
		return domain.Booking{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, bookingPath(id), nil, nil)
}

func bookingPath(id int64) string {
	return "bookings/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return err
	}
	endpoint := c.BaseURL.ResolveReference(ref)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(request)
	if err != nil {
		c.Logger.Error("bookings api request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		if !errors.Is(statusErr, domain.ErrDatesUnavailable) {
			c.Logger.Warn("bookings api returned error", "method", method, "path", path, "status", resp.StatusCode)
		}
		return statusErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode bookings api response: %w", err)
	}
	return nil
}

// errorMessage prefers the {"error": "..."} body written by the server.
func errorMessage(r io.Reader) string {
	snippet, _ := io.ReadAll(io.LimitReader(r, 512))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(snippet, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(snippet))
}
