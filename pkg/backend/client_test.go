package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicehub/internal/data/entity"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, zap.NewNop())
}

func TestListServicesDecodesPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/service" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("catalog call sent Authorization %q", got)
		}
		w.Write([]byte(`[{"id":"s1","name":"Cleaning","price":150.5,"status":"active","tags":["home"]}]`))
	})

	services, err := c.ListServices(context.Background())
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(services) != 1 || services[0].ID != "s1" {
		t.Fatalf("unexpected services %+v", services)
	}
	if services[0].Price.String() != "150.5" {
		t.Fatalf("price = %s, want 150.5", services[0].Price)
	}
}

func TestListCategoriesPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ServiceCategory" {
			t.Errorf("path = %s, want /ServiceCategory", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"c1","name":"Home"}]`))
	})

	categories, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Home" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("forbidden\n"))
	})

	err := c.ApproveUser(context.Background(), "tok", "u1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Body != "forbidden" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
	if apiErr.Path != "/user/u1/approve" {
		t.Fatalf("path = %q", apiErr.Path)
	}
}

func TestRejectUserForwardsTokenAndReason(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/user/u1/reject" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Reason != "incomplete documents" {
			t.Errorf("reason = %q", body.Reason)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.RejectUser(context.Background(), "tok", "u1", "incomplete documents"); err != nil {
		t.Fatalf("RejectUser() error = %v", err)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path != "/booking/b1/status" || body.Status != "confirmed" {
			t.Errorf("unexpected request %s %+v", r.URL.Path, body)
		}
		w.Write([]byte(`{"id":"b1","status":"confirmed","amount":"120"}`))
	})

	booking, err := c.UpdateBookingStatus(context.Background(), "tok", "b1", entity.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateBookingStatus() error = %v", err)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		t.Fatalf("status = %s", booking.Status)
	}
}

func TestContextCancellationStopsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListServices(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
