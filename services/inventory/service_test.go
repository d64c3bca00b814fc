package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeVendor serves the list and detail endpoints the way the real
// API does, with configurable per-item failures.
type fakeVendor struct {
	items []billbook.ItemSummary
	// detail requests for these ids always return 503
	failIds map[string]bool
	// detail requests for these ids return 401
	authFailIds map[string]bool

	detailRequests map[string]int
	listRequests   int
}

func newFakeVendor(count int) *fakeVendor {
	v := &fakeVendor{
		failIds:        map[string]bool{},
		authFailIds:    map[string]bool{},
		detailRequests: map[string]int{},
	}
	for i := 0; i < count; i++ {
		v.items = append(v.items, billbook.ItemSummary{
			Id:               fmt.Sprintf("item-%02d", i),
			Name:             fmt.Sprintf("Item %d", i),
			ItemCategoryName: "Rings",
			Quantity:         float64(5 + i),
			SellingPrice:     float64(100 * (i + 1)),
		})
	}
	return v
}

func (v *fakeVendor) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/items" {
			v.listRequests++
			perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			start := (page - 1) * perPage
			end := start + perPage
			if start > len(v.items) {
				start = len(v.items)
			}
			if end > len(v.items) {
				end = len(v.items)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"total_count":     len(v.items),
				"inventory_items": v.items[start:end],
			})
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/items/")
		v.detailRequests[id]++
		if v.authFailIds[id] {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if v.failIds[id] {
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
			return
		}
		for _, item := range v.items {
			if item.Id != id {
				continue
			}
			json.NewEncoder(w).Encode(map[string]any{
				"inventory_item": billbook.ItemDetail{
					ItemSummary:   item,
					PurchasePrice: item.SellingPrice * 0.7,
					GstPercentage: 3,
					Description:   "detail for " + item.Id,
					SalesInfo:     billbook.PriceInfo{PricePerUnit: item.SellingPrice},
				},
			})
			return
		}
		http.NotFound(w, r)
	})
}

func setupService(t *testing.T, vendor *fakeVendor, progress ProgressFunc) (*Service, func()) {
	cleanup := telemetry.SetupForTesting(t, "test:services/inventory")

	server := httptest.NewServer(vendor.handler())

	session, err := billbook.NewSession("Bearer test-token", "gbuuid=test", "company-test")
	require.NoError(t, err)
	client, err := billbook.NewClient(billbook.ClientOptions{
		Session:            session,
		BaseUrl:            server.URL,
		MinRequestInterval: time.Microsecond,
		RetryBaseWait:      time.Millisecond,
		RetryMaxWait:       time.Millisecond * 10,
	})
	require.NoError(t, err)

	service := NewService(client, Options{Progress: progress})
	return service, func() {
		server.Close()
		cleanup()
	}
}

func TestRunHappyPath(t *testing.T) {
	vendor := newFakeVendor(10)

	var lastProcessed, lastTotal, calls int
	service, teardown := setupService(t, vendor, func(processed, total int) {
		lastProcessed, lastTotal = processed, total
		calls++
	})
	defer teardown()

	require.Equal(t, StateIdle, service.State())

	result, err := service.Run(context.Background(), Criteria{})
	require.NoError(t, err)
	require.Equal(t, StateDone, service.State())

	require.Len(t, result.Items, 10)
	require.Empty(t, result.FailedIds)
	require.Equal(t, 10, result.TotalAttempted)
	require.Equal(t, 10, calls)
	require.Equal(t, 10, lastProcessed)
	require.Equal(t, 10, lastTotal)

	// detail fields landed on the merged records
	require.Equal(t, "detail for item-00", result.Items[0].Description)
	require.Equal(t, float64(3), result.Items[0].GstPercentage)
	require.False(t, result.Items[0].Degraded)
}

func TestRunPartialDetailFailures(t *testing.T) {
	vendor := newFakeVendor(10)
	vendor.failIds["item-02"] = true
	vendor.failIds["item-07"] = true

	service, teardown := setupService(t, vendor, nil)
	defer teardown()

	result, err := service.Run(context.Background(), Criteria{})
	require.NoError(t, err)
	require.Equal(t, StateDone, service.State())

	require.Len(t, result.Items, 10)
	require.Equal(t, []string{"item-02", "item-07"}, result.FailedIds)
	require.Equal(t, 10, result.TotalAttempted)

	for _, item := range result.Items {
		if item.Id == "item-02" || item.Id == "item-07" {
			require.True(t, item.Degraded)
			require.Empty(t, item.Description, "degraded records carry summary fields only")
			require.Zero(t, item.PurchasePrice)
		} else {
			require.False(t, item.Degraded)
			require.NotEmpty(t, item.Description)
		}
	}
}

func TestRunAuthFailureAbortsEnrichment(t *testing.T) {
	vendor := newFakeVendor(10)
	vendor.authFailIds["item-04"] = true

	service, teardown := setupService(t, vendor, nil)
	defer teardown()

	_, err := service.Run(context.Background(), Criteria{})

	var authErr *billbook.AuthenticationError
	require.True(t, errors.As(err, &authErr), "expected AuthenticationError, got %v", err)
	require.Equal(t, StateFailed, service.State())

	// items before the failure were fetched, items after were not
	for i := 0; i < 4; i++ {
		require.Equal(t, 1, vendor.detailRequests[fmt.Sprintf("item-%02d", i)])
	}
	for i := 5; i < 10; i++ {
		require.Zero(t, vendor.detailRequests[fmt.Sprintf("item-%02d", i)],
			"items after an auth failure must never be requested")
	}
}

func TestRunListFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	session, err := billbook.NewSession("Bearer test-token", "gbuuid=test", "company-test")
	require.NoError(t, err)
	client, err := billbook.NewClient(billbook.ClientOptions{
		Session:            session,
		BaseUrl:            server.URL,
		MinRequestInterval: time.Microsecond,
		RetryBaseWait:      time.Millisecond,
		RetryMaxWait:       time.Millisecond * 10,
	})
	require.NoError(t, err)

	service := NewService(client, Options{})
	_, err = service.Run(context.Background(), Criteria{})

	var transient *billbook.TransientFetchError
	require.True(t, errors.As(err, &transient))
	require.Equal(t, StateFailed, service.State())
}

func TestRunInvalidCriteriaFailsBeforeNetwork(t *testing.T) {
	vendor := newFakeVendor(3)
	service, teardown := setupService(t, vendor, nil)
	defer teardown()

	_, err := service.Run(context.Background(), Criteria{
		MinStock: f64ptr(10),
		MaxStock: f64ptr(1),
	})

	var filterErr *FilterError
	require.True(t, errors.As(err, &filterErr))
	require.Equal(t, StateFailed, service.State())
	require.Zero(t, vendor.listRequests, "no request may be issued for a malformed filter")
}

func TestRunAppliesFilter(t *testing.T) {
	vendor := newFakeVendor(10)
	service, teardown := setupService(t, vendor, nil)
	defer teardown()

	// selling prices are 100..1000
	result, err := service.Run(context.Background(), Criteria{
		MinPrice: f64ptr(300),
		MaxPrice: f64ptr(500),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	// attempts count the whole catalog, not the filtered view
	require.Equal(t, 10, result.TotalAttempted)
}

func TestRunSuggestsCategoryOnEmptyMatch(t *testing.T) {
	vendor := newFakeVendor(5)
	service, teardown := setupService(t, vendor, nil)
	defer teardown()

	result, err := service.Run(context.Background(), Criteria{
		Category: strptr("rings"),
	})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Equal(t, "Rings", result.CategorySuggestion)
}

func TestRunIsIdempotent(t *testing.T) {
	run := func() *FetchResult {
		vendor := newFakeVendor(10)
		vendor.failIds["item-03"] = true
		service, teardown := setupService(t, vendor, nil)
		defer teardown()

		result, err := service.Run(context.Background(), Criteria{})
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	require.Empty(t, cmp.Diff(first, second))
}
