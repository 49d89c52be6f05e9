package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/pagination"
)

// walkPages reads GET /items page by page until has_more is false and checks
// every page's metadata. It returns the IDs seen.
func walkPages(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	var offset uint64
	for {
		q := url.Values{}
		q.Set(pagination.ParamLimit, strconv.FormatUint(config.PageSize, 10))
		q.Set(pagination.ParamOffset, strconv.FormatUint(offset, 10))

		var page pagination.Response[Item]
		if err := client.getJSON(ctx, "/items?"+q.Encode(), &page); err != nil {
			return nil, fmt.Errorf("page at offset %d: %w", offset, err)
		}
		stats.PagesRead++

		if err := checkPage(page, offset, config.PageSize); err != nil {
			return nil, err
		}
		for _, it := range page.Data {
			if _, dup := seen[it.ID]; dup {
				return nil, fmt.Errorf("item %s listed twice", it.ID)
			}
			seen[it.ID] = struct{}{}
		}
		stats.ItemsListed += len(page.Data)

		if !page.HasMore {
			return seen, nil
		}
		if len(page.Data) == 0 {
			return nil, fmt.Errorf("empty page at offset %d reports has_more", offset)
		}
		offset += uint64(len(page.Data))
	}
}

// checkPage verifies the metadata of a single page.
func checkPage(page pagination.Response[Item], offset, pageSize uint64) error {
	n := uint64(len(page.Data))
	switch {
	case page.Offset != offset:
		return fmt.Errorf("offset echoed as %d, requested %d", page.Offset, offset)
	case page.Limit == nil:
		return fmt.Errorf("page at offset %d omits limit", offset)
	case *page.Limit > pageSize:
		return fmt.Errorf("limit %d exceeds requested %d", *page.Limit, pageSize)
	case n > *page.Limit:
		return fmt.Errorf("page holds %d items, limit is %d", n, *page.Limit)
	case page.HasMore != (offset+n < page.Total):
		return fmt.Errorf("has_more=%t but offset %d + %d items vs total %d", page.HasMore, offset, n, page.Total)
	}
	return nil
}

// verifyCreated checks that every created ID was listed.
func verifyCreated(created []string, listed map[string]struct{}) error {
	for _, id := range created {
		if _, ok := listed[id]; !ok {
			return fmt.Errorf("created item %s missing from listing", id)
		}
	}
	return nil
}

// errorCase is one request whose error response is checked.
type errorCase struct {
	name        string
	status      int
	label       string
	withDetails bool
	call        func(ctx context.Context, c *HTTPClient) error
}

func errorCases(existingName string) []errorCase {
	return []errorCase{
		{
			name: "unknown item", status: http.StatusNotFound, label: "Not Found", withDetails: true,
			call: func(ctx context.Context, c *HTTPClient) error {
				return c.getJSON(ctx, "/items/"+uuid.NewString(), nil)
			},
		},
		{
			name: "malformed limit", status: http.StatusBadRequest, label: "Bad Request", withDetails: true,
			call: func(ctx context.Context, c *HTTPClient) error {
				return c.getJSON(ctx, "/items?limit=many", nil)
			},
		},
		{
			name: "empty name", status: http.StatusUnprocessableEntity, label: "Validation Error", withDetails: true,
			call: func(ctx context.Context, c *HTTPClient) error {
				return c.postJSON(ctx, "/items", createRequest{Name: " "}, nil)
			},
		},
		{
			name: "duplicate name", status: http.StatusConflict, label: "Conflict", withDetails: true,
			call: func(ctx context.Context, c *HTTPClient) error {
				return c.postJSON(ctx, "/items", createRequest{Name: existingName}, nil)
			},
		},
	}
}

// verifyErrorContract checks status, label and details presence for a set of
// known failing requests.
func verifyErrorContract(ctx context.Context, client *HTTPClient, existingName string, stats *Stats) error {
	for _, tc := range errorCases(existingName) {
		err := tc.call(ctx, client)
		var rerr *ResponseError
		if !errors.As(err, &rerr) {
			return fmt.Errorf("%s: expected an error response, got %v", tc.name, err)
		}
		if err := checkErrorResponse(rerr, tc.status, tc.label, tc.withDetails); err != nil {
			return fmt.Errorf("%s: %w", tc.name, err)
		}
		stats.ContractChecks++
		logger.Get().Debug(ctx, "error contract verified", logger.String("case", tc.name))
	}
	return nil
}

func checkErrorResponse(rerr *ResponseError, status int, label string, withDetails bool) error {
	switch {
	case rerr.Status != status:
		return fmt.Errorf("status %d, want %d", rerr.Status, status)
	case rerr.Body.Error != label:
		return fmt.Errorf("label %q, want %q", rerr.Body.Error, label)
	case rerr.Body.HasDetails() != withDetails:
		return fmt.Errorf("details present=%t, want %t", rerr.Body.HasDetails(), withDetails)
	case rerr.Status == apierror.InternalKind.StatusCode() && rerr.Body.HasDetails():
		return errors.New("internal error leaked details")
	}
	return nil
}
