package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/okian/httpkit/internal/adapters/repository"
	service "github.com/okian/httpkit/internal/app"
	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/metrics"
	"github.com/okian/httpkit/pkg/pagination"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func counterValue(name string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func started(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with seed items", t, func() {
		ctx := context.Background()
		svc := started(service.WithSeedItems([]string{"alpha", "bravo", "Alpha"}))
		defer svc.Stop()

		Convey("Then duplicate seeds should be skipped", func() {
			So(svc.Count(ctx), ShouldEqual, 2)
		})

		Convey("When starting again", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it should be a no-op", func() {
				So(svc.Count(ctx), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a service with an invalid seed", t, func() {
		svc := service.New(service.WithSeedItems([]string{"  "}))

		Convey("Then Start should fail", func() {
			err := svc.Start(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "name must not be empty")
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then operations should report it as unavailable", func() {
			_, err := svc.GetItem(context.Background(), "x")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(service.ToAPIError(err).Kind, ShouldEqual, apierror.ServiceUnavailableKind)
		})
	})
}

func TestService_ListItems(t *testing.T) {
	Convey("Given a catalog of 25 items and a max page size of 10", t, func() {
		ctx := context.Background()
		names := make([]string, 25)
		for i := range names {
			names[i] = fmt.Sprintf("item-%02d", i)
		}
		svc := started(service.WithSeedItems(names), service.WithMaxPageLimit(10))
		defer svc.Stop()

		Convey("When no limit is supplied", func() {
			page, err := svc.ListItems(ctx, pagination.Query{})

			Convey("Then the maximum should be used", func() {
				So(err, ShouldBeNil)
				So(page.Data, ShouldHaveLength, 10)
				So(*page.Limit, ShouldEqual, uint64(10))
				So(page.Total, ShouldEqual, uint64(25))
				So(page.HasMore, ShouldBeTrue)
			})
		})

		Convey("When a limit above the maximum is supplied", func() {
			before := counterValue("httpkit_pagination_limits_clamped_total")
			page, err := svc.ListItems(ctx, pagination.Query{Limit: pagination.Limit(500)})

			Convey("Then it should be clamped and counted", func() {
				So(err, ShouldBeNil)
				So(*page.Limit, ShouldEqual, uint64(10))
				So(counterValue("httpkit_pagination_limits_clamped_total"), ShouldEqual, before+1)
			})
		})

		Convey("When a limit within the maximum is supplied", func() {
			before := counterValue("httpkit_pagination_limits_clamped_total")
			_, err := svc.ListItems(ctx, pagination.Query{Limit: pagination.Limit(10)})

			Convey("Then no clamp should be counted", func() {
				So(err, ShouldBeNil)
				So(counterValue("httpkit_pagination_limits_clamped_total"), ShouldEqual, before)
			})
		})

		Convey("When requesting the last page", func() {
			page, err := svc.ListItems(ctx, pagination.Query{
				Limit:  pagination.Limit(10),
				Offset: pagination.Limit(20),
			})

			Convey("Then it should be short and final", func() {
				So(err, ShouldBeNil)
				So(page.Data, ShouldHaveLength, 5)
				So(page.Data[0].Name, ShouldEqual, "item-20")
				So(page.Offset, ShouldEqual, uint64(20))
				So(page.HasMore, ShouldBeFalse)
			})
		})
	})

	Convey("Given a default page size", t, func() {
		svc := started(
			service.WithSeedItems([]string{"a", "b", "c", "d"}),
			service.WithDefaultPageLimit(3),
		)
		defer svc.Stop()

		Convey("Then it should apply only when limit is omitted", func() {
			page, err := svc.ListItems(context.Background(), pagination.Query{})
			So(err, ShouldBeNil)
			So(page.Data, ShouldHaveLength, 3)

			page, err = svc.ListItems(context.Background(), pagination.Query{Limit: pagination.Limit(4)})
			So(err, ShouldBeNil)
			So(page.Data, ShouldHaveLength, 4)
		})
	})
}

func TestService_CreateAndGet(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := started()
		defer svc.Stop()

		Convey("When creating an item", func() {
			it, err := svc.CreateItem(ctx, "  widget  ")

			Convey("Then it should be stored with a trimmed name", func() {
				So(err, ShouldBeNil)
				So(it.Name, ShouldEqual, "widget")

				got, err := svc.GetItem(ctx, it.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, it)
			})

			Convey("And creating it again should conflict", func() {
				_, err := svc.CreateItem(ctx, "WIDGET")
				So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
				So(service.ToAPIError(err).StatusCode(), ShouldEqual, http.StatusConflict)
			})
		})

		Convey("When creating an item with an empty name", func() {
			_, err := svc.CreateItem(ctx, "")

			Convey("Then it should be a validation error", func() {
				var invalid *service.InvalidItemError
				So(errors.As(err, &invalid), ShouldBeTrue)
				So(invalid.Field, ShouldEqual, "name")

				apiErr := service.ToAPIError(err)
				So(apiErr.Kind, ShouldEqual, apierror.ValidationErrorKind)
				So(*apiErr.Render().Details, ShouldEqual, "name must not be empty")
			})
		})

		Convey("When creating an item with an overlong name", func() {
			_, err := svc.CreateItem(ctx, strings.Repeat("x", 101))

			Convey("Then it should be a validation error", func() {
				So(service.ToAPIError(err).Kind, ShouldEqual, apierror.ValidationErrorKind)
			})
		})

		Convey("When getting an unknown item", func() {
			_, err := svc.GetItem(ctx, "nope")

			Convey("Then it should map to not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(service.ToAPIError(err).Kind, ShouldEqual, apierror.NotFoundKind)
			})
		})
	})
}

type flakyError struct{}

func (flakyError) Error() string       { return "backend hiccup" }
func (flakyError) IsRecoverable() bool { return true }

type slowError struct{}

func (slowError) Error() string   { return "backend slow" }
func (slowError) IsTimeout() bool { return true }

func TestMapError(t *testing.T) {
	Convey("Given errors from the store and the runtime", t, func() {
		cases := []struct {
			err  error
			kind apierror.Kind
		}{
			{fmt.Errorf("wrap: %w", repository.ErrNotFound), apierror.NotFoundKind},
			{repository.ErrDuplicate, apierror.ConflictKind},
			{context.DeadlineExceeded, apierror.ServiceUnavailableKind},
			{context.Canceled, apierror.ServiceUnavailableKind},
			{fmt.Errorf("list: %w", flakyError{}), apierror.ServiceUnavailableKind},
			{slowError{}, apierror.ServiceUnavailableKind},
			{errors.New("disk on fire"), apierror.InternalKind},
		}

		Convey("Then each should map to the expected kind", func() {
			for _, tc := range cases {
				So(service.ToAPIError(tc.err).Kind, ShouldEqual, tc.kind)
			}
		})

		Convey("Then unknown errors should not leak details", func() {
			out := service.ToAPIError(errors.New("disk on fire"))
			So(out.Render().Details, ShouldBeNil)
			So(out.Cause, ShouldNotBeNil)
		})
	})
}
