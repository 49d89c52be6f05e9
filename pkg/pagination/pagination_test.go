package pagination_test

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/metrics"
	"github.com/okian/httpkit/pkg/pagination"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given three items out of ten", t, func() {
		Convey("When the page starts at offset 0", func() {
			resp := pagination.New([]int{1, 2, 3}, 10, pagination.Limit(3), 0)

			Convey("Then more results should be reported", func() {
				So(resp.HasMore, ShouldBeTrue)
				So(resp.Total, ShouldEqual, uint64(10))
				So(*resp.Limit, ShouldEqual, uint64(3))
			})
		})

		Convey("When the page starts at offset 7", func() {
			resp := pagination.New([]int{8, 9, 10}, 10, pagination.Limit(3), 7)

			Convey("Then no more results should be reported", func() {
				So(resp.HasMore, ShouldBeFalse)
			})
		})
	})

	Convey("Given arbitrary totals, offsets and lengths", t, func() {
		Convey("Then HasMore should equal offset+len < total", func() {
			for total := uint64(0); total <= 6; total++ {
				for offset := uint64(0); offset <= 6; offset++ {
					for n := 0; n <= 4; n++ {
						resp := pagination.New(make([]int, n), total, nil, offset)
						So(resp.HasMore, ShouldEqual, offset+uint64(n) < total)
					}
				}
			}
		})
	})

	Convey("Given an offset near the top of the integer range", t, func() {
		resp := pagination.New([]int{1, 2}, math.MaxUint64, nil, math.MaxUint64-1)

		Convey("Then the sum should saturate instead of wrapping", func() {
			So(resp.HasMore, ShouldBeFalse)
		})
	})

	Convey("Given a nil slice", t, func() {
		resp := pagination.New[string](nil, 0, nil, 0)
		b, err := json.Marshal(resp)

		Convey("Then data should be encoded as an empty array", func() {
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"data":[],"total":0,"offset":0,"has_more":false}`)
		})
	})
}

func TestSinglePage(t *testing.T) {
	Convey("Given a complete result set", t, func() {
		resp := pagination.SinglePage([]int{1, 2, 3})

		Convey("Then total should equal the length and there is nothing more", func() {
			So(resp.Total, ShouldEqual, uint64(3))
			So(resp.HasMore, ShouldBeFalse)
			So(resp.Offset, ShouldEqual, uint64(0))
			So(resp.Limit, ShouldBeNil)
		})
	})
}

func TestMap(t *testing.T) {
	Convey("Given a single page of integers", t, func() {
		resp := pagination.SinglePage([]int{1, 2, 3})

		Convey("When doubling every item", func() {
			mapped := pagination.Map(resp, func(x int) int { return x * 2 })

			Convey("Then order and metadata should be preserved", func() {
				So(mapped.Data, ShouldResemble, []int{2, 4, 6})
				So(mapped.Total, ShouldEqual, resp.Total)
				So(mapped.HasMore, ShouldEqual, resp.HasMore)
			})
		})
	})

	Convey("Given a partial page", t, func() {
		resp := pagination.New([]int{4, 5}, 20, pagination.Limit(2), 3)

		Convey("When converting to strings", func() {
			mapped := pagination.Map(resp, strconv.Itoa)

			Convey("Then limit, offset and has_more should be unchanged", func() {
				So(mapped.Data, ShouldResemble, []string{"4", "5"})
				So(*mapped.Limit, ShouldEqual, uint64(2))
				So(mapped.Offset, ShouldEqual, uint64(3))
				So(mapped.HasMore, ShouldBeTrue)
			})
		})
	})
}

func TestResponseEncoding(t *testing.T) {
	Convey("Given a page with and without a limit", t, func() {
		withLimit, err := json.Marshal(pagination.New([]string{"a"}, 5, pagination.Limit(1), 0))
		So(err, ShouldBeNil)
		withoutLimit, err := json.Marshal(pagination.SinglePage([]string{"a"}))
		So(err, ShouldBeNil)

		Convey("Then the limit key should only be present when set", func() {
			So(string(withLimit), ShouldEqual, `{"data":["a"],"total":5,"limit":1,"offset":0,"has_more":true}`)
			So(string(withoutLimit), ShouldNotContainSubstring, "limit")
		})
	})
}

func TestQuery(t *testing.T) {
	Convey("Given an empty query", t, func() {
		q := pagination.Query{}

		Convey("Then defaults should apply", func() {
			So(q.EffectiveLimit(100), ShouldEqual, uint64(100))
			So(q.EffectiveOffset(), ShouldEqual, uint64(0))
		})
	})

	Convey("Given a query above the maximum", t, func() {
		q := pagination.Query{Limit: pagination.Limit(500), Offset: pagination.Limit(10)}

		Convey("Then the limit should be clamped down", func() {
			So(q.EffectiveLimit(100), ShouldEqual, uint64(100))
			So(q.EffectiveOffset(), ShouldEqual, uint64(10))
		})
	})

	Convey("Given a query below the maximum", t, func() {
		q := pagination.Query{Limit: pagination.Limit(10)}

		Convey("Then the limit should be kept and never raised", func() {
			So(q.EffectiveLimit(100), ShouldEqual, uint64(10))
		})
	})
}

func recorded() (clamped float64, pages uint64) {
	families, _ := metrics.GetRegistry().Gather()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "httpkit_pagination_limits_clamped_total":
				clamped = m.GetCounter().GetValue()
			case "httpkit_pagination_page_size":
				pages = m.GetHistogram().GetSampleCount()
			}
		}
	}
	return clamped, pages
}

func TestConstructorsLeaveMetricsUntouched(t *testing.T) {
	Convey("Given the process metrics registry", t, func() {
		clamped, pages := recorded()

		Convey("When building pages and clamping limits", func() {
			_ = pagination.New([]int{1, 2}, 10, pagination.Limit(2), 0)
			_ = pagination.Query{Limit: pagination.Limit(500)}.EffectiveLimit(10)

			Convey("Then nothing should be recorded", func() {
				c, p := recorded()
				So(c, ShouldEqual, clamped)
				So(p, ShouldEqual, pages)
			})
		})
	})
}

func TestParseQuery(t *testing.T) {
	Convey("Given well-formed query values", t, func() {
		q, err := pagination.ParseQuery(url.Values{"limit": {"25"}, "offset": {" 50 "}})

		Convey("Then both values should be parsed", func() {
			So(err, ShouldBeNil)
			So(*q.Limit, ShouldEqual, uint64(25))
			So(*q.Offset, ShouldEqual, uint64(50))
		})
	})

	Convey("Given no query values", t, func() {
		q, err := pagination.ParseQuery(url.Values{})

		Convey("Then both values should be absent", func() {
			So(err, ShouldBeNil)
			So(q.Limit, ShouldBeNil)
			So(q.Offset, ShouldBeNil)
		})
	})

	Convey("Given malformed values", t, func() {
		for _, raw := range []string{"-1", "ten", "1.5"} {
			_, err := pagination.ParseQuery(url.Values{"offset": {raw}})
			So(err, ShouldNotBeNil)
			So(err.Kind, ShouldEqual, apierror.BadRequestKind)
			So(err.Message, ShouldEqual, "offset must be a non-negative integer")
		}
	})
}
