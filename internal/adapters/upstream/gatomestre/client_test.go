package gatomestre_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/adapters/upstream/gatomestre"
)

func TestMetrics(t *testing.T) {
	Convey("Given the valuation feed client", t, func() {
		Convey("When no credential is configured", func() {
			client := gatomestre.NewClient("http://example.invalid", "")
			_, err := client.Metrics(context.Background())

			Convey("Then it should refuse without touching the network", func() {
				So(errors.Is(err, gatomestre.ErrNoCredential), ShouldBeTrue)
			})
		})

		Convey("When no URL is configured", func() {
			client := gatomestre.NewClient("", "token")
			_, err := client.Metrics(context.Background())
			So(errors.Is(err, gatomestre.ErrNoCredential), ShouldBeTrue)
		})

		Convey("When the credential is valid", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer token" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				_, _ = w.Write([]byte(`{
					"100": {"minimo_para_valorizar": 2.14},
					"200": {"minimo_para_valorizar": 7.9},
					"300": {}
				}`))
			}))
			defer srv.Close()

			client := gatomestre.NewClient(srv.URL, "token")
			m, err := client.Metrics(context.Background())
			So(err, ShouldBeNil)

			Convey("Then metrics should be keyed by record id", func() {
				So(m, ShouldHaveLength, 2)
				So(m["100"], ShouldEqual, 2.14)
				So(m["200"], ShouldEqual, 7.9)
			})

			Convey("And entries without the metric should be dropped", func() {
				_, ok := m["300"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the credential expired", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			client := gatomestre.NewClient(srv.URL, "stale")
			_, err := client.Metrics(context.Background())
			So(errors.Is(err, gatomestre.ErrCredentialExpired), ShouldBeTrue)
		})

		Convey("When access is forbidden", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer srv.Close()

			client := gatomestre.NewClient(srv.URL, "stale")
			_, err := client.Metrics(context.Background())
			So(errors.Is(err, gatomestre.ErrCredentialExpired), ShouldBeTrue)
		})

		Convey("When the upstream fails outright", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			client := gatomestre.NewClient(srv.URL, "token")
			_, err := client.Metrics(context.Background())
			So(errors.Is(err, gatomestre.ErrUpstream), ShouldBeTrue)
		})

		Convey("When the body is not JSON", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			client := gatomestre.NewClient(srv.URL, "token")
			_, err := client.Metrics(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
