package probe_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/laureates/internal/adapters/dataset"
	"github.com/okian/laureates/internal/adapters/http/api"
	service "github.com/okian/laureates/internal/app"
	"github.com/okian/laureates/internal/probe"
	. "github.com/smartystreets/goconvey/convey"
)

const fixture = "../adapters/dataset/testdata/laureates.csv"

func newDashboard(t *testing.T, csv string) *httptest.Server {
	t.Helper()
	var (
		store *dataset.Store
		err   error
	)
	if csv == "" {
		store, err = dataset.Load(context.Background(), fixture)
	} else {
		store, err = dataset.Read(context.Background(), strings.NewReader(csv))
	}
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := service.New(store)
	mux := http.NewServeMux()
	api.NewServer(svc, svc, nil).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a healthy dashboard", t, func() {
		srv := newDashboard(t, "")
		defer srv.Close()
		out := filepath.Join(t.TempDir(), "reports", "probe.json")

		Convey("When probing it", func() {
			report, err := probe.Run(context.Background(), probe.Config{
				BaseURL:    srv.URL,
				Workers:    3,
				Timeout:    5 * time.Second,
				OutputFile: out,
			})

			Convey("Then every check should pass", func() {
				So(err, ShouldBeNil)
				So(report.Violations, ShouldBeEmpty)
				So(report.Checks, ShouldEqual, 10+6)
				So(report.Requests, ShouldEqual, 1+1+20+6)
				So(report.NoData, ShouldEqual, 0)
				So(report.DatasetID, ShouldNotBeEmpty)
				So(report.RunID, ShouldNotBeEmpty)
			})

			Convey("And the report should be written", func() {
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var saved probe.Report
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(saved.RunID, ShouldEqual, report.RunID)
			})
		})
	})

	Convey("Given a dashboard without ages", t, func() {
		srv := newDashboard(t, "Year,Category,Birth_Date,Birth_Country,Death_Date\n1904,Peace,,Belgium,\n")
		defer srv.Close()

		Convey("Then selections should count as no data, not failures", func() {
			report, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL})
			So(err, ShouldBeNil)
			So(report.NoData, ShouldEqual, 6)
		})
	})

	Convey("Given a dashboard whose answers drift", t, func() {
		upstream := newDashboard(t, "")
		defer upstream.Close()
		var calls atomic.Int64
		drifting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp, err := http.Get(upstream.URL + r.URL.RequestURI())
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			defer func() { _ = resp.Body.Close() }()
			var body map[string]any
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if r.URL.Path == "/api/countries" {
				body["salt"] = calls.Add(1)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(resp.StatusCode)
			_ = json.NewEncoder(w).Encode(body)
		}))
		defer drifting.Close()

		Convey("Then the differing bodies should be reported", func() {
			report, err := probe.Run(context.Background(), probe.Config{BaseURL: drifting.URL})
			So(errors.Is(err, probe.ErrViolations), ShouldBeTrue)
			So(len(report.Violations), ShouldEqual, 10)
		})
	})

	Convey("Given nothing listening", t, func() {
		srv := newDashboard(t, "")
		url := srv.URL
		srv.Close()

		Convey("Then the run should fail the health check", func() {
			_, err := probe.Run(context.Background(), probe.Config{BaseURL: url, Timeout: time.Second})
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
