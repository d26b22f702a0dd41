package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/okian/tudu/internal/adapters/http/api"
	"github.com/okian/tudu/internal/adapters/http/swagger"
	app "github.com/okian/tudu/internal/app"
	"github.com/okian/tudu/internal/config"
	"github.com/okian/tudu/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("TUDU_ADDR", ":8080")
			_ = os.Setenv("TUDU_JOURNAL_SIZE", "512")
			_ = os.Setenv("TUDU_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("TUDU_ADDR")
				_ = os.Unsetenv("TUDU_JOURNAL_SIZE")
				_ = os.Unsetenv("TUDU_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.JournalSize, convey.ShouldEqual, 512)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When wiring the full HTTP surface", func() {
			ctx := context.Background()
			svc := app.New(
				app.WithWorkerCount(1),
				app.WithSeed(app.DemoTodos()),
			)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			server := api.NewServer(svc, svc, 100, 3)
			server.Register(ctx, mux)

			convey.Convey("Then the seeded records are served end to end", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todo/1", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "Buy groceries")
			})

			convey.Convey("Then the docs routes answer", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then health and stats answer", func() {
				for _, path := range []string{"/healthz", "/stats", "/metrics"} {
					rec := httptest.NewRecorder()
					mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
					convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})
	})
}
