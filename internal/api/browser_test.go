package api

import (
	"context"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-console/config"
	"schedule-console/internal/backend"
	"schedule-console/internal/console"
	"schedule-console/internal/jobs"
	"schedule-console/internal/model"
)

func findChrome() string {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func TestPanelInBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	chrome := findChrome()
	if chrome == "" {
		t.Skip("no Chrome or Chromium binary found")
	}

	svc := &fakeService{}
	svc.assignments = []model.Assignment{{Date: "2025-01-02", ShiftType: "reg-uh", Site: "UH", ProviderID: "p2"}}
	backendSrv := httptest.NewServer(svc)
	defer backendSrv.Close()

	c := console.New(backend.NewClient(&config.BackendConfig{BaseURL: backendSrv.URL}),
		console.Options{Range: model.DateRange{Start: "2025-01-01", End: "2025-01-07"}})

	poolCtx, stopPool := context.WithCancel(context.Background())
	pool := jobs.NewWorkerPool(1, c)
	pool.Start(poolCtx)
	defer func() {
		stopPool()
		pool.Wait()
	}()

	router, err := NewRouter(&config.ServerConfig{RateLimitPerSec: 50, RateLimitBurst: 50, CacheTTLSeconds: 60},
		NewHandler(c, pool, nil, 10, backendSrv.URL))
	require.NoError(t, err)
	ts := httptest.NewServer(router)
	defer ts.Close()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chrome),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	t.Run("SeedDemoData", func(t *testing.T) {
		err := chromedp.Run(ctx,
			chromedp.Navigate(ts.URL+"/"),
			chromedp.WaitVisible(`button.seed`, chromedp.ByQuery),
			chromedp.Click(`button.seed`, chromedp.ByQuery),
			chromedp.WaitVisible(`#controls`, chromedp.ByQuery),
		)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(c.Snapshot().Providers) == 2
		}, 10*time.Second, 50*time.Millisecond)

		var providers string
		err = chromedp.Run(ctx,
			chromedp.Navigate(ts.URL+"/"),
			chromedp.Text(`#providers`, &providers, chromedp.ByQuery),
		)
		require.NoError(t, err)
		assert.Contains(t, providers, "Dr. Alpha")
		assert.Contains(t, providers, "Dr. Beta")
	})

	t.Run("GenerateSchedule", func(t *testing.T) {
		err := chromedp.Run(ctx,
			chromedp.Navigate(ts.URL+"/"),
			chromedp.WaitVisible(`#generate`, chromedp.ByQuery),
			chromedp.Click(`#generate`, chromedp.ByQuery),
			chromedp.WaitVisible(`#controls`, chromedp.ByQuery),
		)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			v := c.Snapshot()
			return !v.Loading && len(v.Assignments) == 1
		}, 10*time.Second, 50*time.Millisecond)

		var button, assignments string
		err = chromedp.Run(ctx,
			chromedp.Navigate(ts.URL+"/"),
			chromedp.Text(`#generate`, &button, chromedp.ByQuery),
			chromedp.Text(`#assignments`, &assignments, chromedp.ByQuery),
		)
		require.NoError(t, err)
		assert.Equal(t, "Generate schedule", button)
		assert.Contains(t, assignments, "1 items")
		assert.Contains(t, assignments, "Thu 02 Jan")
	})
}
