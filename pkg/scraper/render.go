package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

type RendererConfig struct {
	UserAgent string
	Timeout   time.Duration
	// Settle is how long to wait after body is ready so client-side
	// rendering can fill in product configurations.
	Settle   time.Duration
	Headless bool
	OnFetch  func(url string)
}

// Renderer loads pages in headless Chrome and reads the rendered DOM.
type Renderer struct {
	config RendererConfig
}

func NewRenderer(config RendererConfig) *Renderer {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.Settle == 0 {
		config.Settle = 3 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	return &Renderer{config: config}
}

func (r *Renderer) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := checkURL(pageURL); err != nil {
		return "", err
	}

	if r.config.OnFetch != nil {
		r.config.OnFetch(pageURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.config.UserAgent),
		chromedp.Flag("headless", r.config.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.config.Timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.config.Settle),
		chromedp.InnerHTML("body", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}
	return html, nil
}
