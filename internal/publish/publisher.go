// Package publish pushes newly created articles to the syndication
// endpoints listed in the article's targetSites. Delivery is best
// effort: a failing target is logged and skipped, never blocking the
// create response.
package publish

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tintuc/newsapi/internal/logger"
	"github.com/tintuc/newsapi/internal/models"
)

type Publisher struct {
	client *resty.Client
}

func NewPublisher(timeout time.Duration) *Publisher {
	return &Publisher{
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(3).
			SetRetryWaitTime(2 * time.Second).
			SetRetryMaxWaitTime(10 * time.Second),
	}
}

// PublishTo posts the article to one target site.
func (p *Publisher) PublishTo(ctx context.Context, target string, article *models.Article) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(article).
		Post(target)

	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", target, err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), target)
	}
	return nil
}

// PublishAll concurrently delivers the article to every target site and
// logs per-target failures.
func (p *Publisher) PublishAll(ctx context.Context, article *models.Article) {
	if len(article.TargetSites) == 0 {
		return
	}

	done := make(chan struct{}, len(article.TargetSites))
	for _, target := range article.TargetSites {
		go func(t string) {
			defer func() { done <- struct{}{} }()
			if err := p.PublishTo(ctx, t, article); err != nil {
				logger.Get().Error().
					Err(err).
					Str("target", t).
					Str("slug", article.SlugID).
					Msg("Error publishing article to target site")
				return
			}
			logger.Get().Info().
				Str("target", t).
				Str("slug", article.SlugID).
				Msg("Published article to target site")
		}(target)
	}

	for range article.TargetSites {
		<-done
	}
}
