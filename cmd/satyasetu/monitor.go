// cmd/satyasetu/monitor.go
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

// Monitor polls RSS feeds and runs headline analyses on new items. Headlines
// skip the web verification stage so a polling cycle stays fast.
type Monitor struct {
	engine   *Engine
	store    *Store
	feeds    []Feed
	notify   func(record *AnalysisRecord)
	maxItems int
}

func NewMonitor(engine *Engine, store *Store, feeds []Feed, maxItems int, notify func(*AnalysisRecord)) *Monitor {
	return &Monitor{
		engine:   engine,
		store:    store,
		feeds:    feeds,
		notify:   notify,
		maxItems: maxItems,
	}
}

// Run fetches every feed concurrently and analyzes unseen headlines
func (m *Monitor) Run(ctx context.Context) {
	if len(m.feeds) == 0 {
		return
	}
	IncrementCounter(CounterMonitorRuns)
	started := time.Now()

	type feedItems struct {
		feed  Feed
		items []*gofeed.Item
	}
	results := make(chan feedItems, len(m.feeds))
	var wg sync.WaitGroup

	for _, feed := range m.feeds {
		wg.Add(1)
		go func(feed Feed) {
			defer wg.Done()
			items, err := fetchFeedItems(ctx, feed)
			if err != nil {
				Logger().Warning("feed %s: %v", feed.Name, err)
				return
			}
			results <- feedItems{feed: feed, items: items}
		}(feed)
	}
	wg.Wait()
	close(results)

	analyzed := 0
	for r := range results {
		count := 0
		for _, item := range r.items {
			if count >= m.maxItems {
				break
			}
			if m.store.HasSeen(item.Title) {
				continue
			}
			if err := m.analyzeItem(ctx, r.feed, item); err != nil {
				Logger().Warning("analyzing %q from %s: %v", item.Title, r.feed.Name, err)
				continue
			}
			count++
			analyzed++
		}
	}

	Logger().Info("monitor cycle done: %d feeds, %d new items analyzed in %s",
		len(m.feeds), analyzed, time.Since(started).Round(time.Millisecond))
}

func (m *Monitor) analyzeItem(ctx context.Context, feed Feed, item *gofeed.Item) error {
	req := &AnalyzeRequest{
		Title:         item.Title,
		Text:          item.Description,
		URL:           item.Link,
		SkipWebVerify: true,
	}
	result, err := m.engine.Analyze(ctx, req)
	if err != nil {
		return err
	}
	record, err := m.store.SaveAnalysis(item.Title, item.Link, feed.Name, result)
	if err != nil {
		return err
	}
	if m.notify != nil {
		m.notify(record)
	}
	if result.RiskLevel == RiskLevelHigh || result.RiskLevel == RiskLevelCritical {
		Logger().Warning("ALERT [%s] %q likelihood=%.2f impact=%.1f",
			result.RiskLevel, item.Title, result.MisinformationLikelihood, result.SocietalImpactScore)
	}
	return nil
}

func fetchFeedItems(ctx context.Context, feed Feed) ([]*gofeed.Item, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgentString
	parsed, err := parser.ParseURLWithContext(feed.URL, fetchCtx)
	if err != nil {
		return nil, NewMonitorError(ErrMonitorFetch, fmt.Sprintf("fetching %s", feed.URL), err)
	}
	return parsed.Items, nil
}
