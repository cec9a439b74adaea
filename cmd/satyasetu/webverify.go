// cmd/satyasetu/webverify.go
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

const (
	searchEndpoint   = "https://html.duckduckgo.com/html/"
	scrapeWorkers    = 4
	minArticleChars  = 100
	maxArticleChars  = 3000
	maxSnippetChars  = 500
	minParagraphSize = 40

	searchTimeout = 8 * time.Second
)

// Domains that never yield a useful article page
var skipDomains = []string{
	"google.", "youtube.", "facebook.", "twitter.", "x.com", "instagram.",
	"reddit.", "wikipedia.", "amazon.", "flipkart.", "duckduckgo.",
	"bing.", "yahoo.", "linkedin.", "pinterest.", "tiktok.",
}

var denialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfalse\b`),
	regexp.MustCompile(`\bfake\b`),
	regexp.MustCompile(`\bhoax\b`),
	regexp.MustCompile(`\bmisleading\b`),
	regexp.MustCompile(`no evidence`),
	regexp.MustCompile(`no such`),
	regexp.MustCompile(`\bunverified\b`),
	regexp.MustCompile(`\bdebunked\b`),
	regexp.MustCompile(`not true`),
	regexp.MustCompile(`did not`),
	regexp.MustCompile(`\bmisinformation\b`),
}

var supportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bconfirmed\b`),
	regexp.MustCompile(`\bverified\b`),
	regexp.MustCompile(`\btrue\b`),
	regexp.MustCompile(`official(?:s)?\s+(?:\w+\s+){0,3}said`),
	regexp.MustCompile(`according to`),
	regexp.MustCompile(`\breported\b`),
	regexp.MustCompile(`\bannounced\b`),
}

var articleSelectors = []string{
	"article", "[itemprop='articleBody']", ".article-body", ".story-body",
	".entry-content", ".post-content", ".article-content", "#article-body",
	"main",
}

var boilerplateFragments = []string{
	"subscribe to our newsletter", "accept cookies", "cookie policy",
	"sign up for", "advertisement", "read more:", "also read",
	"click here", "follow us on",
}

var urlInTextPattern = regexp.MustCompile(`https?://\S+`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// WebVerifier searches the open web for independent coverage of a claim,
// scrapes the top results and classifies the consensus.
type WebVerifier struct {
	userAgent  string
	maxResults int
	timeout    time.Duration
	limiter    *rate.Limiter
	searchURL  string
}

func NewWebVerifier(userAgent string, maxResults int, timeout time.Duration) *WebVerifier {
	return &WebVerifier{
		userAgent:  userAgent,
		maxResults: maxResults,
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
		searchURL:  searchEndpoint,
	}
}

// Verify runs the full pipeline: two searches (the claim itself plus a
// "fact check" variant), scrape, relevance ranking and consensus. Per-URL
// failures are logged and skipped, never fatal.
func (w *WebVerifier) Verify(ctx context.Context, query string) (*WebVerificationResult, error) {
	result := &WebVerificationResult{
		Query:     query,
		Consensus: ConsensusInsufficient,
	}

	urls, err := w.searchMerged(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		result.Summary = "No web sources found for this claim"
		return result, nil
	}

	sources := w.scrapeAll(ctx, urls)
	sources = rankByRelevance(sources, query)
	if len(sources) > w.maxResults {
		sources = sources[:w.maxResults]
	}

	for _, src := range sources {
		result.TotalSources++
		result.SourceNames = append(result.SourceNames, src.SourceName)
		switch src.SourceType {
		case SourceTypeFactChecker:
			result.FactCheckerSources++
		case SourceTypeMainstream:
			result.MainstreamSources++
		}
	}
	result.SourcesScraped = sources
	result.Consensus, result.Summary = classifyConsensus(sources)
	return result, nil
}

// searchMerged issues both search queries, dedupes by domain, caps results
func (w *WebVerifier) searchMerged(ctx context.Context, query string) ([]string, error) {
	first, err := w.search(ctx, query)
	if err != nil {
		return nil, err
	}
	second, err := w.search(ctx, query+" fact check")
	if err != nil {
		Logger().Warning("fact check search failed: %v", err)
		second = nil
	}

	seen := make(map[string]bool)
	var merged []string
	for _, u := range append(first, second...) {
		domain := domainOf(u)
		if domain == "" || seen[domain] || skippedDomain(domain) {
			continue
		}
		seen[domain] = true
		merged = append(merged, u)
		if len(merged) >= w.maxResults {
			break
		}
	}
	return merged, nil
}

// search queries the DuckDuckGo HTML endpoint and extracts result links
func (w *WebVerifier) search(ctx context.Context, query string) ([]string, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, NewScrapeError(ErrScrapeSearch, "rate limit wait interrupted", err)
	}

	searchURL := w.searchURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, NewScrapeError(ErrScrapeSearch, "building search request", err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	client := &http.Client{Timeout: searchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, NewScrapeError(ErrScrapeSearch, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewScrapeError(ErrScrapeSearch, fmt.Sprintf("search returned status %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, NewScrapeError(ErrScrapeSearch, "parsing search results", err)
	}

	var links []string
	doc.Find("a.result__a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if resolved := resolveResultLink(href); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveResultLink unwraps DuckDuckGo's redirect links (uddg parameter)
func resolveResultLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		if target, err := url.QueryUnescape(uddg); err == nil {
			return target
		}
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return href
	}
	return ""
}

// scrapeAll fetches pages with a bounded worker pool
func (w *WebVerifier) scrapeAll(ctx context.Context, urls []string) []ScrapedSource {
	jobs := make(chan string, len(urls))
	results := make(chan ScrapedSource, len(urls))
	var wg sync.WaitGroup

	for i := 0; i < scrapeWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pageURL := range jobs {
				src, err := w.scrapePage(ctx, pageURL)
				if err != nil {
					Logger().Debug("skipping %s: %v", pageURL, err)
					IncrementCounter(CounterScrapeFailures)
					continue
				}
				results <- src
			}
		}()
	}

	for _, u := range urls {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
	close(results)

	var sources []ScrapedSource
	for src := range results {
		sources = append(sources, src)
	}
	return sources
}

// scrapePage fetches one page and extracts title, snippet and body text
func (w *WebVerifier) scrapePage(ctx context.Context, pageURL string) (ScrapedSource, error) {
	reqCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, "building page request", err)
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := &http.Client{Timeout: w.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, "page fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, fmt.Sprintf("page returned status %d", resp.StatusCode), nil)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, "not an HTML page", nil)
	}

	reader, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		reader = resp.Body
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(reader, 2<<20))
	if err != nil {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, "parsing page", err)
	}

	body := extractArticleText(doc)
	if len(body) < minArticleChars {
		return ScrapedSource{}, NewScrapeError(ErrScrapeFetch, "page body too short", nil)
	}

	domain := domainOf(pageURL)
	pub := LookupPublisher(domain)
	src := ScrapedSource{
		SourceName:   pub.Name,
		SourceDomain: domain,
		SourceType:   pub.Type,
		Credibility:  pub.Credibility,
		Title:        extractTitle(doc),
		FullText:     body,
		URL:          pageURL,
	}
	src.Snippet = truncate(body, maxSnippetChars)
	return src, nil
}

// extractTitle prefers og:title, then <title> stripped of site suffixes,
// then the first h1.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return cleanText(og)
	}
	if t := doc.Find("title").First().Text(); t != "" {
		for _, sep := range []string{" | ", " - ", " — ", " :: "} {
			if i := strings.Index(t, sep); i > 0 {
				t = t[:i]
				break
			}
		}
		return cleanText(t)
	}
	return cleanText(doc.Find("h1").First().Text())
}

// extractArticleText tries article containers, then common content
// selectors, then falls back to clustering substantial paragraphs.
func extractArticleText(doc *goquery.Document) string {
	for _, selector := range articleSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		var parts []string
		sel.Find("p").Each(func(_ int, p *goquery.Selection) {
			if t := strings.TrimSpace(p.Text()); len(t) > minParagraphSize {
				parts = append(parts, t)
			}
		})
		if text := cleanText(strings.Join(parts, " ")); len(text) >= minArticleChars {
			return truncate(text, maxArticleChars)
		}
	}

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); len(t) > minParagraphSize {
			parts = append(parts, t)
		}
	})
	if text := cleanText(strings.Join(parts, " ")); len(text) >= minArticleChars {
		return truncate(text, maxArticleChars)
	}

	return truncate(cleanText(doc.Find("body").Text()), maxArticleChars)
}

// cleanText collapses whitespace, strips URLs and boilerplate, and applies
// NFC normalization so downstream keyword matching is stable.
func cleanText(text string) string {
	text = urlInTextPattern.ReplaceAllString(text, " ")
	lower := strings.ToLower(text)
	for _, fragment := range boilerplateFragments {
		for {
			i := strings.Index(lower, fragment)
			if i < 0 {
				break
			}
			text = text[:i] + " " + text[i+len(fragment):]
			lower = strings.ToLower(text)
		}
	}
	text = whitespacePattern.ReplaceAllString(text, " ")
	return norm.NFC.String(strings.TrimSpace(text))
}

// rankByRelevance scores each source by query-term overlap, credibility and
// a fact-checker bonus, then sorts descending.
func rankByRelevance(sources []ScrapedSource, query string) []ScrapedSource {
	queryWords := tokenizeWords(strings.ToLower(query))
	for i := range sources {
		sources[i].RelevanceScore = relevanceScore(&sources[i], queryWords)
	}
	sort.SliceStable(sources, func(a, b int) bool {
		return sources[a].RelevanceScore > sources[b].RelevanceScore
	})
	return sources
}

func relevanceScore(src *ScrapedSource, queryWords []string) float64 {
	if len(queryWords) == 0 {
		return src.Credibility / 20
	}
	haystack := strings.ToLower(src.Title + " " + src.FullText)
	overlap := 0
	for _, w := range queryWords {
		if len(w) > 2 && strings.Contains(haystack, w) {
			overlap++
		}
	}
	score := float64(overlap)/float64(len(queryWords))*0.6 + src.Credibility/20
	if src.SourceType == SourceTypeFactChecker {
		score += 0.15
	}
	if score > 1 {
		score = 1
	}
	return score
}

// classifyConsensus votes each source as denying or supporting the claim
// and aggregates. Fewer than two classifiable sources is insufficient.
func classifyConsensus(sources []ScrapedSource) (string, string) {
	if len(sources) < 2 {
		return ConsensusInsufficient, fmt.Sprintf("Only %d source(s) found, not enough to judge consensus", len(sources))
	}

	denies, supports := 0, 0
	for _, src := range sources {
		text := strings.ToLower(src.Title + " " + src.FullText)
		d := countPatternHits(text, denialPatterns)
		s := countPatternHits(text, supportPatterns)
		switch {
		case d > s:
			denies++
		case s > 0:
			supports++
		}
	}

	switch {
	case denies == 0 && supports == 0:
		return ConsensusInsufficient, "Sources found but none took a clear position"
	case float64(denies) > float64(supports)*1.5:
		return ConsensusMostlyDenied, fmt.Sprintf("%d of %d sources dispute the claim", denies, len(sources))
	case float64(supports) > float64(denies)*1.5:
		return ConsensusMostlySupported, fmt.Sprintf("%d of %d sources corroborate the claim", supports, len(sources))
	default:
		return ConsensusConflicting, fmt.Sprintf("Sources conflict: %d dispute, %d corroborate", denies, supports)
	}
}

func countPatternHits(text string, patterns []*regexp.Regexp) int {
	hits := 0
	for _, p := range patterns {
		hits += len(p.FindAllString(text, -1))
	}
	return hits
}

func skippedDomain(domain string) bool {
	for _, skip := range skipDomains {
		if strings.Contains(domain, skip) {
			return true
		}
	}
	return false
}

func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
