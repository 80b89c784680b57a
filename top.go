package pageviews

import (
	"context"
	"sort"

	"github.com/antonholmquist/jason"

	"cgt.name/pkg/go-pageviews/dates"
)

// RankingEntry is one row of a top-articles list: an article title, its
// view count, and its 1-based rank within the list.
type RankingEntry struct {
	Article string
	Views   int64
	Rank    int
}

// MostViewedForDay returns the most viewed articles for a single day,
// in the rank order returned by the service.
func (c *Client) MostViewedForDay(ctx context.Context, year, month, day int) ([]RankingEntry, error) {
	d, err := dates.New(year, month, day)
	if err != nil {
		return nil, err
	}

	entries, err := c.topList(ctx, c.urls.top(d))
	if err != nil {
		return nil, err
	}
	return c.trim(entries), nil
}

// MostViewedForMonth returns the most viewed articles for a whole month,
// in the rank order returned by the service.
func (c *Client) MostViewedForMonth(ctx context.Context, year, month int) ([]RankingEntry, error) {
	if _, err := dates.New(year, month, 1); err != nil {
		return nil, err
	}

	entries, err := c.topList(ctx, c.urls.topMonth(year, month))
	if err != nil {
		return nil, err
	}
	return c.trim(entries), nil
}

// MostViewedForWeek returns the most viewed articles for the rolling 7-day
// window starting at startDate (a YYYYMMDD string). The service has no
// weekly rollup, so the client fetches the seven daily lists, sums each
// article's views across them, and re-ranks by total views descending.
// Articles with equal totals keep the order in which they first appeared,
// scanning the days in date order. A day with no data contributes nothing.
func (c *Client) MostViewedForWeek(ctx context.Context, startDate string) ([]RankingEntry, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return nil, err
	}

	lists, err := c.topForDays(ctx, dates.Week(start))
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	var order []string // titles in order of first appearance, date order
	for _, list := range lists {
		for _, entry := range list {
			if _, seen := totals[entry.Article]; !seen {
				order = append(order, entry.Article)
			}
			totals[entry.Article] += entry.Views
		}
	}

	merged := make([]RankingEntry, len(order))
	for i, article := range order {
		merged[i] = RankingEntry{Article: article, Views: totals[article]}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Views > merged[j].Views
	})
	for i := range merged {
		merged[i].Rank = i + 1
	}
	return c.trim(merged), nil
}

// topList fetches and parses one top-articles response. The service nests
// the list under items[0].articles.
func (c *Client) topList(ctx context.Context, url string) ([]RankingEntry, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	items, err := resp.GetObjectArray("items")
	if err != nil {
		return nil, responseError(err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	articles, err := items[0].GetObjectArray("articles")
	if err != nil {
		return nil, responseError(err)
	}

	entries := make([]RankingEntry, 0, len(articles))
	for _, article := range articles {
		entry, err := parseRankingEntry(article)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRankingEntry(obj *jason.Object) (RankingEntry, error) {
	title, err := obj.GetString("article")
	if err != nil {
		return RankingEntry{}, responseError(err)
	}
	views, err := obj.GetInt64("views")
	if err != nil {
		return RankingEntry{}, responseError(err)
	}
	rank, err := obj.GetInt64("rank")
	if err != nil {
		return RankingEntry{}, responseError(err)
	}
	return RankingEntry{Article: title, Views: views, Rank: int(rank)}, nil
}

// trim caps a ranking list to the client's configured limit.
func (c *Client) trim(entries []RankingEntry) []RankingEntry {
	if c.limit > 0 && len(entries) > c.limit {
		return entries[:c.limit]
	}
	return entries
}
