package pageviews

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"cgt.name/pkg/go-pageviews/dates"
)

// fanoutWorkers bounds the number of in-flight requests during a per-day
// fan-out. Seven matches the most common fan-out size (one rolling week).
const fanoutWorkers = 7

// dailyViews fetches an article's view count for each of the given days
// through a bounded worker pool and returns the counts in the same order
// as days. A not-found day yields a zero count; any other failure cancels
// the remaining requests and fails the whole fan-out with no partial
// result. Returning counts positionally keeps aggregation in date order
// no matter which requests finish first.
func (c *Client) dailyViews(ctx context.Context, article string, days []dates.Date) ([]int64, error) {
	counts := make([]int64, len(days))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutWorkers)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			n, err := c.articleViewsForDay(ctx, article, day)
			if err != nil {
				var nf *NotFoundError
				if errors.As(err, &nf) {
					return nil // no data for this day counts as zero
				}
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// articleViewsForDay fetches the view count for a single article on a
// single day via the per-article endpoint with start == end.
func (c *Client) articleViewsForDay(ctx context.Context, article string, day dates.Date) (int64, error) {
	resp, err := c.get(ctx, c.urls.perArticle(article, day, day))
	if err != nil {
		return 0, err
	}

	items, err := resp.GetObjectArray("items")
	if err != nil {
		return 0, responseError(err)
	}

	var total int64
	for _, item := range items {
		views, err := item.GetInt64("views")
		if err != nil {
			return 0, responseError(err)
		}
		total += views
	}
	return total, nil
}

// topForDays fetches the rank-ordered top-articles list for each of the
// given days through the same worker pool discipline as dailyViews:
// results land in their date's slot, a not-found day yields an empty
// list, and a hard failure cancels the rest.
func (c *Client) topForDays(ctx context.Context, days []dates.Date) ([][]RankingEntry, error) {
	lists := make([][]RankingEntry, len(days))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutWorkers)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			entries, err := c.topList(ctx, c.urls.top(day))
			if err != nil {
				var nf *NotFoundError
				if errors.As(err, &nf) {
					return nil
				}
				return err
			}
			lists[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}
