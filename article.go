package pageviews

import (
	"context"

	"cgt.name/pkg/go-pageviews/dates"
)

// DayViews pairs a date with an article's view count on that date.
type DayViews struct {
	Date  dates.Date
	Views int64
}

// ArticleViewsForWeek returns an article's total views over the rolling
// 7-day window starting at startDate (a YYYYMMDD string). One request is
// issued per day; days the service has no data for count as zero.
func (c *Client) ArticleViewsForWeek(ctx context.Context, article, startDate string) (int64, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return 0, err
	}

	counts, err := c.dailyViews(ctx, article, dates.Week(start))
	if err != nil {
		return 0, err
	}
	return sum(counts), nil
}

// ArticleViewsForMonth returns an article's total views between startDate
// and endDate inclusive, both YYYYMMDD strings. The caller supplies the
// month's bounds explicitly (e.g. "20221201" and "20221231"); leap days
// are the caller's responsibility. One request is issued per day in the
// range; days the service has no data for count as zero.
func (c *Client) ArticleViewsForMonth(ctx context.Context, article, startDate, endDate string) (int64, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return 0, err
	}
	end, err := dates.Parse(endDate)
	if err != nil {
		return 0, err
	}
	days, err := dates.Range(start, end)
	if err != nil {
		return 0, err
	}

	counts, err := c.dailyViews(ctx, article, days)
	if err != nil {
		return 0, err
	}
	return sum(counts), nil
}

// MostArticleViewsInWeek returns the day the article had the most views
// within the rolling 7-day window starting at startDate (a YYYYMMDD
// string), together with that day's count. When several days tie for the
// maximum, the earliest of them wins.
func (c *Client) MostArticleViewsInWeek(ctx context.Context, article, startDate string) (DayViews, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return DayViews{}, err
	}
	return c.peakDay(ctx, article, dates.Week(start))
}

// MostArticleViewsInMonth returns the day the article had the most views
// in the given month, together with that day's count. When several days
// tie for the maximum, the earliest of them wins.
func (c *Client) MostArticleViewsInMonth(ctx context.Context, article string, year, month int) (DayViews, error) {
	days, err := dates.Month(year, month)
	if err != nil {
		return DayViews{}, err
	}
	return c.peakDay(ctx, article, days)
}

// peakDay fans out over the given days and scans the counts in date
// order, so the first day holding the maximum wins regardless of which
// requests completed first.
func (c *Client) peakDay(ctx context.Context, article string, days []dates.Date) (DayViews, error) {
	counts, err := c.dailyViews(ctx, article, days)
	if err != nil {
		return DayViews{}, err
	}

	peak := DayViews{Date: days[0], Views: counts[0]}
	for i := 1; i < len(days); i++ {
		if counts[i] > peak.Views {
			peak = DayViews{Date: days[i], Views: counts[i]}
		}
	}
	return peak, nil
}

func sum(counts []int64) int64 {
	var total int64
	for _, n := range counts {
		total += n
	}
	return total
}
