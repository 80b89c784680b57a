package pageviews

import (
	"fmt"
	"net/url"
	"strings"

	"cgt.name/pkg/go-pageviews/dates"
)

// urls builds request URLs for the two Pageviews endpoints. It performs no
// I/O and no validation beyond encoding; callers are responsible for having
// parsed the dates already.
type urls struct {
	base    string // e.g. https://wikimedia.org/api/rest_v1/metrics
	project string
	access  string
	agent   string
}

// top returns the URL of the top-articles list for one day:
// {base}/pageviews/top/{project}/{access}/{YYYY}/{MM}/{DD}
func (u urls) top(d dates.Date) string {
	return fmt.Sprintf("%s/pageviews/top/%s/%s/%04d/%02d/%02d",
		u.base, u.project, u.access, d.Year, d.Month, d.Day)
}

// topMonth returns the URL of the top-articles list for a whole month:
// {base}/pageviews/top/{project}/{access}/{YYYY}/{MM}/all-days
func (u urls) topMonth(year, month int) string {
	return fmt.Sprintf("%s/pageviews/top/%s/%s/%04d/%02d/all-days",
		u.base, u.project, u.access, year, month)
}

// perArticle returns the URL of an article's daily view counts over an
// inclusive date range:
// {base}/pageviews/per-article/{project}/{access}/{agent}/{article}/daily/{start}/{end}
func (u urls) perArticle(article string, start, end dates.Date) string {
	return fmt.Sprintf("%s/pageviews/per-article/%s/%s/%s/%s/daily/%s/%s",
		u.base, u.project, u.access, u.agent,
		encodeArticle(article), start.Compact(), end.Compact())
}

// encodeArticle converts a user-supplied article title to the form the API
// expects in a path segment: spaces become underscores and the result is
// percent-encoded. Capitalization is preserved exactly; the service tracks
// "Lionel messi" and "Lionel Messi" as distinct articles.
func encodeArticle(article string) string {
	return url.PathEscape(strings.ReplaceAll(article, " ", "_"))
}
