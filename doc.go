/*
Package pageviews provides convenience methods for querying the Wikimedia
Pageviews API, the public REST API serving page-view statistics for
Wikimedia projects.

go-pageviews covers the two pageviews endpoints: the top-articles lists
(most viewed articles for a day, a rolling week, or a month) and the
per-article daily counts (an article's total or busiest day over a
period). It is intended to make dealing with the API more convenient,
but not to hide it; the endpoint semantics described at
https://wikimedia.org/api/rest_v1/ apply unchanged.

Basic usage

Initialize a *Client with New(), specifying your HTTP User-Agent. The
Wikimedia APIs require a meaningful User-Agent that allows you to be
contacted if need be; see https://www.mediawiki.org/wiki/REST_API.

	client, err := pageviews.New("my-tool/1.0 (contact@example.com)")
	if err != nil {
		// empty User-Agent
	}

	top, err := client.MostViewedForDay(ctx, 2022, 12, 29)
	if err != nil {
		// handle the error
	}
	for _, entry := range top {
		fmt.Println(entry.Rank, entry.Article, entry.Views)
	}

	total, err := client.ArticleViewsForWeek(ctx, "Lionel Messi", "20221218")

By default a Client queries en.wikipedia.org across all access methods,
counting user traffic only. Options adjust this at construction:

	client, err := pageviews.New("my-tool/1.0 (contact@example.com)",
		pageviews.WithProject("de.wikipedia.org"),
		pageviews.WithAccess("mobile-web"),
		pageviews.WithLimit(10))

Dates

Methods take dates either as separate year, month, and day integers or as
compact 8-digit YYYYMMDD strings, matching the two shapes the API itself
uses; the integer parameters are always ordered year, month, day. A week
is a rolling 7-day window starting at the given date, not an ISO calendar
week. Dates that do not form a valid calendar date are rejected with a
*dates.ParseError before any request is issued.

Requests over multi-day periods fan out into one request per day,
dispatched through a small worker pool and joined before aggregation.
The aggregate is computed in date order, so the "busiest day" methods
resolve ties in favor of the earliest date.

Error handling

Failed calls return one of three kinds of error. A *dates.ParseError
means a date argument was structurally invalid and nothing was sent. A
*NotFoundError means the service has no data for the request; the service
signals a nonexistent article, a date before its tracked history (which
begins July 2015), and a malformed article name all identically, so the
causes cannot be told apart. Within multi-day aggregations a not-found
day simply counts as zero views. Anything else — a network failure or an
unexpected HTTP status, surfaced as a *APIError — aborts the whole call,
including any fan-out in flight; no partial aggregate is ever returned.

The client never retries. Callers who need retry or backoff behavior can
supply an *http.Client that provides it via WithHTTPClient.

Article titles are passed through exactly as supplied, percent-encoded
for transport only. The service tracks distinct capitalizations as
distinct articles, so "Lionel messi" and "Lionel Messi" are different
queries with independent counts.
*/
package pageviews // import "cgt.name/pkg/go-pageviews"
