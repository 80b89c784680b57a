package pageviews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"cgt.name/pkg/go-pageviews/dates"
)

// weekCounts spreads the given counts over the rolling week starting
// 2022-12-18.
func weekCounts(counts []int64) dayViews {
	start, _ := dates.Parse("20221218")
	views := dayViews{}
	for i, n := range counts {
		views[start.AddDays(i).Compact()] = n
	}
	return views
}

func TestArticleViewsForWeek(t *testing.T) {
	var requests int64
	views := weekCounts([]int64{5, 12, 3, 12, 0, 7, 1})

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	total, err := client.ArticleViewsForWeek(context.Background(), "Lionel Messi", "20221218")
	if err != nil {
		t.Fatalf("ArticleViewsForWeek returned err: %v", err)
	}
	if total != 40 {
		t.Errorf("total = %d, expected 40", total)
	}
	if requests != 7 {
		t.Errorf("issued %d requests, expected exactly 7", requests)
	}
}

func TestArticleViewsForWeekAcrossYearBoundary(t *testing.T) {
	var requests int64
	start, _ := dates.Parse("20221229")
	views := dayViews{}
	for i := 0; i < 7; i++ {
		views[start.AddDays(i).Compact()] = 1
	}

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	total, err := client.ArticleViewsForWeek(context.Background(), "Pelé", "20221229")
	if err != nil {
		t.Fatalf("ArticleViewsForWeek returned err: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, expected 7 (one per day, Dec 29 through Jan 4)", total)
	}
	if requests != 7 {
		t.Errorf("issued %d requests, expected 7", requests)
	}
}

func TestArticleViewsForWeekNotFoundDaysCountAsZero(t *testing.T) {
	// Days 3 and 5 of the week are absent from the map and 404; they
	// contribute zero instead of failing the call.
	start, _ := dates.Parse("20221218")
	views := dayViews{
		start.AddDays(0).Compact(): 5,
		start.AddDays(1).Compact(): 0,
		start.AddDays(2).Compact(): 3,
		start.AddDays(4).Compact(): 7,
		start.AddDays(6).Compact(): 1,
	}

	var requests int64
	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	total, err := client.ArticleViewsForWeek(context.Background(), "Obscure Article", "20221218")
	if err != nil {
		t.Fatalf("ArticleViewsForWeek returned err: %v", err)
	}
	if total != 16 {
		t.Errorf("total = %d, expected 16", total)
	}
	if requests != 7 {
		t.Errorf("issued %d requests, expected 7", requests)
	}
}

func TestArticleViewsForWeekTransportErrorAborts(t *testing.T) {
	// One day of the week answers 503; the aggregation must fail with the
	// transport error rather than return a partial sum.
	start, _ := dates.Parse("20221218")
	badDay := start.AddDays(3).Compact()
	views := weekCounts([]int64{5, 12, 3, 12, 0, 7, 1})

	handler := func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/daily/"+badDay+"/") {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"title":"Error in backend service."}`)
			return
		}
		var n int64
		perArticleHandler(t, views, &n)(w, r)
	}

	server, client := setup(handler)
	defer server.Close()

	total, err := client.ArticleViewsForWeek(context.Background(), "Lionel Messi", "20221218")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if total != 0 {
		t.Errorf("total = %d alongside an error, expected no partial sum", total)
	}
}

func TestArticleViewsForWeekMalformedDate(t *testing.T) {
	var requests int64
	server, client := setup(perArticleHandler(t, dayViews{}, &requests))
	defer server.Close()

	for _, input := range []string{"2022121", "20221232", "not-a-date"} {
		_, err := client.ArticleViewsForWeek(context.Background(), "Pelé", input)
		var perr *dates.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("start %q: expected *dates.ParseError, got %T: %v", input, err, err)
		}
	}
	if requests != 0 {
		t.Errorf("issued %d requests for malformed dates, expected 0", requests)
	}
}

func TestArticleViewsForMonth(t *testing.T) {
	var requests int64
	start, _ := dates.Parse("20221201")
	views := dayViews{}
	for i := 0; i < 31; i++ {
		views[start.AddDays(i).Compact()] = int64(i + 1)
	}

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	total, err := client.ArticleViewsForMonth(context.Background(), "Lionel Messi", "20221201", "20221231")
	if err != nil {
		t.Fatalf("ArticleViewsForMonth returned err: %v", err)
	}
	if total != 496 { // 1+2+...+31
		t.Errorf("total = %d, expected 496", total)
	}
	if requests != 31 {
		t.Errorf("issued %d requests, expected one per day of December", requests)
	}
}

func TestArticleViewsForMonthReversedRange(t *testing.T) {
	var requests int64
	server, client := setup(perArticleHandler(t, dayViews{}, &requests))
	defer server.Close()

	_, err := client.ArticleViewsForMonth(context.Background(), "Pelé", "20221231", "20221201")
	var perr *dates.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *dates.ParseError, got %T: %v", err, err)
	}
	if requests != 0 {
		t.Errorf("issued %d requests for a reversed range, expected 0", requests)
	}
}

func TestArticleTitlesAreCaseSensitive(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	handler := func(w http.ResponseWriter, r *http.Request) {
		segments := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")
		mu.Lock()
		seen[segments[5]] = true
		mu.Unlock()
		fmt.Fprint(w, `{"items":[{"views":1}]}`)
	}

	server, client := setup(handler)
	defer server.Close()

	for _, title := range []string{"Lionel Messi", "Lionel messi"} {
		if _, err := client.ArticleViewsForWeek(context.Background(), title, "20221218"); err != nil {
			t.Fatalf("ArticleViewsForWeek(%q) returned err: %v", title, err)
		}
	}

	if !seen["Lionel_Messi"] || !seen["Lionel_messi"] {
		t.Errorf("requested titles = %v, expected both capitalizations as distinct paths", seen)
	}
}

func TestMostArticleViewsInWeekTieBreak(t *testing.T) {
	// Two days tie at 12 views; the earlier one (index 1) must win.
	views := weekCounts([]int64{5, 12, 3, 12, 0, 7, 1})

	var requests int64
	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	peak, err := client.MostArticleViewsInWeek(context.Background(), "Lionel Messi", "20221218")
	if err != nil {
		t.Fatalf("MostArticleViewsInWeek returned err: %v", err)
	}
	if peak.Views != 12 {
		t.Errorf("peak.Views = %d, expected 12", peak.Views)
	}
	if peak.Date.Compact() != "20221219" {
		t.Errorf("peak.Date = %s, expected 20221219 (earliest of the tied days)",
			peak.Date.Compact())
	}
}

func TestMostArticleViewsInMonth(t *testing.T) {
	var requests int64
	start, _ := dates.Parse("20221201")
	views := dayViews{}
	for i := 0; i < 31; i++ {
		views[start.AddDays(i).Compact()] = 10
	}
	views["20221218"] = 5000 // World Cup final

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	peak, err := client.MostArticleViewsInMonth(context.Background(), "Lionel Messi", 2022, 12)
	if err != nil {
		t.Fatalf("MostArticleViewsInMonth returned err: %v", err)
	}
	if peak.Date.Compact() != "20221218" || peak.Views != 5000 {
		t.Errorf("peak = %v/%d, expected 20221218/5000", peak.Date, peak.Views)
	}
	if requests != 31 {
		t.Errorf("issued %d requests, expected one per day of December", requests)
	}
}

func TestMostArticleViewsInMonthFebruary(t *testing.T) {
	var requests int64
	views := dayViews{"20240229": 99}
	start, _ := dates.Parse("20240201")
	for i := 0; i < 29; i++ {
		d := start.AddDays(i).Compact()
		if _, ok := views[d]; !ok {
			views[d] = 1
		}
	}

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	peak, err := client.MostArticleViewsInMonth(context.Background(), "Leap year", 2024, 2)
	if err != nil {
		t.Fatalf("MostArticleViewsInMonth returned err: %v", err)
	}
	if requests != 29 {
		t.Errorf("issued %d requests for February 2024, expected 29", requests)
	}
	if peak.Date.Compact() != "20240229" {
		t.Errorf("peak.Date = %s, expected the leap day", peak.Date.Compact())
	}
}

func TestRepeatedCallsAreIdempotent(t *testing.T) {
	views := weekCounts([]int64{5, 12, 3, 12, 0, 7, 1})
	var requests int64

	server, client := setup(perArticleHandler(t, views, &requests))
	defer server.Close()

	first, err := client.ArticleViewsForWeek(context.Background(), "Lionel Messi", "20221218")
	if err != nil {
		t.Fatalf("first call returned err: %v", err)
	}
	second, err := client.ArticleViewsForWeek(context.Background(), "Lionel Messi", "20221218")
	if err != nil {
		t.Fatalf("second call returned err: %v", err)
	}
	if first != second {
		t.Errorf("same call, same responses: got %d then %d", first, second)
	}
}
