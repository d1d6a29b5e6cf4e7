package search_caps

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func queryField() capability.Field {
	return capability.String("query", capability.Required(),
		capability.Description("Search query"))
}

func maxResultsField() capability.Field {
	return capability.Integer("maxResults", capability.Default(10),
		capability.Description("Maximum number of results to return"))
}

// Register declares all Search capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		searchWeb(),
		searchNews(),
		searchImages(),
		searchWorkspace(),
		searchTrends(),
		searchAnalytics(),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cap5(n int64) int {
	if n > 5 {
		return 5
	}
	return int(n)
}

func searchWeb() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_WEB",
		Name:        "Search Web",
		Description: "Run a web search and return ranked results with titles, URLs and snippets.",
		Schema:      capability.NewSchema(accountField(), queryField(), maxResultsField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			query := capability.StringArg(input, "query", "")
			n := cap5(capability.IntArg(input, "maxResults", 10))
			results := make([]map[string]any, 0, n)
			for i := 0; i < n; i++ {
				results = append(results, map[string]any{
					"rank":    i + 1,
					"title":   fmt.Sprintf("Result %d for %s", i+1, query),
					"url":     "https://example.com/result/" + url.PathEscape(fmt.Sprintf("%s-%d", query, i+1)),
					"snippet": fmt.Sprintf("Placeholder snippet %d mentioning %q.", i+1, query),
				})
			}
			return map[string]any{"query": query, "results": results, "count": len(results)}, nil
		},
	}
}

func searchNews() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_NEWS",
		Name:        "Search News",
		Description: "Search recent news articles, newest first.",
		Schema: capability.NewSchema(
			accountField(),
			queryField(),
			maxResultsField(),
			capability.Integer("daysBack", capability.Default(7),
				capability.Description("Only articles published in the last N days")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			query := capability.StringArg(input, "query", "")
			n := cap5(capability.IntArg(input, "maxResults", 10))
			daysBack := capability.IntArg(input, "daysBack", 7)
			articles := make([]map[string]any, 0, n)
			for i := 0; i < n; i++ {
				age := time.Duration(rand.Int63n(daysBack*24)) * time.Hour
				articles = append(articles, map[string]any{
					"title":       fmt.Sprintf("News story %d about %s", i+1, query),
					"source":      []string{"The Daily Ledger", "Wire Report", "Tech Briefing"}[i%3],
					"url":         "https://news.example.com/" + uuid.NewString(),
					"publishedAt": time.Now().Add(-age).Format(time.RFC3339),
				})
			}
			return map[string]any{"query": query, "articles": articles, "count": len(articles)}, nil
		},
	}
}

func searchImages() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_IMAGES",
		Name:        "Search Images",
		Description: "Search for images and return URLs with dimensions.",
		Schema: capability.NewSchema(
			accountField(),
			queryField(),
			maxResultsField(),
			capability.Enum("size", []string{"any", "small", "medium", "large"},
				capability.Default("any"),
				capability.Description("Preferred image size")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			query := capability.StringArg(input, "query", "")
			n := cap5(capability.IntArg(input, "maxResults", 10))
			images := make([]map[string]any, 0, n)
			for i := 0; i < n; i++ {
				images = append(images, map[string]any{
					"title":  fmt.Sprintf("Image %d for %s", i+1, query),
					"url":    "https://images.example.com/" + uuid.NewString() + ".jpg",
					"width":  640 + rand.Intn(1280),
					"height": 480 + rand.Intn(720),
				})
			}
			return map[string]any{"query": query, "images": images, "count": len(images)}, nil
		},
	}
}

func searchWorkspace() capability.Descriptor {
	sources := []string{"gmail", "drive", "calendar", "docs"}
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_WORKSPACE",
		Name:        "Search Workspace",
		Description: "Search across the user's Workspace content: mail, files, events and documents.",
		Schema: capability.NewSchema(
			accountField(),
			queryField(),
			maxResultsField(),
			capability.List("sources", capability.Enum("", sources),
				capability.Description("Restrict to these sources; all when omitted")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			query := capability.StringArg(input, "query", "")
			selected := capability.StringListArg(input, "sources")
			if len(selected) == 0 {
				selected = sources
			}
			n := cap5(capability.IntArg(input, "maxResults", 10))
			results := make([]map[string]any, 0, n)
			for i := 0; i < n; i++ {
				source := selected[i%len(selected)]
				results = append(results, map[string]any{
					"source":  source,
					"title":   fmt.Sprintf("%s match %d for %s", capitalize(source), i+1, query),
					"id":      uuid.NewString(),
					"snippet": fmt.Sprintf("Placeholder %s content matching %q.", source, query),
				})
			}
			return map[string]any{"query": query, "results": results, "count": len(results)}, nil
		},
	}
}

func searchTrends() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_TRENDS",
		Name:        "Search Trends",
		Description: "Fetch interest-over-time data for a search term.",
		Schema: capability.NewSchema(
			accountField(),
			queryField(),
			capability.Enum("period", []string{"day", "week", "month", "year"},
				capability.Default("month"),
				capability.Description("Time window for the trend series")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			points := map[string]int{"day": 24, "week": 7, "month": 30, "year": 12}[capability.StringArg(input, "period", "month")]
			series := make([]map[string]any, 0, points)
			for i := 0; i < points; i++ {
				series = append(series, map[string]any{
					"index":    i,
					"interest": rand.Intn(101),
				})
			}
			return map[string]any{
				"query":  capability.StringArg(input, "query", ""),
				"period": capability.StringArg(input, "period", "month"),
				"series": series,
			}, nil
		},
	}
}

func searchAnalytics() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESEARCH_SEARCH_ANALYTICS",
		Name:        "Search Analytics",
		Description: "Fetch search performance metrics for a site: clicks, impressions, CTR and position.",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("siteUrl", capability.Required(),
				capability.Description("Property URL, e.g. 'https://example.com'")),
			capability.Integer("days", capability.Default(28),
				capability.Description("Reporting window in days")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			clicks := 1000 + rand.Intn(9000)
			impressions := clicks * (5 + rand.Intn(20))
			return map[string]any{
				"siteUrl":     capability.StringArg(input, "siteUrl", ""),
				"days":        capability.IntArg(input, "days", 28),
				"clicks":      clicks,
				"impressions": impressions,
				"ctr":         float64(clicks) / float64(impressions),
				"avgPosition": 1 + rand.Float64()*20,
			}, nil
		},
	}
}
