package app

import (
	"net/url"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

// withApplicationName tags the connection so it shows up in pg_stat_activity.
// An explicit application_name in the DSN wins.
func withApplicationName(dsn, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return dsn
	}

	parsed, err := url.Parse(dsn)
	if err == nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get("application_name") != "" {
			return dsn
		}
		query.Set("application_name", name)
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	if strings.Contains(dsn, "application_name=") {
		return dsn
	}
	return strings.TrimSpace(dsn) + " application_name=" + quoteKeywordValue(name)
}

func quoteKeywordValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func databaseName(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
		return ""
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// compactQuery collapses whitespace so multi-line statements read as one
// span attribute.
func compactQuery(query string) string {
	normalized := queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
