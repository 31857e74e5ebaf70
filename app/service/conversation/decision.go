package conversation

import (
	"encoding/json"
	"regexp"
	"strings"
)

type parseOutcome int

const (
	outcomeParsed parseOutcome = iota
	outcomeExtracted
	outcomeDefault
)

// First "{" to the last "}", across newlines. Models wrap the object in
// prose or markdown fences often enough that this is the normal path.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func defaultDecision() SearchDecision {
	return SearchDecision{ShouldSearch: false, Keyword: ""}
}

// parseSearchDecision reduces the raw model answer to a SearchDecision.
// Three tiers: strict parse of the fence-trimmed text, then parse of a
// brace-delimited substring, then the default no-search decision. It never
// fails: the worst malformed input degrades to the default.
func parseSearchDecision(raw string) (SearchDecision, parseOutcome) {
	if fields, err := decodeDecision(trimFences(raw)); err == nil {
		return buildDecision(fields)
	}

	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return defaultDecision(), outcomeDefault
	}

	fields, err := decodeDecision(match)
	if err != nil {
		return defaultDecision(), outcomeDefault
	}

	decision, outcome := buildDecision(fields)
	if outcome == outcomeParsed {
		outcome = outcomeExtracted
	}

	return decision, outcome
}

func trimFences(raw string) string {
	result := strings.TrimSpace(raw)
	result = strings.Trim(result, "`")
	result = strings.TrimSpace(result)
	result = strings.TrimPrefix(result, "json")

	return strings.TrimSpace(result)
}

func decodeDecision(text string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

// buildDecision validates the parsed object: it must carry a "search" key,
// anything else falls back to the default.
func buildDecision(fields map[string]any) (SearchDecision, parseOutcome) {
	searchValue, hasSearch := fields["search"]
	if !hasSearch {
		return defaultDecision(), outcomeDefault
	}

	search, _ := searchValue.(string)
	keyword, _ := fields["keyword"].(string)

	return SearchDecision{
		ShouldSearch: search == "Y",
		Keyword:      keyword,
	}, outcomeParsed
}
