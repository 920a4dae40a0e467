// Package scoring recovers numeric grades from free-text evaluations and folds them into a
// running session performance value.
package scoring

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MinScore is the lowest grade a scored answer can carry.
	MinScore = 1.0
	// MaxScore is the highest grade a scored answer can carry.
	MaxScore = 10.0
	// UpstreamFallbackScore is assigned when the evaluation could not be produced at all.
	UpstreamFallbackScore = 4.0

	historyWeight = 0.6
	latestWeight  = 0.4

	scoreOpenTag  = "<score>"
	scoreCloseTag = "</score>"
)

// Source describes how a score was obtained.
type Source string

const (
	SourcePattern          Source = "pattern"
	SourceEmbeddedNumber   Source = "embedded_number"
	SourceLengthFallback   Source = "length_fallback"
	SourceUpstreamFallback Source = "upstream_fallback"
)

// Matcher is one entry of the prioritized extraction chain.
type Matcher struct {
	Name    string
	Pattern *regexp.Regexp
}

// Match returns the number captured by the matcher, if any.
func (m Matcher) Match(region string) (float64, bool) {
	groups := m.Pattern.FindStringSubmatch(region)
	if len(groups) < 2 {
		return 0, false
	}
	value, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Matchers lists the extraction patterns in precedence order. The first match wins.
var Matchers = []Matcher{
	{Name: "bare_number", Pattern: regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)$`)},
	{Name: "score_label", Pattern: regexp.MustCompile(`(?i)score:?\s*(\d+(?:\.\d+)?)`)},
	{Name: "slash_ten", Pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*/\s*10`)},
	{Name: "out_of_ten", Pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*out\s*of\s*10`)},
	{Name: "points", Pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*points?`)},
}

var embeddedNumber = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// Result is the outcome of scoring a single evaluation text.
type Result struct {
	Score   float64
	Source  Source
	Matcher string
}

// DelimitedRegion returns the trimmed text between the first <score> marker and the closing
// marker that follows it. Both markers must be present somewhere in the feedback.
func DelimitedRegion(feedback string) (string, bool) {
	start := strings.Index(feedback, scoreOpenTag)
	if start < 0 || !strings.Contains(feedback, scoreCloseTag) {
		return "", false
	}

	region := feedback[start+len(scoreOpenTag):]
	if end := strings.Index(region, scoreCloseTag); end >= 0 {
		region = region[:end]
	}
	return strings.TrimSpace(region), true
}

// Extract recovers a score from the delimited region of the feedback. Pattern matches are
// clamped; an embedded number is only accepted when it already lies in [MinScore, MaxScore].
func Extract(feedback string) (Result, bool) {
	region, ok := DelimitedRegion(feedback)
	if !ok {
		return Result{}, false
	}

	for _, matcher := range Matchers {
		if value, matched := matcher.Match(region); matched {
			return Result{Score: Clamp(value), Source: SourcePattern, Matcher: matcher.Name}, true
		}
	}

	if groups := embeddedNumber.FindStringSubmatch(region); len(groups) == 2 {
		value, err := strconv.ParseFloat(groups[1], 64)
		if err == nil && value >= MinScore && value <= MaxScore {
			return Result{Score: value, Source: SourceEmbeddedNumber}, true
		}
	}

	return Result{}, false
}

// LengthFallback derives a score from the trimmed answer length in characters.
func LengthFallback(answer string) float64 {
	length := utf8.RuneCountInString(strings.TrimSpace(answer))
	switch {
	case length < 10:
		return 2.0
	case length < 50:
		return 3.0
	case length < 150:
		return 4.0
	default:
		return 5.0
	}
}

// Score runs the full extraction pipeline. It always yields a score in [MinScore, MaxScore].
func Score(feedback, answer string) Result {
	if result, ok := Extract(feedback); ok {
		result.Score = Clamp(result.Score)
		return result
	}
	return Result{Score: Clamp(LengthFallback(answer)), Source: SourceLengthFallback}
}

// Clamp bounds the score to [MinScore, MaxScore].
func Clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// ApplyScore folds a new score into the running performance value. The first score seeds the
// value; later scores weigh 0.4 against 0.6 for the accumulated history.
func ApplyScore(current *float64, score float64) float64 {
	if current == nil {
		return score
	}
	return *current*historyWeight + score*latestWeight
}

// IsComplete reports whether answering the question at answeredIndex finishes a session of
// total questions.
func IsComplete(answeredIndex, total int) bool {
	return answeredIndex+1 >= total
}
