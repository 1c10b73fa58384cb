// File: internal/domain/model/verdict.go
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
)

// DefaultCritique fills in when the model reply omits a critique.
const DefaultCritique = "No critique provided."

// Verdict is the AI reviewer's judgement of a submission.
type Verdict struct {
	Score    float64 `json:"score"`
	Critique string  `json:"critique"`
}

// Passing reports whether the score clears the approval threshold.
func (v Verdict) Passing() bool {
	return v.Score >= PassingScore
}

// ParseVerdict extracts the verdict from a raw model reply. Replies are
// prompted to be a bare JSON object but routinely arrive wrapped in markdown
// fences or with stray tokens; the framing is stripped leniently while the
// object itself must still parse. A reply whose body does not open with '{'
// is rejected outright with ErrVerdictFormat.
func ParseVerdict(raw string) (Verdict, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	if !strings.HasPrefix(text, "{") {
		return Verdict{}, fmt.Errorf("%w: reply is not a JSON object", domain.ErrVerdictFormat)
	}
	// Residual fence tokens inside the body still break json.Unmarshal.
	cleaned := strings.ReplaceAll(text, "`", "")
	cleaned = strings.ReplaceAll(cleaned, "json", "")

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", domain.ErrVerdictFormat, err)
	}

	verdict := Verdict{Critique: DefaultCritique}
	if rawScore, ok := fields["score"]; ok {
		score, err := coerceScore(rawScore)
		if err != nil {
			return Verdict{}, err
		}
		verdict.Score = score
	}
	if rawCritique, ok := fields["critique"]; ok {
		if s, isString := rawCritique.(string); isString {
			verdict.Critique = s
		} else {
			verdict.Critique = fmt.Sprint(rawCritique)
		}
	}
	return verdict, nil
}

func coerceScore(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case string:
		score, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: score %q is not numeric", domain.ErrVerdictFormat, n)
		}
		return score, nil
	default:
		return 0, fmt.Errorf("%w: score has unexpected type %T", domain.ErrVerdictFormat, raw)
	}
}
