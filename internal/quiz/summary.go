package quiz

import (
	"regexp"
	"slices"
	"strings"
)

// CategorySummary describes one category on the intro screen.
type CategorySummary struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Points   []int  `json:"points"`
}

// Summary is the intro screen: the regular categories and the final topic.
type Summary struct {
	Categories []CategorySummary `json:"categories"`
	FinalTopic string            `json:"finalTopic,omitempty"`
	MinWager   int               `json:"minWager"`
	MaxWager   int               `json:"maxWager"`
}

var finalPrefix = regexp.MustCompile(`(?i)^\s*Τελική\s+ερώτηση\s*[—–\-:]\s*`)

const noCategory = "—"

// Summarize groups questions by category in first-seen order. The final
// question's category is reported only as the final topic.
func Summarize(questions []Question) Summary {
	s := Summary{Categories: []CategorySummary{}, MinWager: MinWager, MaxWager: MaxWager}
	if len(questions) == 0 {
		return s
	}

	finalCategory := questions[len(questions)-1].Category
	pos := make(map[string]int)
	for _, q := range questions {
		cat := categoryLabel(q.Category)
		i, ok := pos[cat]
		if !ok {
			i = len(s.Categories)
			pos[cat] = i
			s.Categories = append(s.Categories, CategorySummary{Category: cat})
		}
		c := &s.Categories[i]
		c.Count++
		if !slices.Contains(c.Points, q.BasePoints()) {
			c.Points = append(c.Points, q.BasePoints())
		}
	}
	for i := range s.Categories {
		slices.Sort(s.Categories[i].Points)
	}

	s.Categories = slices.DeleteFunc(s.Categories, func(c CategorySummary) bool {
		return c.Category == categoryLabel(finalCategory)
	})
	s.FinalTopic = strings.TrimSpace(finalPrefix.ReplaceAllString(finalCategory, ""))
	if s.FinalTopic == "" {
		s.FinalTopic = finalCategory
	}
	return s
}

func categoryLabel(cat string) string {
	if cat == "" {
		return noCategory
	}
	return cat
}
