package plans

import (
	"strings"
	"unicode"
)

const tipsMarker = "Here are some important tips:-"

var dietEmojis = map[string]string{
	"Vegetables":     "🥕",
	"Protein Intake": "🍗",
	"Juice":          "🍹",
}

// DietEntry is one ";"-separated part of a diet section. Key is empty for
// entries that are not in "Key: value" form.
type DietEntry struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
	Emoji string `json:"emoji,omitempty"`
}

// Advice is the recommendation text split into sentences. Tips stays nil when
// the source text carries no tips marker.
type Advice struct {
	Intro []string `json:"intro"`
	Tips  []string `json:"tips,omitempty"`
}

func (a Advice) HasTips() bool {
	return a.Tips != nil
}

// ParseDietSection splits "Key: (v1, v2); Other: (v3)" into entries.
func ParseDietSection(text string) []DietEntry {
	entries := make([]DietEntry, 0)
	for _, part := range strings.Split(text, ";") {
		section := strings.TrimSpace(part)
		if section == "" {
			continue
		}

		key, value, found := strings.Cut(section, ":")
		if !found {
			entries = append(entries, DietEntry{Value: section})
			continue
		}

		key = strings.TrimSpace(key)
		entries = append(entries, DietEntry{
			Key:   key,
			Value: strings.Trim(strings.TrimSpace(value), "()"),
			Emoji: dietEmojis[key],
		})
	}
	return entries
}

// ParseItemList normalizes "a, b, and c" style lists into capitalized items.
func ParseItemList(text string) []string {
	normalized := strings.ReplaceAll(text, ", and ", ", ")
	normalized = strings.ReplaceAll(normalized, " and ", ", ")

	items := make([]string, 0)
	for _, part := range strings.Split(normalized, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, capitalize(item))
	}
	return items
}

// ParseAdvice splits the recommendation into intro sentences and tips.
func ParseAdvice(text string) Advice {
	text = strings.TrimSpace(text)

	intro, tips, found := strings.Cut(text, tipsMarker)
	if !found {
		return Advice{Intro: sentences(text)}
	}

	tips = strings.ReplaceAll(strings.TrimSpace(tips), "\n", ".")
	return Advice{
		Intro: sentences(strings.TrimSpace(intro)),
		Tips:  sentences(tips),
	}
}

func sentences(text string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(text, ".") {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return value
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

func DietMarkdown(entries []DietEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Key == "" {
			lines = append(lines, "    - "+entry.Value)
			continue
		}
		prefix := "    - "
		if entry.Emoji != "" {
			prefix += entry.Emoji + " "
		}
		lines = append(lines, prefix+"**"+entry.Key+"**: "+entry.Value)
	}
	return strings.Join(lines, "\n")
}

func ItemsMarkdown(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func AdviceMarkdown(advice Advice) string {
	intro := sentenceBullets(advice.Intro)
	if !advice.HasTips() {
		return intro
	}
	return intro + "\n\n**Here are some important tips:**\n" + sentenceBullets(advice.Tips)
}

func sentenceBullets(lines []string) string {
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		bullets = append(bullets, "- "+line+".")
	}
	return strings.Join(bullets, "\n")
}
