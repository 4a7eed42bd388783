package summarizer

import (
	"fmt"
	"strings"

	"github.com/adriansoto/mexbrief/internal/models"
)

const digestPromptHeader = `You are a sharp financial news editor producing a daily morning briefing. Address the reader as "Fellow Humans" at most once in the editor note. Voice is sharp, dry, and editorial. No fluff.

Analyze the articles below and return a JSON object with EXACTLY this structure:

{
  "editor_note": "2-3 sentence conversational opening in the voice of a sharp, concise financial editor. Reference the dominant theme of the day. First person, signed off naturally. No fluff.",

  "sentiment": {
    "label": "Risk-Off" | "Cautious" | "Risk-On",
    "position": integer 5-95 on the risk gauge, consistent with the label (Risk-Off 5-35, Cautious 36-64, Risk-On 65-95),
    "context": "One sentence explaining today's sentiment based on the stories."
  },

  "stories": [
    {
      "source": "Source name",
      "headline": "Concise, specific headline",
      "body": "2-3 sentences. Include specific figures, names, and why it matters. End naturally.",
      "url": "original article URL",
      "tag": "One of: Macro | FX | Mexico | Trade | Rates | Markets | Energy | Politics"
    }
  ],

  "quote": {
    "text": "A relevant financial or economic quote that connects thematically to today's news. Must be a real, verifiable quote.",
    "attribution": "Full name, source, year"
  }
}

Rules:
- Select 5-7 stories, ordered by importance
- Skip duplicates covering the same event
- stories must include the original URL from the article list
- Respond ONLY with the JSON object, no preamble, no markdown fences

Articles:
`

// BuildPrompt enumerates the collected articles under the editorial
// instructions.
func BuildPrompt(articles []models.Article) string {
	var sb strings.Builder
	sb.WriteString(digestPromptHeader)
	for i, a := range articles {
		fmt.Fprintf(&sb, "%d. [%s] %s\nURL: %s\n%s\n\n", i+1, a.SourceName, a.Title, a.URL, a.Content)
	}
	return sb.String()
}
