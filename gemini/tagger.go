// Package gemini classifies recipes using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/larder"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Tagger implements larder.Tagger at compile time.
var _ larder.Tagger = (*Tagger)(nil)

// Tagger labels recipes with a course chosen by Gemini plus season and
// diet labels guessed from the ingredients.
type Tagger struct {
	client *genai.Client
}

// NewTagger creates a new Tagger.
func NewTagger(client *genai.Client) *Tagger {
	return &Tagger{client: client}
}

// Tag returns the course, season and diet labels for recipe.
func (t *Tagger) Tag(ctx context.Context, recipe *larder.Recipe) ([]string, error) {
	if recipe == nil {
		return nil, larder.Errorf(larder.EINVALID, "recipe required")
	}
	if recipe.Title == "" && len(recipe.Ingredients) == 0 {
		return nil, larder.Errorf(larder.EINVALID, "recipe has no title or ingredients")
	}

	result, err := t.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildTaggingPrompt(recipe)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, larder.Errorf(larder.EINTERNAL, "gemini returned nil result")
	}

	course := ParseCourse(result.Text())
	if course == "" {
		return nil, larder.Errorf(larder.EINTERNAL, "gemini returned no known course: %q", result.Text())
	}

	tags := []string{course, larder.GuessSeason(recipe.Ingredients)}
	return append(tags, larder.GuessDiets(recipe.Ingredients)...), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The response is constrained to one of the course labels.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify recipes by course. Reply with exactly one of: " +
					strings.Join(larder.CourseLabels, ", ") + ".",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "text/x.enum",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeString,
			Enum: larder.CourseLabels,
		},
	}
}

// BuildTaggingPrompt builds the user prompt from the recipe title and
// raw ingredient lines.
func BuildTaggingPrompt(recipe *larder.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipe Title: %s\n", recipe.Title)
	sb.WriteString("Ingredients:\n")
	for _, line := range recipe.Ingredients {
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	return sb.String()
}

// ParseCourse maps a model reply to a course label, ignoring case,
// surrounding punctuation and quotes. Returns "" for anything else.
func ParseCourse(reply string) string {
	reply = strings.Trim(strings.TrimSpace(reply), "\"'.` \n")
	for _, label := range larder.CourseLabels {
		if strings.EqualFold(reply, label) {
			return label
		}
	}
	return ""
}
