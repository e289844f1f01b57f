// Package insight asks Gemini to comment on a user's payment activity.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/payview"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const instruction = `You are the assistant of a peer to peer payment wallet.
You comment on the activity of the user in a friendly and concise way: at most
five sentences, no financial advice, no made up figures. Amounts are exact,
quote them as given.`

// NewClient creates a Gemini client. Credentials are read from the
// environment (GEMINI_API_KEY, or the Vertex AI variables).
func NewClient(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1beta"},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}
	return client, nil
}

// Prompt describes the activity of a period. The result only depends on its
// arguments, so equal activities give equal prompts.
func Prompt(period string, s payview.Summary, t payview.Trend) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity of the user over %s.\n\n", period)
	fmt.Fprintf(&b, "- %d transactions: %d completed, %d pending, %d failed", s.Count, s.Completed, s.Pending, s.Failed)
	if s.Unknown > 0 {
		fmt.Fprintf(&b, ", %d with an unknown status", s.Unknown)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "- Received %s and sent %s, net flow %s.\n", s.Inflow, s.Outflow, s.NetFlow.SignedString())
	if t.Days > 0 {
		fmt.Fprintf(&b, "- Active on %d of the last %d days.\n", t.ActiveDays, t.Days)
		if t.ActiveDays > 0 {
			fmt.Fprintf(&b, "- Busiest day %s with %s moved.\n", t.Busiest, t.BusiestVolume)
			fmt.Fprintf(&b, "- Average per day: sent %.2f (stddev %.2f), received %.2f (stddev %.2f).\n",
				t.MeanSent, t.StdDevSent, t.MeanReceived, t.StdDevReceived)
		}
	}
	b.WriteString("\nWrite a short narrative of this activity for the user.")
	return b.String()
}

// Narrate asks model for a narrative of prompt.
func Narrate(ctx context.Context, client *genai.Client, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
	}
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("cannot generate narrative: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty narrative from model %s", model)
	}
	return text, nil
}
