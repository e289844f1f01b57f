package insight

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Chat is an interactive question and answer session about an activity.
type Chat struct {
	w       io.Writer
	r       *bufio.Reader
	Model   string
	Context string // the activity the conversation is about, see Prompt
	chat    *genai.Chat
}

// NewChat creates a chat reading questions from r and writing answers to w.
func NewChat(w io.Writer, r io.Reader, activity string) *Chat {
	return &Chat{
		w:       w,
		r:       bufio.NewReader(r),
		Model:   DefaultModel,
		Context: activity,
	}
}

// Start creates the Gemini chat.
func (c *Chat) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction + "\n\n" + c.Context}}},
	}
	chat, err := client.Chats.Create(ctx, c.Model, config, nil)
	if err != nil {
		return fmt.Errorf("cannot start chat: %w", err)
	}
	c.chat = chat
	return nil
}

// Ask sends one question and returns the answer.
func (c *Chat) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("no answer from model %s", c.Model)
	}
	return answer, nil
}

const prompt = "insight> "

// Run starts the interactive session. Questions are first taken from
// questions, then read from the reader until "bye" or end of input.
func (c *Chat) Run(ctx context.Context, client *genai.Client, questions ...string) error {
	if c.chat == nil {
		if err := c.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.w, "Ask anything about this activity. Type 'bye' to exit.")

	for {
		fmt.Fprint(c.w, prompt)
		var input string

		// Flush questions from the list and then ask the user.
		if len(questions) > 0 {
			input, questions = questions[0], questions[1:]
			fmt.Fprintln(c.w, input)
		} else {
			var err error
			input, err = c.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
				if err == io.EOF {
					fmt.Fprintln(c.w)
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		answer, err := c.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.w, answer)
	}
}
