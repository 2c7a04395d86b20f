package chat

import (
	"strings"

	"rag-console/internal/model"
)

const ThinkingText = "Thinking..."

// Entry is one line of the transcript. Thinking entries are placeholders for
// a reply still in flight and never carry a sender of their own.
type Entry struct {
	Message  model.ChatMessage
	Thinking bool
}

// Transcript is the on-screen message log. It is owned by one event loop.
type Transcript struct {
	entries  []Entry
	revision int
}

// Begin trims input and, if anything is left, appends the user message and a
// thinking placeholder. ok is false when there is nothing to send.
func (t *Transcript) Begin(input string) (prompt string, ok bool) {
	prompt = strings.TrimSpace(input)
	if prompt == "" {
		return "", false
	}
	t.push(Entry{Message: model.ChatMessage{Text: prompt, Sender: model.SenderUser}})
	t.push(Entry{Message: model.ChatMessage{Text: ThinkingText, Sender: model.SenderAI}, Thinking: true})
	return prompt, true
}

// Resolve drops the oldest outstanding placeholder and appends text as the AI reply.
func (t *Transcript) Resolve(text string) {
	for i, e := range t.entries {
		if e.Thinking {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	t.push(Entry{Message: model.ChatMessage{Text: text, Sender: model.SenderAI}})
}

func (t *Transcript) Pending() int {
	n := 0
	for _, e := range t.entries {
		if e.Thinking {
			n++
		}
	}
	return n
}

func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Messages returns the settled messages, placeholders excluded.
func (t *Transcript) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(t.entries))
	for _, e := range t.entries {
		if !e.Thinking {
			out = append(out, e.Message)
		}
	}
	return out
}

// Revision changes on every insertion; views scroll to the bottom when it moves.
func (t *Transcript) Revision() int {
	return t.revision
}

func (t *Transcript) push(e Entry) {
	t.entries = append(t.entries, e)
	t.revision++
}
