package model

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage lives only on screen; nothing stores it.
type ChatMessage struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
