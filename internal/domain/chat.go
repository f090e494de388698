package domain

// ChatMessage is a single prompt message handed to the model client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
