package domain

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
