package models

import "fmt"

// ChatMessage is a single turn of a conversation sent to a model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles accepted in history entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// BuildMessages merges an existing chat history with the latest user prompt.
// Every history entry must carry a recognized role and non-empty content;
// message order is preserved and the new prompt is appended last as a user
// message.
func BuildMessages(prompt string, history []ChatMessage) ([]ChatMessage, error) {
	messages := make([]ChatMessage, 0, len(history)+1)

	for i, item := range history {
		if item.Role == "" || item.Content == "" {
			return nil, fmt.Errorf("history entry %d must have both role and content", i)
		}
		switch item.Role {
		case RoleUser, RoleAssistant, RoleSystem:
		default:
			return nil, fmt.Errorf("unsupported role in history: %s", item.Role)
		}
		messages = append(messages, item)
	}

	messages = append(messages, ChatMessage{Role: RoleUser, Content: prompt})
	return messages, nil
}
