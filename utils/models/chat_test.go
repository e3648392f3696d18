package models

import (
	"strings"
	"testing"
)

func TestBuildMessages(t *testing.T) {
	tests := []struct {
		name          string
		prompt        string
		history       []ChatMessage
		expectedLen   int
		expectedError string
	}{
		{
			name:        "no history",
			prompt:      "hello",
			history:     nil,
			expectedLen: 1,
		},
		{
			name:   "history preserved in order",
			prompt: "third",
			history: []ChatMessage{
				{Role: RoleSystem, Content: "first"},
				{Role: RoleAssistant, Content: "second"},
			},
			expectedLen: 3,
		},
		{
			name:   "missing content",
			prompt: "hello",
			history: []ChatMessage{
				{Role: RoleUser, Content: ""},
			},
			expectedError: "must have both role and content",
		},
		{
			name:   "missing role",
			prompt: "hello",
			history: []ChatMessage{
				{Role: "", Content: "text"},
			},
			expectedError: "must have both role and content",
		},
		{
			name:   "unsupported role",
			prompt: "hello",
			history: []ChatMessage{
				{Role: "tool", Content: "text"},
			},
			expectedError: "unsupported role in history: tool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := BuildMessages(tt.prompt, tt.history)
			if tt.expectedError != "" {
				if err == nil {
					t.Fatal("BuildMessages() expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("BuildMessages() error = %v, want error containing %q", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildMessages() unexpected error: %v", err)
			}
			if len(messages) != tt.expectedLen {
				t.Fatalf("BuildMessages() returned %d messages, want %d", len(messages), tt.expectedLen)
			}
			last := messages[len(messages)-1]
			if last.Role != RoleUser || last.Content != tt.prompt {
				t.Errorf("BuildMessages() last message = %+v, want user prompt %q", last, tt.prompt)
			}
			for i, h := range tt.history {
				if messages[i] != h {
					t.Errorf("BuildMessages() message %d = %+v, want %+v (order must be preserved)", i, messages[i], h)
				}
			}
		})
	}
}
