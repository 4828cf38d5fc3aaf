package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("bbb", "aaa")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "bbb", b)

	// Zaten sıralıysa değişmez
	a, b = CanonicalPair("aaa", "bbb")
	assert.Equal(t, "aaa", a)
	assert.Equal(t, "bbb", b)
}

func TestConversation_OtherUserID(t *testing.T) {
	c := Conversation{User1ID: "alice", User2ID: "bob"}
	assert.Equal(t, "bob", c.OtherUserID("alice"))
	assert.Equal(t, "alice", c.OtherUserID("bob"))
}

func TestConversation_HasParticipant(t *testing.T) {
	c := Conversation{User1ID: "alice", User2ID: "bob"}
	assert.True(t, c.HasParticipant("alice"))
	assert.True(t, c.HasParticipant("bob"))
	assert.False(t, c.HasParticipant("mallory"))
}

func TestSendMessageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr bool
	}{
		{
			name:    "text only",
			req:     SendMessageRequest{ConversationID: 1, Content: strPtr("hello")},
			wantErr: false,
		},
		{
			name:    "image only",
			req:     SendMessageRequest{ConversationID: 1, ImageURL: strPtr("https://cdn/img.png")},
			wantErr: false,
		},
		{
			name:    "video only",
			req:     SendMessageRequest{ConversationID: 1, VideoURL: strPtr("https://cdn/v.mp4")},
			wantErr: false,
		},
		{
			name:    "all empty",
			req:     SendMessageRequest{ConversationID: 1},
			wantErr: true,
		},
		{
			name:    "whitespace-only content counts as empty",
			req:     SendMessageRequest{ConversationID: 1, Content: strPtr("   \t\n")},
			wantErr: true,
		},
		{
			name:    "whitespace content but image present",
			req:     SendMessageRequest{ConversationID: 1, Content: strPtr("  "), ImageURL: strPtr("https://cdn/x.png")},
			wantErr: false,
		},
		{
			name:    "missing conversation id",
			req:     SendMessageRequest{Content: strPtr("hi")},
			wantErr: true,
		},
		{
			name:    "content at limit",
			req:     SendMessageRequest{ConversationID: 1, Content: strPtr(strings.Repeat("a", MaxMessageLength))},
			wantErr: false,
		},
		{
			name:    "content over limit",
			req:     SendMessageRequest{ConversationID: 1, Content: strPtr(strings.Repeat("a", MaxMessageLength+1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateConversationRequest_Validate(t *testing.T) {
	assert.Error(t, (&CreateConversationRequest{}).Validate())
	assert.Error(t, (&CreateConversationRequest{UserID: "   "}).Validate())
	assert.NoError(t, (&CreateConversationRequest{UserID: "bob"}).Validate())
}

func TestMessage_SerializesCamelCase(t *testing.T) {
	m := Message{
		ID:             1,
		ConversationID: 5,
		SenderID:       "alice",
		Content:        strPtr("selam"),
		ImageURL:       strPtr("https://cdn.example/i.png"),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	// new_message payload'ı diğer WS event'leriyle aynı casing'i taşır.
	body := string(data)
	assert.Contains(t, body, `"conversationId":5`)
	assert.Contains(t, body, `"senderId":"alice"`)
	assert.Contains(t, body, `"imageUrl"`)
	assert.Contains(t, body, `"isRead"`)
	assert.Contains(t, body, `"createdAt"`)
	assert.NotContains(t, body, "conversation_id")
	assert.NotContains(t, body, "sender_id")
}
