package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient, gerçek bir WebSocket bağlantısı olmadan Hub'a eklenebilen
// client oluşturur. Testler send channel'ından event okur.
func newTestClient(h *Hub, userID string) *Client {
	return &Client{
		hub:    h,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]bool),
	}
}

// readEvent, client'ın send channel'ından bir event okuyup parse eder.
func readEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected an event but send buffer is empty")
		return Event{}
	}
}

func TestHub_RegisterJoinsUserRoom(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")

	h.addClient(c)

	assert.True(t, h.IsOnline("alice"))
	assert.Equal(t, 1, h.RoomSize(UserRoom("alice")))
	assert.True(t, c.rooms[UserRoom("alice")])
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "alice")
	c2 := newTestClient(h, "alice")

	h.addClient(c1)
	h.addClient(c2)

	assert.Equal(t, 2, h.RoomSize(UserRoom("alice")))

	// Bir tab kapanınca kullanıcı hala online
	h.removeClient(c1)
	assert.True(t, h.IsOnline("alice"))
	assert.Equal(t, 1, h.RoomSize(UserRoom("alice")))

	// Son bağlantı da kapanınca offline
	h.removeClient(c2)
	assert.False(t, h.IsOnline("alice"))
	assert.Equal(t, 0, h.RoomSize(UserRoom("alice")))
}

func TestHub_JoinAndLeaveRoom(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	room := ConversationRoom(42)
	h.JoinRoom(c, room)
	assert.Equal(t, 1, h.RoomSize(room))

	// Aynı odaya tekrar katılmak no-op
	h.JoinRoom(c, room)
	assert.Equal(t, 1, h.RoomSize(room))

	h.LeaveRoom(c, room)
	assert.Equal(t, 0, h.RoomSize(room))
	assert.False(t, c.rooms[room])

	// Üye olunmayan odadan ayrılmak no-op
	h.LeaveRoom(c, room)
	assert.Equal(t, 0, h.RoomSize(room))
}

func TestHub_DisconnectCleansAllRooms(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	h.JoinRoom(c, ConversationRoom(1))
	h.JoinRoom(c, PostRoom(7))

	h.removeClient(c)

	assert.Equal(t, 0, h.RoomSize(ConversationRoom(1)))
	assert.Equal(t, 0, h.RoomSize(PostRoom(7)))
	assert.Equal(t, 0, h.RoomSize(UserRoom("alice")))
}

func TestHub_EmitToRoom(t *testing.T) {
	h := NewHub()
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	carol := newTestClient(h, "carol")
	h.addClient(alice)
	h.addClient(bob)
	h.addClient(carol)

	room := ConversationRoom(5)
	h.JoinRoom(alice, room)
	h.JoinRoom(bob, room)
	// carol odada değil

	h.EmitToRoom(room, Event{Op: OpNewMessage, Data: map[string]any{"id": 1}})

	evA := readEvent(t, alice)
	evB := readEvent(t, bob)
	assert.Equal(t, OpNewMessage, evA.Op)
	assert.Equal(t, OpNewMessage, evB.Op)
	assert.Empty(t, carol.send, "non-member must not receive room events")
}

func TestHub_EmitToRoom_MissingRoomIsNoop(t *testing.T) {
	h := NewHub()
	assert.NotPanics(t, func() {
		h.EmitToRoom(ConversationRoom(999), Event{Op: OpNewMessage})
	})
}

func TestHub_EmitToUser_ReachesAllConnections(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "alice")
	c2 := newTestClient(h, "alice")
	h.addClient(c1)
	h.addClient(c2)

	h.EmitToUser("alice", Event{Op: OpNotification})

	assert.Equal(t, OpNotification, readEvent(t, c1).Op)
	assert.Equal(t, OpNotification, readEvent(t, c2).Op)
}

func TestHub_SequenceIncreases(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	h.EmitToUser("alice", Event{Op: OpNotification})
	h.EmitToUser("alice", Event{Op: OpNotification})

	first := readEvent(t, c)
	second := readEvent(t, c)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestHub_GetOnlineUserIDs(t *testing.T) {
	h := NewHub()
	h.addClient(newTestClient(h, "alice"))
	h.addClient(newTestClient(h, "bob"))

	ids := h.GetOnlineUserIDs()
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

func TestClient_HandleEvent_JoinConversation(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	data, _ := json.Marshal(JoinConversationData{ConversationID: 3})
	c.handleEvent(inboundEvent{Op: OpJoinConversation, Data: data})

	assert.Equal(t, 1, h.RoomSize(ConversationRoom(3)))
}

func TestClient_HandleEvent_InvalidJoinSendsError(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	c.handleEvent(inboundEvent{Op: OpJoinConversation, Data: json.RawMessage(`{"conversationId":0}`)})

	ev := readEvent(t, c)
	assert.Equal(t, OpError, ev.Op)
}

func TestClient_HandleEvent_JoinAndLeavePost(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	join, _ := json.Marshal(JoinPostData{PostID: 9})
	c.handleEvent(inboundEvent{Op: OpJoinPost, Data: join})
	assert.Equal(t, 1, h.RoomSize(PostRoom(9)))

	c.handleEvent(inboundEvent{Op: OpLeavePost, Data: join})
	assert.Equal(t, 0, h.RoomSize(PostRoom(9)))
}

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "user:abc", UserRoom("abc"))
	assert.Equal(t, "conversation:12", ConversationRoom(12))
	assert.Equal(t, "post:7", PostRoom(7))
}

func TestClient_SendMessageCallbackErrorGoesToOriginOnly(t *testing.T) {
	h := NewHub()
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.addClient(alice)
	h.addClient(bob)

	called := make(chan string, 1)
	h.OnSendMessage(func(userID string, raw json.RawMessage) error {
		called <- userID
		return assert.AnError
	})

	c := alice
	c.handleEvent(inboundEvent{Op: OpSendMessage, Data: json.RawMessage(`{"conversationId":1,"content":"hi"}`)})

	assert.Equal(t, "alice", <-called)

	// Callback senkron koşar — error event handleEvent dönmeden yazılmıştır.
	ev := readEvent(t, alice)
	assert.Equal(t, OpError, ev.Op)
	assert.Empty(t, bob.send, "other clients must not see the error")
}

func TestClient_EventsProcessedInArrivalOrder(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	var processed []string
	h.OnSendMessage(func(userID string, raw json.RawMessage) error {
		var data struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal(raw, &data))
		if len(processed) == 0 {
			// İlk mesajın işlenmesi yavaş olsa bile ikinci mesaj onu
			// geçemez — callback read pump üzerinde senkron koşar.
			time.Sleep(20 * time.Millisecond)
		}
		processed = append(processed, data.Content)
		return nil
	})

	c.handleEvent(inboundEvent{Op: OpSendMessage, Data: json.RawMessage(`{"conversationId":1,"content":"first"}`)})
	c.handleEvent(inboundEvent{Op: OpSendMessage, Data: json.RawMessage(`{"conversationId":1,"content":"second"}`)})

	assert.Equal(t, []string{"first", "second"}, processed)
}

func TestClient_SendEventAfterDisconnectIsDropped(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)
	h.removeClient(c)

	// Bağlantı düştükten sonra tamamlanan bir işlem hala bu client'a
	// error yazmayı deneyebilir. Kapalı channel'a yazmak process'i
	// çökertir — sendEvent bunun yerine event'i düşürmeli.
	assert.NotPanics(t, func() {
		c.sendError("operation failed")
	})
	assert.NotPanics(t, func() {
		c.sendEvent(Event{Op: OpHeartbeatAck})
	})

	_, open := <-c.send
	assert.False(t, open, "send channel stays closed, no event leaks in")
}

func TestClient_SendEventAfterShutdownIsDropped(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)
	h.Shutdown()

	assert.NotPanics(t, func() {
		c.sendError("operation failed")
	})
}

func TestClient_DeleteMessageInvalidID(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)
	h.OnDeleteMessage(func(userID string, messageID int64) error { return nil })

	c.handleEvent(inboundEvent{Op: OpDeleteMessage, Data: json.RawMessage(`{"messageId":-1}`)})

	ev := readEvent(t, c)
	assert.Equal(t, OpError, ev.Op)
}

func TestHub_Shutdown(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "alice")
	h.addClient(c)

	h.Shutdown()

	_, open := <-c.send
	assert.False(t, open, "send channel must be closed after shutdown")
	assert.False(t, h.IsOnline("alice"))
}
