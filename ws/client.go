package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: Client'ın heartbeat göndermesi için beklenen maksimum süre.
	// 3 heartbeat kaçırma = 30s × 3 = 90s.
	pongWait = 90 * time.Second

	// maxMessageSize: Client'ın gönderebileceği maksimum mesaj boyutu (byte).
	maxMessageSize = 8192

	// sendBufferSize: Her client'ın send channel'ının buffer boyutu.
	// Buffer dolarsa client yavaş demektir — bağlantı düşürülür.
	sendBufferSize = 256
)

// Client, tek bir WebSocket bağlantısını temsil eder.
//
// Her bağlantı için iki goroutine çalışır:
// - ReadPump: Client'dan gelen event'leri okur ve işler
// - WritePump: send channel'ından gelen veriyi WebSocket'e yazar
//
// gorilla/websocket aynı anda tek okuma ve tek yazma destekler —
// iki ayrı goroutine bu yüzden gereklidir.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	// send, client'a gidecek marshal edilmiş event'lerin buffer'ı.
	send chan []byte

	// rooms, bu bağlantının üye olduğu odalar. SADECE hub.mu altında
	// değiştirilir — disconnect'te oda temizliği için tutulur.
	rooms map[string]bool

	// closed, send channel'ının kapatıldığını işaretler. Hub, channel'ı
	// kapatmadan önce bu flag'i hub.mu yazma kilidi altında set eder;
	// sendEvent okuma kilidi altında kontrol eder. Böylece disconnect
	// sonrası tamamlanan bir işlem kapalı channel'a yazamaz.
	closed bool

	mu sync.Mutex // conn.WriteMessage çağrılarını korur
}

// ReadPump, WebSocket bağlantısından gelen event'leri okur ve işler.
// Bağlantı kapanana kadar bloklar; kapanınca Hub'dan çıkış yapar.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	// Heartbeat gelmezse Read hata verir; her heartbeat deadline'ı yeniler.
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", c.userID, err)
			}
			return
		}

		var event inboundEvent
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from user %s: %v", c.userID, err)
			continue
		}

		c.handleEvent(event)
	}
}

// inboundEvent, client'dan gelen ham event. Data parse edilmeden tutulur —
// her op kendi payload tipine çevirir.
type inboundEvent struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"d"`
}

// handleEvent, client'dan gelen event'leri türüne göre işler.
//
// Oda katılımları Hub üzerinde senkron yapılır. İş mantığı gerektiren
// op'lar (send_message, delete_message, mark_read) callback ile service
// katmanına devredilir — callback read pump üzerinde senkron koşar:
// aynı bağlantıdan gelen event'ler geldikleri sırayla işlenir ve biri
// bitmeden sonraki başlamaz. Callback error dönerse error event'i
// SADECE bu bağlantıya gider.
func (c *Client) handleEvent(event inboundEvent) {
	switch event.Op {
	case OpHeartbeat:
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	case OpJoinConversation:
		var data JoinConversationData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID <= 0 {
			c.sendError("invalid conversation id")
			return
		}
		c.hub.JoinRoom(c, ConversationRoom(data.ConversationID))

	case OpJoinPost:
		var data JoinPostData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.PostID <= 0 {
			c.sendError("invalid post id")
			return
		}
		c.hub.JoinRoom(c, PostRoom(data.PostID))

	case OpLeavePost:
		var data JoinPostData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.PostID <= 0 {
			return
		}
		c.hub.LeaveRoom(c, PostRoom(data.PostID))

	case OpSendMessage:
		if c.hub.onSendMessage == nil {
			return
		}
		if err := c.hub.onSendMessage(c.userID, event.Data); err != nil {
			c.sendError(err.Error())
		}

	case OpDeleteMessage:
		var data DeleteMessageData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.MessageID <= 0 {
			c.sendError("invalid message id")
			return
		}
		if c.hub.onDeleteMessage == nil {
			return
		}
		if err := c.hub.onDeleteMessage(c.userID, data.MessageID); err != nil {
			c.sendError(err.Error())
		}

	case OpMarkRead:
		var data MarkReadData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID <= 0 {
			c.sendError("invalid conversation id")
			return
		}
		if c.hub.onMarkRead == nil {
			return
		}
		if err := c.hub.onMarkRead(c.userID, data.ConversationID); err != nil {
			c.sendError(err.Error())
		}

	default:
		log.Printf("[ws] unknown op from user %s: %s", c.userID, event.Op)
	}
}

// sendError, SADECE bu bağlantıya error event'i gönderir.
// Odaya yayılmaz — başka kullanıcılar başkasının hatasını görmez.
func (c *Client) sendError(message string) {
	c.sendEvent(Event{Op: OpError, Data: ErrorData{Message: message}})
}

// sendEvent, client'a tek bir event gönderir.
func (c *Client) sendEvent(event Event) {
	event.Seq = c.hub.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", c.userID, err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if c.closed {
		// Hub bu client'ı çoktan çıkardı — alıcı yok, event düşer.
		return
	}

	select {
	case c.send <- data:
	default:
		// Buffer dolu — client muhtemelen donmuş, bağlantıyı kapat.
		// unregister, Run üzerinden hub.mu yazma kilidi ister; burada
		// okuma kilidi tutulduğu için ayrı goroutine'den gönderilir.
		log.Printf("[ws] send buffer full for user %s, dropping connection", c.userID)
		go func() { c.hub.unregister <- c }()
	}
}

// WritePump, send channel'ından gelen veriyi WebSocket bağlantısına yazar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel kapatıldı — Hub client'ı çıkardı.
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, WebSocket'e mesaj yazar. gorilla/websocket conn'a aynı anda
// birden fazla yazma yasak — mutex ile korunur.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
