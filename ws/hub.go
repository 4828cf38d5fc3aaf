package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/akinalp/pulse/pkg/metrics"
)

// EventPublisher, service katmanının WebSocket event'leri yaymak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Testlerde kaydedici bir fake kullanılır.
type EventPublisher interface {
	// EmitToRoom, odadaki tüm bağlantılara event gönderir.
	EmitToRoom(room string, event Event)
	// EmitToUser, kullanıcının TÜM bağlantılarına event gönderir
	// (kullanıcı odası üzerinden — birden fazla tab olabilir).
	EmitToUser(userID string, event Event)
	// IsOnline, kullanıcının en az bir açık bağlantısı var mı.
	IsOnline(userID string) bool
	// GetOnlineUserIDs, bağlı tüm kullanıcı ID'lerini döner.
	GetOnlineUserIDs() []string
}

// Hub, tüm WebSocket bağlantılarını ve oda üyeliklerini yöneten merkezi yapı.
//
// İki map tutar:
// - clients: userID → bağlantı seti (bir kullanıcının birden fazla tab'ı olabilir)
// - rooms: oda adı → bağlantı seti ("user:<id>", "conversation:<id>", "post:<id>")
//
// Her bağlantı register olduğunda kendi kullanıcı odasına otomatik katılır.
// Sohbet ve post odalarına client, join event'leri ile katılır.
//
// Hub.Run() tek goroutine'de register/unregister channel'larını dinler;
// map'ler RWMutex ile korunur çünkü Emit* metodları farklı
// goroutine'lerden (HTTP handler, service) çağrılır.
type Hub struct {
	clients map[string]map[*Client]bool
	rooms   map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	seq atomic.Int64

	// Callback'ler — client event'lerinin iş mantığı main.go'da service'lere
	// bağlanır. ws paketi services'i import etmez (circular dependency).
	// Dönen error, SADECE kaynak bağlantıya error event'i olarak gider.
	onSendMessage   func(userID string, raw json.RawMessage) error
	onDeleteMessage func(userID string, messageID int64) error
	onMarkRead      func(userID string, conversationID int64) error

	// onReady, bağlantı kurulduğunda ready event'inin payload'ını üretir.
	onReady func(userID string) (any, error)
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// ─── Callback kayıtları — main.go'da wiring sırasında çağrılır ───

// OnSendMessage, send_message event'inin iş mantığını bağlar.
// Payload ham JSON olarak geçilir — parse ve validation service tarafındadır.
func (h *Hub) OnSendMessage(fn func(userID string, raw json.RawMessage) error) {
	h.onSendMessage = fn
}

// OnDeleteMessage, delete_message event'inin iş mantığını bağlar.
func (h *Hub) OnDeleteMessage(fn func(userID string, messageID int64) error) {
	h.onDeleteMessage = fn
}

// OnMarkRead, mark_read event'inin iş mantığını bağlar.
func (h *Hub) OnMarkRead(fn func(userID string, conversationID int64) error) {
	h.onMarkRead = fn
}

// OnReady, bağlantı kurulduğunda gönderilen ready payload üreticisini bağlar.
func (h *Hub) OnReady(fn func(userID string) (any, error)) {
	h.onReady = fn
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// addClient, yeni bir client'ı Hub'a ekler ve kullanıcı odasına katar.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
		metrics.UsersOnline.Inc()
	}
	h.clients[client.userID][client] = true

	h.joinRoomLocked(client, UserRoom(client.userID))

	metrics.ConnectionsActive.Inc()
	log.Printf("[ws] client connected: user=%s (connections for user: %d)",
		client.userID, len(h.clients[client.userID]))
}

// removeClient, bir client'ı Hub'dan ve tüm odalardan çıkarır.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.closed = true
	close(client.send)
	metrics.ConnectionsActive.Dec()

	for room := range client.rooms {
		h.leaveRoomLocked(client, room)
	}

	if len(clients) == 0 {
		delete(h.clients, client.userID)
		metrics.UsersOnline.Dec()
		log.Printf("[ws] user fully disconnected: %s", client.userID)
	} else {
		log.Printf("[ws] client disconnected: user=%s (remaining: %d)",
			client.userID, len(clients))
	}
}

// JoinRoom, client'ı bir odaya katar. Aynı odaya tekrar katılmak no-op'tur.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinRoomLocked(client, room)
}

// LeaveRoom, client'ı odadan çıkarır. Üye olmadığı odadan ayrılmak no-op'tur.
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(client, room)
}

// joinRoomLocked — h.mu yazma kilidi alınmış olmalı.
func (h *Hub) joinRoomLocked(client *Client, room string) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
		metrics.RoomsActive.Inc()
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
}

// leaveRoomLocked — h.mu yazma kilidi alınmış olmalı.
func (h *Hub) leaveRoomLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	delete(client.rooms, room)

	// Boş oda map'te tutulmaz — oda üyelikten türeyen geçici bir kavramdır.
	if len(members) == 0 {
		delete(h.rooms, room)
		metrics.RoomsActive.Dec()
	}
}

// EmitToRoom, odadaki tüm bağlantılara event gönderir.
// Oda boşsa veya yoksa sessizce no-op — offline alıcı hata değildir.
func (h *Hub) EmitToRoom(room string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for room %s: %v", room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}

	metrics.EventsEmitted.WithLabelValues(event.Op).Inc()

	for client := range members {
		select {
		case client.send <- data:
		default:
			// Buffer dolu — bu client yavaş, bağlantısını düşür.
			metrics.SlowClientsDropped.Inc()
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// EmitToUser, kullanıcının tüm bağlantılarına event gönderir.
// Kullanıcı odası üzerinden çalışır — her bağlantı register'da o odaya katılır.
func (h *Hub) EmitToUser(userID string, event Event) {
	h.EmitToRoom(UserRoom(userID), event)
}

// IsOnline, kullanıcının en az bir açık bağlantısı olup olmadığını döner.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// GetOnlineUserIDs, bağlı olan tüm kullanıcı ID'lerini döner.
func (h *Hub) GetOnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// RoomSize, odadaki bağlantı sayısını döner (testler ve istatistik için).
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.closed = true
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	h.rooms = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
