// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları ve odaları yöneten merkezi yapı
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı (mesaj örneği):
// 1. Client send_message event'i gönderir
// 2. Client.handleEvent → Hub callback'i → Service → DB kayıt
// 3. Service, Hub'ın EmitToRoom metodunu "conversation:<id>" odasına çağırır
// 4. Odadaki her client'ın WritePump'ı event'i WebSocket'e yazar
package ws

import "fmt"

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "new_message", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// ────────────────────────────────────────────
// Operation sabitleri
// ────────────────────────────────────────────

// Client → Server operasyonları
const (
	OpHeartbeat        = "heartbeat"         // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
	OpJoinConversation = "join_conversation" // Sohbet odasına katıl
	OpJoinPost         = "join_post"         // Post odasına katıl (canlı beğeni/yorum için)
	OpLeavePost        = "leave_post"        // Post odasından ayrıl
	OpSendMessage      = "send_message"      // Mesaj gönder
	OpDeleteMessage    = "delete_message"    // Kendi mesajını sil
	OpMarkRead         = "mark_read"         // Sohbetteki karşı taraf mesajlarını okundu işaretle
)

// Server → Client operasyonları
const (
	OpReady          = "ready"           // Bağlantı kurulduğunda ilk gönderilen — okunmamış sayıları
	OpHeartbeatAck   = "heartbeat_ack"   // Heartbeat'e yanıt
	OpError          = "error"           // İşlem hatası — SADECE kaynak bağlantıya gider
	OpNewMessage     = "new_message"     // Yeni mesaj — sohbet odasına
	OpMessageDeleted = "message_deleted" // Mesaj silindi — sohbet odasına
	OpMessageRead    = "message_read"    // Mesajlar okundu — sohbet odasına
	OpNotification   = "notification"    // Bildirim — alıcının kullanıcı odasına

	// Post odasına canlı güncellemeler — postu açık tutan herkes görür.
	OpPostLikeUpdated    = "post_like_updated"
	OpPostCommentCreated = "post_comment_created"
)

// ────────────────────────────────────────────
// Oda isimleri
// ────────────────────────────────────────────
//
// Her bağlantı kendi kullanıcı odasına otomatik katılır; sohbet ve post
// odalarına client istek ile katılır. Oda isimleri "<tür>:<id>" formatındadır.

// UserRoom, kullanıcıya özel odanın adı. Bildirimler buraya gider.
func UserRoom(userID string) string {
	return "user:" + userID
}

// ConversationRoom, sohbet odasının adı.
func ConversationRoom(conversationID int64) string {
	return fmt.Sprintf("conversation:%d", conversationID)
}

// PostRoom, post odasının adı.
func PostRoom(postID int64) string {
	return fmt.Sprintf("post:%d", postID)
}

// ────────────────────────────────────────────
// Payload struct'ları
// ────────────────────────────────────────────
//
// JSON tag'leri frontend'in kullandığı camelCase alanlarla eşleşir.

// JoinConversationData, join_conversation payload'ı.
type JoinConversationData struct {
	ConversationID int64 `json:"conversationId"`
}

// JoinPostData, join_post ve leave_post payload'ı.
type JoinPostData struct {
	PostID int64 `json:"postId"`
}

// DeleteMessageData, delete_message payload'ı.
type DeleteMessageData struct {
	MessageID int64 `json:"messageId"`
}

// MarkReadData, mark_read payload'ı.
type MarkReadData struct {
	ConversationID int64 `json:"conversationId"`
}

// MessageDeletedData, message_deleted event payload'ı.
type MessageDeletedData struct {
	MessageID      int64 `json:"messageId"`
	ConversationID int64 `json:"conversationId"`
}

// MessageReadData, message_read event payload'ı.
// ReadBy: okuma işlemini yapan kullanıcı — karşı taraf bununla kendi
// mesajlarını okundu olarak işaretler.
type MessageReadData struct {
	ConversationID int64  `json:"conversationId"`
	ReadBy         string `json:"readBy"`
}

// ErrorData, error event payload'ı.
type ErrorData struct {
	Message string `json:"message"`
}

// ReadyData, ready event payload'ı — bağlantı sonrası ilk durum.
type ReadyData struct {
	UserID              string `json:"userId"`
	UnreadNotifications int    `json:"unreadNotifications"`
	UnreadMessages      int    `json:"unreadMessages"`
}
