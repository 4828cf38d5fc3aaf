package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/akinalp/pulse/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services.AuthService yerine kendi interface'imizi tanımlıyoruz çünkü
// services paketi ws.EventPublisher'ı kullanıyor — ws, services'i import
// etseydi döngü oluşurdu. Handler'ın zaten sadece token doğrulamaya
// ihtiyacı var; authService bu interface'i implicit olarak karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: CORS katmanı HTTP tarafında uygulanıyor; WS el sıkışması
	// için tüm origin'lere izin verilir, kimlik zaten token ile doğrulanır.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı
// Hub'a kaydeder.
//
// Akış:
// 1. Token'ı bul (query > Authorization header > cookie) ve doğrula
// 2. HTTP → WebSocket upgrade
// 3. Client oluştur, Hub'a kaydet — kullanıcı odasına otomatik katılır
// 4. ready event'ini gönder (okunmamış sayıları)
// 5. ReadPump ve WritePump goroutine'lerini başlat
//
// Doğrulama upgrade'den ÖNCE yapılır: geçersiz token'a 401 dönülür,
// bağlantı hiç yükseltilmez.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.UserID,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]bool),
	}

	h.hub.register <- client

	if h.hub.onReady != nil {
		if data, err := h.hub.onReady(claims.UserID); err == nil {
			client.sendEvent(Event{Op: OpReady, Data: data})
		}
	}

	go client.WritePump()
	client.ReadPump() // bağlantı kapanana kadar bloklar
}

// extractToken, JWT'yi sırasıyla query parametresi, Authorization header'ı
// ve access_token cookie'sinden arar.
//
// Tarayıcı WebSocket API'si custom header göndermeye izin vermez — bu
// yüzden öncelik query parametresidir: ws://server/ws?token=JWT
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
