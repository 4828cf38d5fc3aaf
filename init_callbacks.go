// Package main — WebSocket Hub callback wire-up.
//
// registerHubCallbacks, Hub'ın mesaj/okuma callback'lerini ayarlar.
//
// Bu callback'ler neden burada (main package'da)?
// Hub ws paketinde yaşıyor, ama kalıcılaştırma service katmanında.
// Hub'ın service'lere bağımlı olmasını istemiyoruz (Dependency Inversion).
// main package wire-up noktasıdır — tüm katmanları birbirine bağlar.
//
// Callback'ler client'ın read pump'ı üzerinde senkron çağrılır:
// aynı bağlantıdan gelen event'ler geldikleri sırayla işlenir.
// Callback error dönerse client'a error event'i gider — sadece o client'a.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/services"
	"github.com/akinalp/pulse/ws"
)

// registerHubCallbacks, tüm Hub callback'lerini register eder.
//
// context.Background() kullanılır çünkü callback'in yaşam süresi HTTP
// request'e değil WebSocket bağlantısına bağlıdır — request context'i
// çoktan kapanmış olabilir.
func registerHubCallbacks(
	hub *ws.Hub,
	messageService services.MessageService,
	readStateService services.ReadStateService,
) {
	hub.OnSendMessage(func(userID string, raw json.RawMessage) error {
		var req models.SendMessageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("invalid send_message payload")
		}

		_, err := messageService.Send(context.Background(), userID, &req)
		return err
	})

	hub.OnDeleteMessage(func(userID string, messageID int64) error {
		return messageService.Delete(context.Background(), userID, messageID)
	})

	hub.OnMarkRead(func(userID string, conversationID int64) error {
		// mark_read sessiz başarısız olur: geçersiz sohbet için client'a
		// error event'i göndermenin faydası yok, UI zaten bir şey beklemiyor.
		err := readStateService.MarkConversationRead(context.Background(), userID, conversationID)
		if err != nil {
			log.Printf("[ws] mark_read failed for user %s conversation %d: %v", userID, conversationID, err)
		}
		return nil
	})

	hub.OnReady(func(userID string) (any, error) {
		return readStateService.ReadyPayload(context.Background(), userID)
	})
}
