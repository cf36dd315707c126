package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vibely-app/vibely-backend/models"
	"github.com/vibely-app/vibely-backend/utils"
	kafka "github.com/segmentio/kafka-go"
)

// LedgerEvent is emitted after every committed balance mutation so other
// modules (notifications, analytics) can react without polling the ledger.
type LedgerEvent struct {
	UserID      uint      `json:"user_id"`
	WalletID    uint      `json:"wallet_id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      int       `json:"amount"`
	Balance     int       `json:"balance"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher delivers ledger events to interested consumers.
type EventPublisher interface {
	Publish(event LedgerEvent) error
}

// NoopPublisher drops events. Used when no broker is configured and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(LedgerEvent) error { return nil }

// KafkaPublisher writes ledger events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the coin_transactions topic.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        "coin_transactions",
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(event LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(context.Background(), kafka.Message{Value: data})
}

var publisher EventPublisher = NoopPublisher{}

// SetEventPublisher installs the publisher used for ledger events.
func SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = NoopPublisher{}
	}
	publisher = p
}

// publishLedgerEvent is best-effort: the mutation has already committed, so a
// delivery failure is logged and otherwise ignored.
func publishLedgerEvent(wallet *models.Wallet, txnType, category string, amount int, description string) {
	if wallet == nil {
		return
	}
	event := LedgerEvent{
		UserID:      wallet.UserID,
		WalletID:    wallet.ID,
		Type:        txnType,
		Category:    category,
		Amount:      amount,
		Balance:     wallet.CoinBalance,
		Description: description,
		OccurredAt:  time.Now(),
	}
	if err := publisher.Publish(event); err != nil {
		utils.LogError("Failed to publish ledger event for wallet ID: %d: %v", wallet.ID, err)
	}
}
