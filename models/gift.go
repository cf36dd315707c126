package models

import (
	"time"
)

// Gift is a catalog entry describing a sendable gift and its coin cost.
type Gift struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Cost      int       `json:"cost" gorm:"default:10"`
	CreatedAt time.Time `json:"created_at"`
}

// GiftTransaction records one gift send. Every row pairs with exactly two
// CoinTransaction rows: a gift_sent debit and a gift_received credit.
type GiftTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	Sender     User      `json:"-" gorm:"foreignKey:SenderID"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	Receiver   User      `json:"-" gorm:"foreignKey:ReceiverID"`
	GiftID     uint      `json:"gift_id"`
	Gift       Gift      `json:"-" gorm:"foreignKey:GiftID"`
	CreatedAt  time.Time `json:"created_at"`
}
