package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferType constants
const (
	OfferTypeCoinPackage = "coin_package"
	OfferTypeDiscount    = "discount"
	OfferTypeBundle      = "bundle"
)

// Offer is a purchasable package. Only coin_package offers settle through the
// wallet; the price is fiat, CoinsAwarded is what lands in the wallet.
type Offer struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	OfferType     string          `json:"offer_type" gorm:"default:coin_package"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Currency      string          `json:"currency" gorm:"default:INR"`
	CoinsAwarded  int             `json:"coins_awarded" gorm:"default:0"`
	LevelMin      int             `json:"level_min" gorm:"default:1"`
	DiscountCoins int             `json:"discount_coins" gorm:"default:0"`
	StartTime     *time.Time      `json:"start_time"`
	EndTime       *time.Time      `json:"end_time"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
}
