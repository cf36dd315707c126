package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibely-app/vibely-backend/config"
	"github.com/vibely-app/vibely-backend/models"
	"gorm.io/gorm"
)

// ListActiveOffers returns offers that are active and inside their time
// window. A nil start or end leaves that side unbounded.
func ListActiveOffers() ([]models.Offer, error) {
	now := time.Now()
	var offers []models.Offer
	err := config.DB.
		Where("is_active = ?", true).
		Where("start_time IS NULL OR start_time <= ?", now).
		Where("end_time IS NULL OR end_time >= ?", now).
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// PurchaseOffer settles a coin package directly: the offer figures are
// trusted as validated, so the completed Payment row and the purchase credit
// are written in one transaction without an external gateway round trip.
func PurchaseOffer(userID, offerID uint) (*models.Payment, error) {
	var offer models.Offer
	if err := config.DB.Where("id = ? AND is_active = ?", offerID, true).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if offer.OfferType != models.OfferTypeCoinPackage {
		return nil, ErrNotCoinPackage
	}
	if offer.CoinsAwarded <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := models.Payment{
		UserID:          userID,
		Amount:          offer.Price,
		Currency:        offer.Currency,
		RazorpayOrderID: fmt.Sprintf("OFFER_%d_%d", offer.ID, userID),
		Status:          models.PaymentStatusCompleted,
		CoinsAdded:      offer.CoinsAwarded,
	}

	var wallet *models.Wallet
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		w, err := getOrCreateWallet(tx, userID)
		if err != nil {
			return err
		}
		w, err = applyDelta(tx, w.ID, offer.CoinsAwarded, models.TransactionTypeCredit, models.CategoryPurchase,
			fmt.Sprintf("Purchased Package: %s", offer.Title))
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishLedgerEvent(wallet, models.TransactionTypeCredit, models.CategoryPurchase, offer.CoinsAwarded, offer.Title)
	return &payment, nil
}
