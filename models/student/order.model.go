package student

import (
	"time"

	"gorm.io/gorm"
)

// Order is created unpaid with the gateway's external order id and the total
// in paise. It either transitions to paid through signature verification or
// stays abandoned; there is no cancelled state.
type Order struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	GatewayOrderID   string `json:"gateway_order_id" gorm:"uniqueIndex"`
	AmountPaise      int64  `json:"amount_paise"`
	IsPaid           bool   `json:"is_paid" gorm:"default:false"`
	DirectBuy        bool   `json:"direct_buy" gorm:"default:false"`
	PaymentID        string `json:"payment_id"`
	PaymentSignature string `json:"payment_signature"`
}

// OrderItem lists one paid course covered by an order.
type OrderItem struct {
	gorm.Model
	OrderID  uint `json:"order_id" gorm:"index;not null"`
	CourseID uint `json:"course_id" gorm:"not null"`
}

// Payment is the one-to-one settlement receipt, written only after the
// gateway signature verified.
type Payment struct {
	gorm.Model
	OrderID          uint      `json:"order_id" gorm:"not null;uniqueIndex"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	GatewaySignature string    `json:"gateway_signature"`
	PaidAt           time.Time `json:"paid_at"`
}

// PurchasedCourse is the sole source of truth for course ownership.
type PurchasedCourse struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_purchase_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_purchase_user_course"`
}
