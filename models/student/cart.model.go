package student

import "gorm.io/gorm"

// Cart is one per user.
type Cart struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex"`
}

// CartItem holds a course in a cart; a course appears at most once per cart.
type CartItem struct {
	gorm.Model
	CartID   uint `json:"cart_id" gorm:"not null;uniqueIndex:idx_cart_item_cart_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_cart_item_cart_course"`
}
