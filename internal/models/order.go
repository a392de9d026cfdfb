package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	OrderNo       string     `gorm:"size:32;uniqueIndex;not null" json:"order_no"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Status        string     `gorm:"size:20;index;not null" json:"status"`
	TotalPrice    Money      `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	FullName      string     `gorm:"size:100;not null" json:"full_name"`
	Email         string     `gorm:"size:254" json:"email"`
	Phone         string     `gorm:"size:20;not null" json:"phone"`
	City          string     `gorm:"size:100;not null" json:"city"`
	Address       string     `gorm:"type:text;not null" json:"address"`
	PostalCode    string     `gorm:"size:20" json:"postal_code"`
	PaymentMethod string     `gorm:"size:20;not null" json:"payment_method"`
	IsPaid        bool       `gorm:"not null;default:false" json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ItemCount 订单商品件数
func (o *Order) ItemCount() int {
	if o == nil {
		return 0
	}
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
