package models

import "gorm.io/gorm"

// PaymentGatewaySettings is a singleton row controlling which payment methods
// are offered and with what gateway credentials. Auto-created on first read.
type PaymentGatewaySettings struct {
	gorm.Model
	PayLaterEnabled bool `json:"pay_later_enabled" gorm:"default:true"`

	SSLCommerzEnabled       bool   `json:"sslcommerz_enabled" gorm:"default:false"`
	SSLCommerzStoreID       string `json:"sslcommerz_store_id"`
	SSLCommerzStorePassword string `json:"-"`
	SSLCommerzIsLive        bool   `json:"sslcommerz_is_live" gorm:"default:false"`

	BkashEnabled  bool   `json:"bkash_enabled" gorm:"default:false"`
	BkashAppKey   string `json:"bkash_app_key"`
	BkashAppSecret string `json:"-"`
	BkashUsername string `json:"bkash_username"`
	BkashPassword string `json:"-"`
	BkashIsLive   bool   `json:"bkash_is_live" gorm:"default:false"`
}
