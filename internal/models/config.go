package models

import "database/sql"

type StoreConfig struct {
	AppName        string `json:"appName"`
	WhatsappNumber string `json:"whatsappNumber"`
}

type ConfigRow struct {
	TradeName sql.NullString
	Phone     sql.NullString
}
