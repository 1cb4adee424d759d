package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	DBDSN       string
	APIBaseURL  string
	OrdersPath  string
	ShippingFee decimal.Decimal
	LogFile     string
}

func Load() Config {
	// Optional .env in the working directory; real env vars win.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "expirapp.db"
	} // sqlite file in project root
	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8081/api/v1"
	}
	// The backend has answered on both /orders and /orders/ over time;
	// the path is config so a deploy can follow whichever is live.
	ordersPath := os.Getenv("ORDERS_PATH")
	if ordersPath == "" {
		ordersPath = "/orders"
	}
	fee, err := decimal.NewFromString(os.Getenv("SHIPPING_FEE"))
	if err != nil {
		fee = decimal.NewFromInt(5000)
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		APIBaseURL:  apiBase,
		OrdersPath:  ordersPath,
		ShippingFee: fee,
		LogFile:     logFile,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s API_BASE_URL=%s ORDERS_PATH=%s SHIPPING_FEE=%s",
		cfg.Port, cfg.DBDSN, cfg.APIBaseURL, cfg.OrdersPath, cfg.ShippingFee)
	return cfg
}
