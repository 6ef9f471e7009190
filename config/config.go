package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"pressing"`      // Tên cơ sở dữ liệu
	MongoDB_MaxPoolSize   int    `env:"MONGODB_MAX_POOL_SIZE" envDefault:"50"`
	MongoDB_MinPoolSize   int    `env:"MONGODB_MIN_POOL_SIZE" envDefault:"5"`
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Redis: cache settings của tenant (optional, để trống thì đọc thẳng Mongo)
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	SettingsCacheTTL int    `env:"SETTINGS_CACHE_TTL" envDefault:"300"` // giây

	// SMTP: thiếu host/user/pass/from thì tắt kênh email
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPSecure   bool   `env:"SMTP_SECURE" envDefault:"false"` // true = SSL ngay từ đầu (465)
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`

	// Twilio WhatsApp: thiếu SID/token/from thì tắt kênh WhatsApp
	TwilioAccountSID          string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken           string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom        string `env:"TWILIO_WHATSAPP_FROM"`
	TwilioContentReadyPickup  string `env:"TWILIO_CONTENT_SID_READY_FOR_PICKUP"` // template fallback khi tenant chưa cấu hình
	TwilioContentManualRemind string `env:"TWILIO_CONTENT_SID_MANUAL_REMINDER"`
	DefaultCountryCode        string `env:"DEFAULT_COUNTRY_CODE" envDefault:"1"`

	// Telegram: mirror cảnh báo quá hạn cho operator (optional)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs  string `env:"TELEGRAM_CHAT_IDS"` // phân cách bằng dấu phẩy, ví dụ: "-123456789,-987654321"

	// Overdue scanner
	OverdueScanEnabled  bool   `env:"OVERDUE_SCAN_ENABLED" envDefault:"true"`
	OverdueScanInterval int    `env:"OVERDUE_SCAN_INTERVAL" envDefault:"900"` // giây
	OverdueLeadTime     int    `env:"OVERDUE_LEAD_TIME" envDefault:"7200"`    // giây
	OverdueWindow       int    `env:"OVERDUE_WINDOW" envDefault:"0"`          // giây, 0 = max(5 phút, interval)
	OverdueDedupMode    string `env:"OVERDUE_DEDUP_MODE" envDefault:"unread"` // unread | flag

	FrontendURL     string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // URL frontend (link trong admin notification)
	ReceiptPrefix   string `env:"RECEIPT_PREFIX" envDefault:"RCP"`
	DefaultCurrency string `env:"DEFAULT_CURRENCY_SYMBOL" envDefault:"$"`
}

// EmailConfigured trả về true khi đủ thông tin để dựng SMTP transport
func (c *Configuration) EmailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != "" && c.SMTPFrom != ""
}

// WhatsAppConfigured trả về true khi đủ thông tin để dựng Twilio client
func (c *Configuration) WhatsAppConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

// RedisConfigured trả về true khi có địa chỉ Redis
func (c *Configuration) RedisConfigured() bool {
	return c.RedisAddr != ""
}

// ScanInterval trả về chu kỳ quét đơn quá hạn
func (c *Configuration) ScanInterval() time.Duration {
	if c.OverdueScanInterval <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.OverdueScanInterval) * time.Second
}

// ScanLeadTime trả về khoảng thời gian trước hạn lấy đồ để cảnh báo sắp quá hạn
func (c *Configuration) ScanLeadTime() time.Duration {
	if c.OverdueLeadTime <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.OverdueLeadTime) * time.Second
}

// ScanWindow trả về độ rộng cửa sổ "sắp quá hạn", không nhỏ hơn chu kỳ quét
func (c *Configuration) ScanWindow() time.Duration {
	w := time.Duration(c.OverdueWindow) * time.Second
	if w < 5*time.Minute {
		w = 5 * time.Minute
	}
	if iv := c.ScanInterval(); w < iv {
		w = iv
	}
	return w
}

// TelegramChatIDList tách TelegramChatIDs thành slice
func (c *Configuration) TelegramChatIDList() []string {
	var ids []string
	for _, s := range strings.Split(c.TelegramChatIDs, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env, đi dần lên thư mục cha
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường
func NewConfig() *Configuration {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Không thể load file env tại %s: %v (dùng biến môi trường của process)\n", envPath, err)
		}
	} else {
		fmt.Printf("Không tìm thấy thư mục config/env, dùng biến môi trường của process\n")
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
