package global

import (
	"voice_reception/config"
	"voice_reception/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	VariableFolders string // Tên collection cho thư mục biến hội thoại
	Actions         string // Tên collection cho action (tool definition đã biên dịch)
	CrmConnections  string // Tên collection cho kết nối CRM (Zoho)
}

// Các biến toàn cục
var Validate *validator.Validate                                           // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                          // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                             // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// RegistryCollections chứa các collection MongoDB, đăng ký lúc khởi động
// và tra cứu bằng tên trong MongoDB_ColNames.
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()
