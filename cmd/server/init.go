package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"voice_reception/config"
	actionmodels "voice_reception/internal/api/action/models"
	integrationmodels "voice_reception/internal/api/integration/models"
	variablesmodels "voice_reception/internal/api/variables/models"
	"voice_reception/internal/database"
	"voice_reception/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.VariableFolders = "variable_folders"
	global.MongoDB_ColNames.Actions = "actions"
	global.MongoDB_ColNames.CrmConnections = "crm_connections"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, var_name, e164, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.VariableFolders), variablesmodels.VariableFolder{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Actions), actionmodels.Action{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CrmConnections), integrationmodels.CrmConnection{})

	// Index phức hợp cho collection actions (không biểu diễn được bằng index tag)
	if err := database.CreateActionAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create action indexes: %v", err)
	}
}
