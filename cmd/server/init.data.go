package main

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "voice_reception/internal/api/base/service"
	variablesmodels "voice_reception/internal/api/variables/models"
	variablessvc "voice_reception/internal/api/variables/service"
	"voice_reception/internal/common"
	"voice_reception/internal/logger"
)

// InitDefaultData seed folder biến mặc định nếu chưa có. Folder này là dữ liệu
// hệ thống: không xóa/đổi tên được qua API, nhưng vẫn thêm/sửa property được.
func InitDefaultData() {
	log := logger.GetAppLogger()

	folderService, err := variablessvc.NewVariableFolderService()
	if err != nil {
		log.Fatalf("Failed to initialize variable folder service: %v", err)
	}

	ctx := context.Background()
	_, err = folderService.FindOne(ctx, bson.M{"isDefault": true}, nil)
	if err == nil {
		log.Info("Default variable folder already exists")
		return
	}
	if !errors.Is(err, common.ErrNotFound) {
		log.Fatalf("Failed to check default variable folder: %v", err)
	}

	// InsertOne của service tự seed đủ bộ property mặc định
	seedCtx := basesvc.WithSystemDataInsertAllowed(ctx)
	folder, err := folderService.InsertOne(seedCtx, variablesmodels.VariableFolder{
		Name:      "Default variables",
		IsDefault: true,
		IsSystem:  true,
	})
	if err != nil {
		log.Fatalf("Failed to seed default variable folder: %v", err)
	}
	log.Infof("Seeded default variable folder (ID: %s)", folder.ID.Hex())
}
