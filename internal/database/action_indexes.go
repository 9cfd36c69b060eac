// Package database - Index bổ sung cho actions (compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"voice_reception/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateActionAdditionalIndexes tạo các index bổ sung cho actions.
// Gọi sau CreateIndexes cho từng collection.
func CreateActionAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// actions: (type, functionType) — list action theo loại compiler
	actions := db.Collection(global.MongoDB_ColNames.Actions)
	if _, err := actions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "functionType", Value: 1},
		},
		Options: options.Index().SetName("action_type_function"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// actions: (folderId) sparse — tra cứu action đang tham chiếu folder (chặn xóa folder)
	if _, err := actions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "folderId", Value: 1},
		},
		Options: options.Index().SetName("action_folder").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// actions: (updatedAt desc) — danh sách action mới cập nhật trước
	if _, err := actions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "updatedAt", Value: -1},
		},
		Options: options.Index().SetName("action_updated_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
