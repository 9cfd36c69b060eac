package variablessvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "voice_reception/internal/api/base/service"
	"voice_reception/internal/api/variables/models"
	"voice_reception/internal/common"
	"voice_reception/internal/global"
	"voice_reception/internal/placeholder"
	"voice_reception/internal/schema"
)

// VariableFolderService quản lý variable folders và properties của chúng.
type VariableFolderService struct {
	*basesvc.BaseServiceMongoImpl[models.VariableFolder]
}

// NewVariableFolderService tạo mới VariableFolderService
func NewVariableFolderService() (*VariableFolderService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.VariableFolders)
	if !exist {
		return nil, fmt.Errorf("failed to get variable_folders collection: %v", common.ErrNotFound)
	}
	return &VariableFolderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.VariableFolder](collection),
	}, nil
}

// InsertOne override: folder mới luôn được seed đủ bộ property mặc định
// trước khi ghi xuống DB.
func (s *VariableFolderService) InsertOne(ctx context.Context, folder models.VariableFolder) (models.VariableFolder, error) {
	folder.Properties = seedDefaults(folder.Properties)
	return s.BaseServiceMongoImpl.InsertOne(ctx, folder)
}

// seedDefaults bổ sung các property mặc định còn thiếu và khôi phục property mặc định
// bị ghi đè sai định nghĩa. Property không phải mặc định được giữ nguyên.
func seedDefaults(props map[string]schema.PropertyDef) map[string]schema.PropertyDef {
	out := make(map[string]schema.PropertyDef, len(props)+len(models.DefaultPropertyNames))
	for name, def := range props {
		out[name] = def
	}
	for name, def := range models.DefaultProperties() {
		out[name] = def
	}
	return out
}

// CloneFolder tạo folder mới với properties deep-copy từ folder nguồn.
// Folder clone không bao giờ là default/system.
func (s *VariableFolderService) CloneFolder(ctx context.Context, sourceID primitive.ObjectID, newName string) (models.VariableFolder, error) {
	var zero models.VariableFolder

	source, err := s.FindOneById(ctx, sourceID)
	if err != nil {
		return zero, err
	}

	clone := models.VariableFolder{
		Name:       newName,
		IsDefault:  false,
		IsSystem:   false,
		OwnerID:    source.OwnerID,
		Properties: copyProperties(source.Properties),
	}
	return s.InsertOne(ctx, clone)
}

// copyProperties deep-copy map properties, kể cả slice Enum.
func copyProperties(props map[string]schema.PropertyDef) map[string]schema.PropertyDef {
	out := make(map[string]schema.PropertyDef, len(props))
	for name, def := range props {
		if def.Enum != nil {
			enumCopy := make([]string, len(def.Enum))
			copy(enumCopy, def.Enum)
			def.Enum = enumCopy
		}
		out[name] = def
	}
	return out
}

// UpsertProperty thêm hoặc sửa một property của folder.
// Name được canonical hóa trước khi lưu. Sửa property mặc định là no-op im lặng
// (trả về folder hiện tại, không lỗi) để giữ bộ property mặc định nguyên vẹn.
// Ghi read-modify-write: gửi lại toàn bộ map properties.
func (s *VariableFolderService) UpsertProperty(ctx context.Context, folderID primitive.ObjectID, name string, def schema.PropertyDef) (models.VariableFolder, error) {
	var zero models.VariableFolder

	canonical := placeholder.Canonicalize(name)
	if canonical == "" {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Tên biến '%s' không hợp lệ sau khi chuẩn hóa", name),
			common.StatusBadRequest,
			nil,
		)
	}

	folder, err := s.FindOneById(ctx, folderID)
	if err != nil {
		return zero, err
	}

	props, changed := upsertIntoProperties(folder.Properties, canonical, def)
	if !changed {
		return folder, nil
	}
	return s.writeProperties(ctx, folderID, props)
}

// upsertIntoProperties áp dụng thao tác sửa/thêm property lên map (hàm thuần, không chạm DB).
// Property mặc định: trả về map gốc và changed = false — định nghĩa mặc định không bao giờ bị ghi đè.
func upsertIntoProperties(props map[string]schema.PropertyDef, canonical string, def schema.PropertyDef) (map[string]schema.PropertyDef, bool) {
	if models.IsDefaultPropertyName(canonical) {
		return props, false
	}
	out := copyProperties(props)
	out[canonical] = def
	return out, true
}

// RemoveProperty xóa một property khỏi folder. Xóa property mặc định bị từ chối.
func (s *VariableFolderService) RemoveProperty(ctx context.Context, folderID primitive.ObjectID, name string) (models.VariableFolder, error) {
	var zero models.VariableFolder

	canonical := placeholder.Canonicalize(name)
	folder, err := s.FindOneById(ctx, folderID)
	if err != nil {
		return zero, err
	}

	props, err := removeFromProperties(folder.Properties, canonical)
	if err != nil {
		return zero, err
	}
	return s.writeProperties(ctx, folderID, props)
}

// removeFromProperties áp dụng thao tác xóa property lên map (hàm thuần, không chạm DB).
// Xóa property mặc định trả về lỗi nghiệp vụ; xóa property không tồn tại trả về not found.
func removeFromProperties(props map[string]schema.PropertyDef, canonical string) (map[string]schema.PropertyDef, error) {
	if models.IsDefaultPropertyName(canonical) {
		return nil, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Không thể xóa property mặc định '%s'", canonical),
			common.StatusForbidden,
			nil,
		)
	}
	if _, exists := props[canonical]; !exists {
		return nil, common.ErrNotFound
	}
	out := copyProperties(props)
	delete(out, canonical)
	return out, nil
}

// writeProperties ghi toàn bộ map properties xuống DB và trả về folder sau cập nhật.
// Truy cập collection trực tiếp vì property mutation áp dụng cho cả folder hệ thống
// (chỉ rename/delete folder hệ thống mới bị chặn).
func (s *VariableFolderService) writeProperties(ctx context.Context, folderID primitive.ObjectID, props map[string]schema.PropertyDef) (models.VariableFolder, error) {
	var zero models.VariableFolder

	_, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": folderID},
		bson.M{"$set": bson.M{
			"properties": props,
			"updatedAt":  time.Now().UnixMilli(),
		}},
	)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return s.FindOneById(ctx, folderID)
}
