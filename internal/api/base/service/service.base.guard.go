package basesvc

// Bảo vệ dữ liệu hệ thống (field IsSystem) và kiểm tra quan hệ trước khi xóa.
// Folder biến mặc định được seed lúc init với IsSystem = true: user không được
// tạo, sửa hay xóa loại dữ liệu này qua API; chỉ quá trình init (context được
// đánh dấu qua WithSystemDataInsertAllowed) mới được phép.

import (
	"context"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"voice_reception/internal/common"
)

type systemDataContextKey string

const allowSystemDataInsertKey systemDataContextKey = "allow_system_data_insert"

// WithSystemDataInsertAllowed đánh dấu context được phép ghi dữ liệu hệ thống.
// Chỉ gọi từ initsvc khi seed dữ liệu mặc định, không dùng trong request handler.
func WithSystemDataInsertAllowed(ctx context.Context) context.Context {
	return context.WithValue(ctx, allowSystemDataInsertKey, true)
}

func isSystemDataInsertAllowed(ctx context.Context) bool {
	allowed, ok := ctx.Value(allowSystemDataInsertKey).(bool)
	return ok && allowed
}

// getIsSystemValue đọc field IsSystem của model bằng reflection.
// Trả về (giá trị, có field hay không).
func getIsSystemValue(data interface{}) (bool, bool) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false, false
	}

	field := v.FieldByName("IsSystem")
	if !field.IsValid() || !field.CanInterface() {
		return false, false
	}
	if field.Kind() == reflect.Bool {
		return field.Bool(), true
	}
	return false, false
}

// setIsSystemValue ghi field IsSystem của model bằng reflection (bỏ qua nếu không set được).
func setIsSystemValue(data interface{}, value bool) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	field := v.FieldByName("IsSystem")
	if !field.IsValid() || !field.CanSet() {
		return
	}
	if field.Kind() == reflect.Bool {
		field.SetBool(value)
	}
}

// getIDFromModel đọc field ID của model bằng reflection.
func getIDFromModel(data interface{}) (primitive.ObjectID, bool) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return primitive.NilObjectID, false
	}

	field := v.FieldByName("ID")
	if !field.IsValid() {
		return primitive.NilObjectID, false
	}

	if field.Kind() == reflect.Interface {
		if id, ok := field.Interface().(primitive.ObjectID); ok {
			return id, true
		}
	}
	return primitive.NilObjectID, false
}

// validateSystemDataInsert chặn user tạo document có IsSystem = true.
// Model không có field IsSystem thì bỏ qua. Khi insert thường, IsSystem bị
// ép về false để caller không tự gán qua request body.
func validateSystemDataInsert(ctx context.Context, data interface{}) error {
	isSystem, hasField := getIsSystemValue(data)
	if !hasField {
		return nil
	}

	if isSystemDataInsertAllowed(ctx) {
		return nil
	}

	if isSystem {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			"Không thể tạo dữ liệu với IsSystem = true. Chỉ hệ thống mới có thể tạo dữ liệu system",
			common.StatusForbidden,
			nil,
		)
	}

	setIsSystemValue(data, false)
	return nil
}

// validateSystemDataUpdate chặn sửa dữ liệu hệ thống và chặn set IsSystem = true
// qua update. Key isSystem trong $set bị loại bỏ thay vì ghi xuống DB.
func validateSystemDataUpdate(ctx context.Context, existingData interface{}, update *UpdateData) error {
	rejectIsSystemKey := func() error {
		if update.Set == nil {
			return nil
		}
		if isSystemVal, ok := update.Set["isSystem"].(bool); ok && isSystemVal {
			return common.NewError(
				common.ErrCodeBusinessOperation,
				"Không thể set IsSystem = true. Chỉ hệ thống mới có thể tạo dữ liệu system",
				common.StatusForbidden,
				nil,
			)
		}
		delete(update.Set, "isSystem")
		return nil
	}

	isSystem, hasField := getIsSystemValue(existingData)
	if !hasField {
		return rejectIsSystemKey()
	}

	if isSystem {
		if !isSystemDataInsertAllowed(ctx) {
			return common.NewError(
				common.ErrCodeBusinessOperation,
				"Không thể sửa dữ liệu hệ thống mặc định",
				common.StatusForbidden,
				nil,
			)
		}
		return nil
	}

	return rejectIsSystemKey()
}

// validateSystemDataDelete chặn xóa dữ liệu hệ thống, kể cả admin.
func validateSystemDataDelete(ctx context.Context, data interface{}) error {
	isSystem, hasField := getIsSystemValue(data)
	if !hasField {
		return nil
	}

	if isSystem {
		modelType := reflect.TypeOf(data)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Không thể xóa %s vì đây là dữ liệu hệ thống mặc định", modelType.Name()),
			common.StatusForbidden,
			nil,
		)
	}
	return nil
}

// validateRelationshipsDelete đọc struct tag `relationship` của model và kiểm tra
// còn bản ghi nào tham chiếu tới record này không trước khi cho xóa (vd: folder
// còn action dùng biến của nó, crm connection còn action gắn vào).
func validateRelationshipsDelete(ctx context.Context, data interface{}) error {
	modelType := reflect.TypeOf(data)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	relationships := ParseRelationshipTag(modelType)
	if len(relationships) == 0 {
		return nil
	}

	recordID, ok := getIDFromModel(data)
	if !ok {
		// Record chưa có ID thì không có gì tham chiếu tới nó
		return nil
	}

	checks := make([]RelationshipCheck, 0, len(relationships))
	for _, rel := range relationships {
		if rel.Cascade {
			continue
		}
		checks = append(checks, RelationshipCheck{
			CollectionName: rel.CollectionName,
			FieldName:      rel.FieldName,
			ErrorMessage:   rel.ErrorMessage,
			Optional:       rel.Optional,
		})
	}

	if len(checks) > 0 {
		return CheckRelationshipExists(ctx, recordID, checks)
	}
	return nil
}
