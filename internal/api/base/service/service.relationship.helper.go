package basesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"voice_reception/internal/common"
	"voice_reception/internal/global"
)

// RelationshipCheck mô tả một quan hệ tham chiếu cần kiểm tra trước khi xóa:
// collection nào, field nào trỏ về record, và message khi còn tham chiếu.
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists trả về lỗi Conflict nếu còn record trong collection
// khác đang trỏ tới recordID. ErrorMessage nhận %d là số record tham chiếu.
// Check Optional được bỏ qua khi collection chưa đăng ký trong registry.
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}

		count, err := collection.CountDocuments(ctx, bson.M{check.FieldName: recordID})
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Không thể xóa record vì có %d record trong collection '%s' đang tham chiếu tới record này", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// ValidateBeforeDeleteCrmConnection kiểm tra kết nối CRM còn action gắn vào
// không trước khi xóa. CrmConnectionService gọi trực tiếp trong override
// DeleteById thay vì khai báo struct tag trên model.
func ValidateBeforeDeleteCrmConnection(ctx context.Context, connectionID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{
			CollectionName: global.MongoDB_ColNames.Actions,
			FieldName:      "crmConnectionId",
			ErrorMessage:   "Không thể xóa kết nối CRM vì có %d action đang sử dụng kết nối này.",
			Optional:       true,
		},
	}
	return CheckRelationshipExists(ctx, connectionID, checks)
}
