package utility

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID parse chuỗi hex thành ObjectID, trả về NilObjectID nếu chuỗi
// không hợp lệ. Caller đã validate bằng primitive.IsValidObjectID trước khi gọi.
func String2ObjectID(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

// ObjectID2String chuyển ObjectID về chuỗi hex để trả trong response JSON.
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}
