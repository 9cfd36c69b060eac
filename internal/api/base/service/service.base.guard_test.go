package basesvc

import (
	"context"
	"errors"
	"testing"

	"voice_reception/internal/common"
)

type guardedDoc struct {
	Name     string `bson:"name"`
	IsSystem bool   `bson:"isSystem"`
}

type plainDoc struct {
	Name string `bson:"name"`
}

func TestToUpdateDataGiuNguyenUpdateData(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"name": "giờ làm việc"}}
	out, err := ToUpdateData(in)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if out != in {
		t.Error("ToUpdateData phải trả về đúng con trỏ UpdateData đầu vào")
	}
}

func TestToUpdateDataWrapTrongSet(t *testing.T) {
	out, err := ToUpdateData(plainDoc{Name: "chi nhánh quận 1"})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if out.Set == nil {
		t.Fatal("Dữ liệu thường phải được wrap trong $set")
	}
	if out.Set["name"] != "chi nhánh quận 1" {
		t.Errorf("$set[name] = %v, muốn 'chi nhánh quận 1'", out.Set["name"])
	}
	if out.Unset != nil {
		t.Errorf("$unset phải rỗng, nhận được %v", out.Unset)
	}
}

func TestValidateSystemDataInsertChanIsSystem(t *testing.T) {
	err := validateSystemDataInsert(context.Background(), &guardedDoc{Name: "default", IsSystem: true})
	if err == nil {
		t.Fatal("Insert document IsSystem = true phải bị chặn")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("Lỗi phải là *common.Error, nhận được %T", err)
	}
	if appErr.Code != common.ErrCodeBusinessOperation {
		t.Errorf("Code = %v, muốn ErrCodeBusinessOperation", appErr.Code)
	}
	if appErr.StatusCode != common.StatusForbidden {
		t.Errorf("StatusCode = %d, muốn %d", appErr.StatusCode, common.StatusForbidden)
	}
}

func TestValidateSystemDataInsertChoPhepKhiInit(t *testing.T) {
	ctx := WithSystemDataInsertAllowed(context.Background())
	if err := validateSystemDataInsert(ctx, &guardedDoc{Name: "default", IsSystem: true}); err != nil {
		t.Errorf("Context init phải được insert dữ liệu hệ thống, nhận lỗi: %v", err)
	}
}

func TestValidateSystemDataInsertEpVeFalse(t *testing.T) {
	doc := &guardedDoc{Name: "custom", IsSystem: false}
	if err := validateSystemDataInsert(context.Background(), doc); err != nil {
		t.Fatalf("Insert document thường không được lỗi: %v", err)
	}
	if doc.IsSystem {
		t.Error("IsSystem phải bị ép về false khi insert thường")
	}
}

func TestValidateSystemDataUpdateChanSuaDuLieuHeThong(t *testing.T) {
	existing := guardedDoc{Name: "default", IsSystem: true}
	update := &UpdateData{Set: map[string]interface{}{"name": "đổi tên"}}

	err := validateSystemDataUpdate(context.Background(), existing, update)
	if err == nil {
		t.Fatal("Update document hệ thống phải bị chặn")
	}

	// Quá trình init vẫn được sửa
	ctx := WithSystemDataInsertAllowed(context.Background())
	if err := validateSystemDataUpdate(ctx, existing, update); err != nil {
		t.Errorf("Context init phải được sửa dữ liệu hệ thống, nhận lỗi: %v", err)
	}
}

func TestValidateSystemDataUpdateLoaiKeyIsSystem(t *testing.T) {
	existing := guardedDoc{Name: "custom", IsSystem: false}

	// Cố set isSystem = true qua update bị chặn
	update := &UpdateData{Set: map[string]interface{}{"isSystem": true}}
	if err := validateSystemDataUpdate(context.Background(), existing, update); err == nil {
		t.Error("Set isSystem = true qua update phải bị chặn")
	}

	// isSystem = false trong $set bị loại bỏ thay vì ghi xuống DB
	update = &UpdateData{Set: map[string]interface{}{"isSystem": false, "name": "mới"}}
	if err := validateSystemDataUpdate(context.Background(), existing, update); err != nil {
		t.Fatalf("Update thường không được lỗi: %v", err)
	}
	if _, exists := update.Set["isSystem"]; exists {
		t.Error("Key isSystem phải bị loại khỏi $set")
	}
	if update.Set["name"] != "mới" {
		t.Error("Các key khác trong $set phải được giữ nguyên")
	}
}

func TestValidateSystemDataDeleteChanXoa(t *testing.T) {
	if err := validateSystemDataDelete(context.Background(), guardedDoc{IsSystem: true}); err == nil {
		t.Error("Xóa document hệ thống phải bị chặn")
	}
	if err := validateSystemDataDelete(context.Background(), guardedDoc{IsSystem: false}); err != nil {
		t.Errorf("Xóa document thường không được lỗi: %v", err)
	}
	if err := validateSystemDataDelete(context.Background(), plainDoc{Name: "x"}); err != nil {
		t.Errorf("Model không có field IsSystem không được lỗi: %v", err)
	}
}
