package variablessvc

import (
	"errors"
	"reflect"
	"testing"

	"voice_reception/internal/api/variables/models"
	"voice_reception/internal/common"
	"voice_reception/internal/schema"
)

func TestSeedDefaultsDuBoMacDinh(t *testing.T) {
	props := seedDefaults(nil)

	if len(props) != len(models.DefaultPropertyNames) {
		t.Fatalf("seedDefaults(nil) có %d property, muốn %d", len(props), len(models.DefaultPropertyNames))
	}
	for _, name := range models.DefaultPropertyNames {
		if _, ok := props[name]; !ok {
			t.Errorf("seedDefaults thiếu property mặc định '%s'", name)
		}
	}
}

func TestSeedDefaultsGiuPropertyTuyChinh(t *testing.T) {
	custom := map[string]schema.PropertyDef{
		"insurance_provider": {Type: schema.TypeString, Description: "Nhà cung cấp bảo hiểm"},
	}
	props := seedDefaults(custom)

	if _, ok := props["insurance_provider"]; !ok {
		t.Fatal("seedDefaults làm mất property tùy chỉnh")
	}
	if len(props) != len(models.DefaultPropertyNames)+1 {
		t.Errorf("seedDefaults có %d property, muốn %d", len(props), len(models.DefaultPropertyNames)+1)
	}
}

func TestSeedDefaultsKhoiPhucDinhNghiaMacDinh(t *testing.T) {
	// Property mặc định bị ghi đè sai kiểu phải được khôi phục về định nghĩa chuẩn
	tampered := map[string]schema.PropertyDef{
		"email_address": {Type: schema.TypeNumber, Description: "bị sửa sai"},
	}
	props := seedDefaults(tampered)

	want := models.DefaultProperties()["email_address"]
	got := props["email_address"]
	if got.Type != want.Type || got.Description != want.Description {
		t.Errorf("email_address không được khôi phục: %+v, muốn %+v", got, want)
	}
}

func TestCopyPropertiesDeepCopy(t *testing.T) {
	source := map[string]schema.PropertyDef{
		"appointment_type": {Type: schema.TypeString, Description: "Loại lịch hẹn", Enum: []string{"checkup", "followup"}},
	}

	clone := copyProperties(source)

	// Mutate clone không được ảnh hưởng source
	clone["appointment_type"].Enum[0] = "changed"
	delete(clone, "appointment_type")

	if source["appointment_type"].Enum[0] != "checkup" {
		t.Error("copyProperties không deep-copy slice Enum")
	}
	if _, ok := source["appointment_type"]; !ok {
		t.Error("xóa key trên clone làm mất key trên source")
	}
}

func TestUpsertIntoPropertiesGiuNguyenMacDinh(t *testing.T) {
	props := seedDefaults(nil)
	before := props["email_address"]

	// Sửa property mặc định là no-op im lặng: không đổi map, không lỗi
	out, changed := upsertIntoProperties(props, "email_address", schema.PropertyDef{
		Type:        schema.TypeNumber,
		Description: "cố ghi đè",
	})

	if changed {
		t.Fatal("upsert property mặc định phải trả về changed = false")
	}
	if !reflect.DeepEqual(out["email_address"], before) {
		t.Errorf("định nghĩa email_address bị thay đổi: %+v, muốn %+v", out["email_address"], before)
	}
	if !reflect.DeepEqual(props["email_address"], before) {
		t.Errorf("map gốc bị thay đổi sau upsert mặc định: %+v", props["email_address"])
	}
}

func TestUpsertIntoPropertiesThemTuyChinh(t *testing.T) {
	props := seedDefaults(nil)
	def := schema.PropertyDef{Type: schema.TypeString, Description: "Nhà cung cấp bảo hiểm"}

	out, changed := upsertIntoProperties(props, "insurance_provider", def)

	if !changed {
		t.Fatal("upsert property tùy chỉnh phải trả về changed = true")
	}
	if !reflect.DeepEqual(out["insurance_provider"], def) {
		t.Errorf("property tùy chỉnh không được thêm: %+v", out["insurance_provider"])
	}
	if _, ok := props["insurance_provider"]; ok {
		t.Error("upsert làm thay đổi map gốc thay vì copy")
	}
}

func TestRemoveFromPropertiesTuChoiMacDinh(t *testing.T) {
	props := seedDefaults(nil)
	before := props["email_address"]

	_, err := removeFromProperties(props, "email_address")
	if err == nil {
		t.Fatal("xóa property mặc định phải trả lỗi")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.Code != common.ErrCodeBusinessOperation {
		t.Errorf("lỗi xóa mặc định phải là lỗi nghiệp vụ, nhận được: %v", err)
	}
	if !reflect.DeepEqual(props["email_address"], before) {
		t.Errorf("email_address bị thay đổi sau khi xóa bị từ chối: %+v", props["email_address"])
	}
}

func TestRemoveFromPropertiesKhongTonTai(t *testing.T) {
	props := seedDefaults(nil)
	if _, err := removeFromProperties(props, "khong_ton_tai"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("xóa property không tồn tại phải trả ErrNotFound, nhận được: %v", err)
	}
}

func TestRemoveFromPropertiesXoaTuyChinh(t *testing.T) {
	props := seedDefaults(map[string]schema.PropertyDef{
		"insurance_provider": {Type: schema.TypeString},
	})

	out, err := removeFromProperties(props, "insurance_provider")
	if err != nil {
		t.Fatalf("xóa property tùy chỉnh lỗi: %v", err)
	}
	if _, ok := out["insurance_provider"]; ok {
		t.Error("property tùy chỉnh vẫn còn sau khi xóa")
	}
	if _, ok := props["insurance_provider"]; !ok {
		t.Error("xóa làm thay đổi map gốc thay vì copy")
	}
	// Bộ mặc định còn nguyên
	for _, name := range models.DefaultPropertyNames {
		if _, ok := out[name]; !ok {
			t.Errorf("property mặc định '%s' bị mất sau khi xóa property tùy chỉnh", name)
		}
	}
}

func TestIsDefaultPropertyName(t *testing.T) {
	for _, name := range models.DefaultPropertyNames {
		if !models.IsDefaultPropertyName(name) {
			t.Errorf("IsDefaultPropertyName(%q) = false, muốn true", name)
		}
	}
	if models.IsDefaultPropertyName("insurance_provider") {
		t.Error("IsDefaultPropertyName nhận nhầm property tùy chỉnh là mặc định")
	}
}
