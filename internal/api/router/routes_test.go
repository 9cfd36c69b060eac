package router

import (
	"testing"

	"github.com/gofiber/fiber/v3"
)

// stubHandler chỉ cài 11 thao tác một-document. Nếu CRUDHandler phình thêm
// thao tác ghi hàng loạt (insert-many, upsert...), file này ngừng compile —
// các route đó từng cho phép ghi folder bỏ qua seed property mặc định.
type stubHandler struct{}

func (stubHandler) InsertOne(c fiber.Ctx) error          { return nil }
func (stubHandler) Find(c fiber.Ctx) error               { return nil }
func (stubHandler) FindOne(c fiber.Ctx) error            { return nil }
func (stubHandler) FindOneById(c fiber.Ctx) error        { return nil }
func (stubHandler) FindManyByIds(c fiber.Ctx) error      { return nil }
func (stubHandler) FindWithPagination(c fiber.Ctx) error { return nil }
func (stubHandler) UpdateById(c fiber.Ctx) error         { return nil }
func (stubHandler) DeleteById(c fiber.Ctx) error         { return nil }
func (stubHandler) CountDocuments(c fiber.Ctx) error     { return nil }
func (stubHandler) Distinct(c fiber.Ctx) error           { return nil }
func (stubHandler) DocumentExists(c fiber.Ctx) error     { return nil }

var _ CRUDHandler = stubHandler{}

func TestReadWriteConfigChiGhiMotDocument(t *testing.T) {
	want := CRUDConfig{
		InsOne: true,
		Find:   true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: true, DelById: true,
		Count: true, Distinct: true, Exists: true,
	}
	if ReadWriteConfig != want {
		t.Errorf("ReadWriteConfig = %+v, muốn %+v", ReadWriteConfig, want)
	}
}

func TestReadOnlyConfigKhongCoGhi(t *testing.T) {
	if ReadOnlyConfig.InsOne || ReadOnlyConfig.UpdById || ReadOnlyConfig.DelById {
		t.Errorf("ReadOnlyConfig không được bật thao tác ghi: %+v", ReadOnlyConfig)
	}
	if !ReadOnlyConfig.Find || !ReadOnlyConfig.FindById || !ReadOnlyConfig.Count {
		t.Errorf("ReadOnlyConfig thiếu thao tác đọc: %+v", ReadOnlyConfig)
	}
}
