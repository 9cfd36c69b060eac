package actionsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"voice_reception/internal/api/action/compiler"
	"voice_reception/internal/api/action/models"
	basesvc "voice_reception/internal/api/base/service"
	"voice_reception/internal/api/events"
	variablessvc "voice_reception/internal/api/variables/service"
	"voice_reception/internal/common"
	"voice_reception/internal/global"
	"voice_reception/internal/schema"
	"voice_reception/internal/utility"
)

// openCache cache form state đã hydrate theo action id, tránh hydrate lại khi
// operator mở đi mở lại cùng một action. Invalidate khi save/delete.
var openCache = utility.NewCache(5*time.Minute, 10*time.Minute)

// Backstop: mọi thay đổi trên collection actions (kể cả qua route generic) đều
// invalidate cache open của action đó. Save/Delete vẫn xóa đồng bộ để tránh
// cửa sổ đọc stale trước khi handler kịp chạy.
func init() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Actions {
			return
		}
		if action, ok := e.Document.(models.Action); ok {
			openCache.Delete(action.ID.Hex())
		}
	})
}

// ActionService quản lý Tool Definition: compile khi save, hydrate khi open.
type ActionService struct {
	*basesvc.BaseServiceMongoImpl[models.Action]
	folderService *variablessvc.VariableFolderService
}

// NewActionService tạo mới ActionService
func NewActionService() (*ActionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Actions)
	if !exist {
		return nil, fmt.Errorf("failed to get actions collection: %v", common.ErrNotFound)
	}
	folderService, err := variablessvc.NewVariableFolderService()
	if err != nil {
		return nil, err
	}
	return &ActionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Action](collection),
		folderService:        folderService,
	}, nil
}

// SaveAction compile form state thành document chuẩn rồi persist.
// existingID = nil: tạo mới; khác nil: replace document cũ (không phải patch).
func (s *ActionService) SaveAction(ctx context.Context, form compiler.FormState, existingID *primitive.ObjectID) (models.Action, error) {
	var zero models.Action

	folderProps, err := s.resolveFolderProps(ctx, formFolderID(form))
	if err != nil {
		return zero, err
	}

	doc, err := compiler.Compile(form, folderProps)
	if err != nil {
		return zero, err
	}

	action := models.Action{
		Name:         doc.Name,
		Type:         doc.Type,
		FunctionType: doc.FunctionType,
		Definition:   *doc,
	}
	if doc.FolderID != "" && primitive.IsValidObjectID(doc.FolderID) {
		folderID := utility.String2ObjectID(doc.FolderID)
		action.FolderID = &folderID
	}
	if form.Zoho != nil && primitive.IsValidObjectID(form.Zoho.ConnectionID) {
		connectionID := utility.String2ObjectID(form.Zoho.ConnectionID)
		action.CrmConnectionID = &connectionID
	}

	if existingID == nil {
		return s.InsertOne(ctx, action)
	}

	// Replace semantics: ghi đè toàn bộ payload, unset metadata không còn áp dụng
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"name":       action.Name,
			"type":       action.Type,
			"definition": action.Definition,
		},
		Unset: map[string]interface{}{},
	}
	setOrUnset(update, "functionType", action.FunctionType != "", action.FunctionType)
	setOrUnset(update, "folderId", action.FolderID != nil, action.FolderID)
	setOrUnset(update, "crmConnectionId", action.CrmConnectionID != nil, action.CrmConnectionID)

	saved, err := s.UpdateById(ctx, *existingID, update)
	if err != nil {
		return zero, err
	}
	openCache.Delete(existingID.Hex())
	return saved, nil
}

func setOrUnset(update *basesvc.UpdateData, key string, present bool, value interface{}) {
	if present {
		update.Set[key] = value
		return
	}
	update.Unset[key] = ""
}

// formFolderID lấy folder id đã chọn từ section tương ứng của form (rỗng nếu kind
// không dùng folder).
func formFolderID(form compiler.FormState) string {
	if form.Notification != nil && form.Notification.FolderID != "" {
		return form.Notification.FolderID
	}
	if form.Schedule != nil && form.Schedule.FolderID != "" {
		return form.Schedule.FolderID
	}
	return ""
}

// resolveFolderProps lấy snapshot properties của folder đã chọn.
// Folder không còn tồn tại trả về map rỗng (không lỗi) để synthesis rơi về fallback —
// action cũ tham chiếu folder đã xóa vẫn save/load được.
func (s *ActionService) resolveFolderProps(ctx context.Context, folderID string) (map[string]schema.PropertyDef, error) {
	if folderID == "" || !primitive.IsValidObjectID(folderID) {
		return nil, nil
	}
	folder, err := s.folderService.FindOneById(ctx, utility.String2ObjectID(folderID))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return folder.Properties, nil
}

// OpenAction fetch document theo id và hydrate về form state để sửa.
func (s *ActionService) OpenAction(ctx context.Context, id primitive.ObjectID) (*compiler.FormState, error) {
	if cached, ok := openCache.Get(id.Hex()); ok {
		if form, ok := cached.(*compiler.FormState); ok {
			return form, nil
		}
	}

	action, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	form, err := compiler.Hydrate(&action.Definition)
	if err != nil {
		return nil, err
	}
	if form.Zoho != nil && action.CrmConnectionID != nil {
		form.Zoho.ConnectionID = utility.ObjectID2String(*action.CrmConnectionID)
	}

	openCache.Set(id.Hex(), form)
	return form, nil
}

// DeleteById override: xóa xong invalidate cache open.
func (s *ActionService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	if err := s.BaseServiceMongoImpl.DeleteById(ctx, id); err != nil {
		return err
	}
	openCache.Delete(id.Hex())
	return nil
}
