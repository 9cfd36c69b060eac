package integrationsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "voice_reception/internal/api/base/service"
	"voice_reception/internal/api/integration/models"
	"voice_reception/internal/common"
	"voice_reception/internal/global"
)

// CrmConnectionService quản lý các kết nối CRM.
type CrmConnectionService struct {
	*basesvc.BaseServiceMongoImpl[models.CrmConnection]
}

// NewCrmConnectionService tạo mới CrmConnectionService
func NewCrmConnectionService() (*CrmConnectionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmConnections)
	if !exist {
		return nil, fmt.Errorf("failed to get crm_connections collection: %v", common.ErrNotFound)
	}
	return &CrmConnectionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CrmConnection](collection),
	}, nil
}

// InsertOne override: kết nối mới luôn ở trạng thái disconnected.
func (s *CrmConnectionService) InsertOne(ctx context.Context, connection models.CrmConnection) (models.CrmConnection, error) {
	if connection.Provider == "" {
		connection.Provider = models.ProviderZoho
	}
	connection.Status = models.StatusDisconnected
	return s.BaseServiceMongoImpl.InsertOne(ctx, connection)
}

// SetStatus chuyển trạng thái kết nối (connected/disconnected).
func (s *CrmConnectionService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.CrmConnection, error) {
	var zero models.CrmConnection
	if status != models.StatusConnected && status != models.StatusDisconnected {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Trạng thái kết nối không hợp lệ", common.StatusBadRequest, nil)
	}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": status,
		},
	}
	return s.UpdateById(ctx, id, update)
}

// DeleteById override: chặn xóa kết nối khi còn zoho action tham chiếu.
func (s *CrmConnectionService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	if err := basesvc.ValidateBeforeDeleteCrmConnection(ctx, id); err != nil {
		return err
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
