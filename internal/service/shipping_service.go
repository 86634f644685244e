package service

import (
	"strings"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"gorm.io/gorm"
)

// ShippingService 发货信息服务
type ShippingService struct {
	repo        repository.ShippingRepository
	requestRepo repository.StockRequestRepository
}

// NewShippingService 创建发货信息服务
func NewShippingService(
	repo repository.ShippingRepository,
	requestRepo repository.StockRequestRepository,
) *ShippingService {
	return &ShippingService{
		repo:        repo,
		requestRepo: requestRepo,
	}
}

// UpsertShippingInput 发货信息写入参数
type UpsertShippingInput struct {
	Status          string
	TrackingNo      string
	CourierCompany  string
	ShippingAddress string
	ReceiverName    string
	ReceiverPhone   string
	Remark          string
	OperatorID      uint
}

func validShippingStatus(status string) bool {
	switch status {
	case constants.ShippingStatusPending,
		constants.ShippingStatusShipped,
		constants.ShippingStatusDelivered:
		return true
	}
	return false
}

// Upsert 写入申请单的发货信息，首次创建、后续原地更新。
// 仅限已审批通过的出库/自购申请。状态流转不做顺序约束，
// 每次写入 shipped 都刷新发货时间，其他状态不清空。
func (s *ShippingService) Upsert(requestID uint, input UpsertShippingInput) (*models.ShippingInfo, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ShippingStatusPending
	}
	if !validShippingStatus(status) {
		return nil, ErrInvalidInput
	}

	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil ||
		request.Status != constants.RequestStatusApproved ||
		(request.Type != constants.RequestTypeOutbound && request.Type != constants.RequestTypeSelfPurchase) {
		return nil, ErrNotEligible
	}

	var saved *models.ShippingInfo
	err = s.requestRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		info, err := txRepo.GetByRequestID(requestID)
		if err != nil {
			return err
		}

		if info == nil {
			info = &models.ShippingInfo{
				RequestID: requestID,
			}
		}

		info.ShippingStatus = status
		info.TrackingNo = strings.TrimSpace(input.TrackingNo)
		info.CourierCompany = strings.TrimSpace(input.CourierCompany)
		info.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
		info.ReceiverName = strings.TrimSpace(input.ReceiverName)
		info.ReceiverPhone = strings.TrimSpace(input.ReceiverPhone)
		info.Remark = input.Remark
		info.OperatorID = input.OperatorID

		if status == constants.ShippingStatusShipped {
			now := time.Now()
			info.ShippedAt = &now
		}

		if info.ID == 0 {
			if err := txRepo.Create(info); err != nil {
				return err
			}
		} else {
			if err := txRepo.Update(info); err != nil {
				return err
			}
		}
		saved = info
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Get 获取申请单的发货信息
func (s *ShippingService) Get(requestID uint) (*models.ShippingInfo, error) {
	info, err := s.repo.GetByRequestID(requestID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNotFound
	}
	return info, nil
}
