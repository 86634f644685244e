package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"gorm.io/gorm"
)

// StockRequestService 库存变动申请服务
type StockRequestService struct {
	repo        repository.StockRequestRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	requestNo   *RequestNoGenerator
}

// NewStockRequestService 创建申请单服务
func NewStockRequestService(
	repo repository.StockRequestRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	requestNo *RequestNoGenerator,
) *StockRequestService {
	if requestNo == nil {
		requestNo = NewRequestNoGenerator()
	}
	return &StockRequestService{
		repo:        repo,
		productRepo: productRepo,
		userRepo:    userRepo,
		requestNo:   requestNo,
	}
}

// SubmitItemInput 申请单明细输入
type SubmitItemInput struct {
	ProductID uint
	Quantity  int
}

// SubmitInput 提交申请单输入
type SubmitInput struct {
	Type          string
	Items         []SubmitItemInput
	Quantity      int // 仅 self_purchase 使用
	Merchant      string
	Address       string
	ReceiverName  string
	ReceiverPhone string
	ShippingFee   string
	Reason        string
	Remark        string
	SalesmanID    *uint
	SubmitterID   uint
	SubmitterName string
}

// 申请单的内部变体表示，审批时按变体分派库存处理
type requestVariant interface {
	isRequestVariant()
}

type inboundVariant struct {
	items []models.StockRequestItem
}

type outboundVariant struct {
	items []models.StockRequestItem
}

type selfPurchaseVariant struct {
	quantity int
}

func (inboundVariant) isRequestVariant()      {}
func (outboundVariant) isRequestVariant()     {}
func (selfPurchaseVariant) isRequestVariant() {}

func buildVariant(request *models.StockRequest, items []models.StockRequestItem) (requestVariant, error) {
	switch request.Type {
	case constants.RequestTypeInbound:
		return inboundVariant{items: items}, nil
	case constants.RequestTypeOutbound:
		return outboundVariant{items: items}, nil
	case constants.RequestTypeSelfPurchase:
		return selfPurchaseVariant{quantity: request.Quantity}, nil
	default:
		return nil, ErrInvalidInput
	}
}

// buildItemsSummary 生成明细摘要文本，如 “立牌A x2, 立牌B x1”
func buildItemsSummary(items []models.StockRequestItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

func selfPurchaseSummary(quantity int) string {
	return fmt.Sprintf("%s x%d", constants.SelfPurchaseSummaryLabel, quantity)
}

// Submit 提交申请单，落库为 pending 状态
func (s *StockRequestService) Submit(input SubmitInput) (*models.StockRequest, error) {
	request := &models.StockRequest{
		Type:          input.Type,
		Status:        constants.RequestStatusPending,
		Merchant:      strings.TrimSpace(input.Merchant),
		Address:       strings.TrimSpace(input.Address),
		ReceiverName:  strings.TrimSpace(input.ReceiverName),
		ReceiverPhone: strings.TrimSpace(input.ReceiverPhone),
		ShippingFee:   normalizeShippingFee(input.ShippingFee),
		Reason:        strings.TrimSpace(input.Reason),
		Remark:        input.Remark,
		SubmitterID:   input.SubmitterID,
		SubmitterName: input.SubmitterName,
	}

	var items []models.StockRequestItem
	switch input.Type {
	case constants.RequestTypeSelfPurchase:
		if input.Quantity < 1 {
			return nil, ErrInvalidInput
		}
		request.Quantity = input.Quantity
		request.ItemsSummary = selfPurchaseSummary(input.Quantity)
	case constants.RequestTypeInbound, constants.RequestTypeOutbound:
		built, total, err := s.buildItems(input.Items)
		if err != nil {
			return nil, err
		}
		items = built
		request.Quantity = total
		request.ItemsSummary = buildItemsSummary(built)
	default:
		return nil, ErrInvalidInput
	}

	if input.SalesmanID != nil {
		salesman, err := s.userRepo.GetByID(*input.SalesmanID)
		if err != nil {
			return nil, err
		}
		if salesman != nil {
			request.SalesmanID = input.SalesmanID
			request.SalesmanName = salesman.RealName
		}
	}

	// 单号冲突时换一个后缀重试一次
	for attempt := 0; attempt < 2; attempt++ {
		request.RequestNo = s.requestNo.Next()
		existing, err := s.repo.GetByRequestNo(request.RequestNo)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		err = s.repo.Transaction(func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			if err := txRepo.Create(request); err != nil {
				return err
			}
			for i := range items {
				items[i].RequestID = request.ID
			}
			return txRepo.CreateItems(items)
		})
		if err != nil {
			return nil, err
		}
		request.Items = items
		return request, nil
	}
	return nil, ErrRequestNoConflict
}

func (s *StockRequestService) buildItems(inputs []SubmitItemInput) ([]models.StockRequestItem, int, error) {
	if len(inputs) == 0 {
		return nil, 0, ErrInvalidInput
	}
	ids := make([]uint, 0, len(inputs))
	for _, item := range inputs {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, 0, ErrInvalidInput
		}
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	items := make([]models.StockRequestItem, 0, len(inputs))
	total := 0
	for _, input := range inputs {
		product, ok := productMap[input.ProductID]
		if !ok {
			return nil, 0, ErrNotFound
		}
		items = append(items, models.StockRequestItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    input.Quantity,
		})
		total += input.Quantity
	}
	return items, total, nil
}

func normalizeShippingFee(value string) string {
	switch strings.TrimSpace(value) {
	case constants.ShippingFeePayerSender:
		return constants.ShippingFeePayerSender
	default:
		return constants.ShippingFeePayerReceiver
	}
}

// EditItems 审批前调整明细，重算汇总数量与摘要
func (s *StockRequestService) EditItems(requestID uint, inputs []SubmitItemInput) (*models.StockRequest, error) {
	var updated *models.StockRequest
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		request, err := txRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}
		if request.Status != constants.RequestStatusPending {
			return ErrAlreadyProcessed
		}
		if request.Type == constants.RequestTypeSelfPurchase {
			return ErrInvalidInput
		}

		txService := &StockRequestService{
			repo:        txRepo,
			productRepo: s.productRepo.WithTx(tx),
			userRepo:    s.userRepo,
			requestNo:   s.requestNo,
		}
		items, total, err := txService.buildItems(inputs)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].RequestID = request.ID
		}
		if err := txRepo.ReplaceItems(request.ID, items); err != nil {
			return err
		}

		request.Quantity = total
		request.ItemsSummary = buildItemsSummary(items)
		if err := txRepo.Update(request); err != nil {
			return err
		}
		request.Items = items
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Approve 审批通过。校验和库存变动在同一事务内完成，
// 任一明细库存不足则整单回滚，申请保持 pending。
func (s *StockRequestService) Approve(requestID, approverID uint) (*models.StockRequest, error) {
	approver, err := s.userRepo.GetByID(approverID)
	if err != nil {
		return nil, err
	}
	if approver == nil {
		return nil, ErrNotFound
	}

	var approved *models.StockRequest
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txProducts := s.productRepo.WithTx(tx)

		request, err := txRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}
		if request.Status != constants.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		items, err := txRepo.ListItems(request.ID)
		if err != nil {
			return err
		}
		variant, err := buildVariant(request, items)
		if err != nil {
			return err
		}

		switch v := variant.(type) {
		case selfPurchaseVariant:
			// 自购不触碰库存
		case inboundVariant:
			for _, item := range v.items {
				if err := applyStockDelta(txProducts, item, item.Quantity); err != nil {
					return err
				}
			}
		case outboundVariant:
			for _, item := range v.items {
				if err := applyStockDelta(txProducts, item, -item.Quantity); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		request.Status = constants.RequestStatusApproved
		request.ApproverID = &approverID
		request.ApproverName = approver.RealName
		request.ApprovedAt = &now
		if err := txRepo.Update(request); err != nil {
			return err
		}
		request.Items = items
		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// applyStockDelta 加锁校验后按增量调整单个商品库存
func applyStockDelta(products repository.ProductRepository, item models.StockRequestItem, delta int) error {
	product, err := products.GetByIDForUpdate(item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if delta < 0 && product.Stock < -delta {
		return &InsufficientStockError{
			ProductName: product.Name,
			Required:    -delta,
			Available:   product.Stock,
		}
	}
	rows, err := products.AdjustStock(product.ID, delta)
	if err != nil {
		return err
	}
	if rows == 0 {
		return &InsufficientStockError{
			ProductName: product.Name,
			Required:    -delta,
			Available:   product.Stock,
		}
	}
	return nil
}

// Reject 驳回申请，必须给出拒绝原因，不产生库存变动
func (s *StockRequestService) Reject(requestID, approverID uint, reason string) (*models.StockRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrInvalidInput
	}

	approver, err := s.userRepo.GetByID(approverID)
	if err != nil {
		return nil, err
	}
	if approver == nil {
		return nil, ErrNotFound
	}

	var rejected *models.StockRequest
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		request, err := txRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrNotFound
		}
		if request.Status != constants.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		now := time.Now()
		request.Status = constants.RequestStatusRejected
		request.ApproverID = &approverID
		request.ApproverName = approver.RealName
		request.ApprovedAt = &now
		request.RejectReason = reason
		if err := txRepo.Update(request); err != nil {
			return err
		}
		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// Delete 删除申请单，仅允许提交人或持有全局查看权限的用户删除待审批单
func (s *StockRequestService) Delete(requestID, operatorID uint, viewAll bool) error {
	request, err := s.repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrNotFound
	}
	if request.Status != constants.RequestStatusPending {
		return ErrAlreadyProcessed
	}
	if request.SubmitterID != operatorID && !viewAll {
		return ErrForbidden
	}
	return s.repo.Delete(requestID)
}

// Get 申请单详情
func (s *StockRequestService) Get(requestID uint) (*models.StockRequest, error) {
	request, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	return request, nil
}

// List 申请单列表
func (s *StockRequestService) List(filter repository.StockRequestListFilter) ([]models.StockRequest, int64, error) {
	return s.repo.List(filter)
}

// ListPending 待审批申请单
func (s *StockRequestService) ListPending(page, pageSize int) ([]models.StockRequest, int64, error) {
	return s.repo.List(repository.StockRequestListFilter{
		Status:    constants.RequestStatusPending,
		WithItems: true,
		Page:      page,
		PageSize:  pageSize,
	})
}

// ApprovedListFilter 发货视角的列表过滤条件
type ApprovedListFilter struct {
	Type           string
	ShippingStatus string
	Search         string
	Page           int
	PageSize       int
}

// ListApproved 已通过的出库/自购申请单（发货视角），按审批时间倒序
func (s *StockRequestService) ListApproved(filter ApprovedListFilter) ([]models.StockRequest, int64, error) {
	return s.repo.List(repository.StockRequestListFilter{
		Status:            constants.RequestStatusApproved,
		Type:              filter.Type,
		ShippingStatus:    filter.ShippingStatus,
		Search:            filter.Search,
		WithItems:         true,
		OrderByApprovedAt: true,
		Page:              filter.Page,
		PageSize:          filter.PageSize,
	})
}
