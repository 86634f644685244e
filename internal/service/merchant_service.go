package service

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/queue"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/storage"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// MerchantService 商家注册服务
type MerchantService struct {
	repo        repository.MerchantRepository
	store       storage.Storage
	queueClient *queue.Client
}

// NewMerchantService 创建商家注册服务
func NewMerchantService(
	repo repository.MerchantRepository,
	store storage.Storage,
	queueClient *queue.Client,
) *MerchantService {
	return &MerchantService{
		repo:        repo,
		store:       store,
		queueClient: queueClient,
	}
}

// IDCardFile 身份证照片文件
type IDCardFile struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// RegisterInput 商家注册输入
type RegisterInput struct {
	UserID        uint
	UserName      string
	Phone         string
	BusinessScope string
	BusinessName1 string
	BusinessName2 string
	BusinessName3 string
	ContactName   string
	ContactPhone  string
	IDCardFront   *IDCardFile
	IDCardBack    *IDCardFile
}

// Register 提交商家注册资料
func (s *MerchantService) Register(ctx context.Context, input RegisterInput) (*models.MerchantRegistration, error) {
	phone := strings.TrimSpace(input.Phone)
	contactPhone := strings.TrimSpace(input.ContactPhone)
	if phone == "" || contactPhone == "" ||
		strings.TrimSpace(input.BusinessScope) == "" ||
		strings.TrimSpace(input.BusinessName1) == "" ||
		strings.TrimSpace(input.ContactName) == "" {
		return nil, ErrInvalidInput
	}
	if !phonePattern.MatchString(phone) || !phonePattern.MatchString(contactPhone) {
		return nil, ErrInvalidInput
	}

	registration := &models.MerchantRegistration{
		UserID:        input.UserID,
		UserName:      input.UserName,
		Phone:         phone,
		BusinessScope: strings.TrimSpace(input.BusinessScope),
		BusinessName1: strings.TrimSpace(input.BusinessName1),
		BusinessName2: strings.TrimSpace(input.BusinessName2),
		BusinessName3: strings.TrimSpace(input.BusinessName3),
		ContactName:   strings.TrimSpace(input.ContactName),
		ContactPhone:  contactPhone,
	}

	frontKey, err := s.uploadIDCard(ctx, input.UserID, "front_", input.IDCardFront)
	if err != nil {
		return nil, err
	}
	registration.IDCardFrontKey = frontKey

	backKey, err := s.uploadIDCard(ctx, input.UserID, "back_", input.IDCardBack)
	if err != nil {
		// 正面已上传成功时异步回收
		if frontKey != "" {
			_ = s.queueClient.EnqueueStorageDelete(queue.StorageDeletePayload{Keys: []string{frontKey}})
		}
		return nil, err
	}
	registration.IDCardBackKey = backKey

	if err := s.repo.Create(registration); err != nil {
		keys := collectKeys(frontKey, backKey)
		if len(keys) > 0 {
			_ = s.queueClient.EnqueueStorageDelete(queue.StorageDeletePayload{Keys: keys})
		}
		return nil, err
	}
	return registration, nil
}

func (s *MerchantService) uploadIDCard(ctx context.Context, userID uint, prefix string, file *IDCardFile) (string, error) {
	if file == nil || file.Reader == nil {
		return "", nil
	}
	if s.store == nil || !s.store.Enabled() {
		return "", ErrStorageDisabled
	}
	key := storage.MerchantKey(userID, prefix+file.FileName, time.Now())
	if err := s.store.Put(ctx, key, file.Reader, file.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

func collectKeys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}

// ViewURL 生成资料照片限时访问链接
func (s *MerchantService) ViewURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if s.store == nil || !s.store.Enabled() {
		return "", ErrStorageDisabled
	}
	return s.store.SignedReadURL(ctx, key)
}

// List 商家注册列表
func (s *MerchantService) List(filter repository.MerchantListFilter) ([]models.MerchantRegistration, int64, error) {
	return s.repo.List(filter)
}

// Review 处理商家注册（通过/驳回）
func (s *MerchantService) Review(id uint, status int, remark string) (*models.MerchantRegistration, error) {
	if status < 0 || status > 2 {
		return nil, ErrInvalidInput
	}
	registration, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrNotFound
	}

	registration.Status = status
	registration.Remark = strings.TrimSpace(remark)
	if err := s.repo.Update(registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// Delete 删除商家注册记录，照片异步清理
func (s *MerchantService) Delete(id, operatorID uint, viewAll bool) error {
	registration, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if registration == nil {
		return ErrNotFound
	}
	if registration.UserID != operatorID && !viewAll {
		return ErrForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	keys := collectKeys(registration.IDCardFrontKey, registration.IDCardBackKey)
	if len(keys) > 0 {
		_ = s.queueClient.EnqueueStorageDelete(queue.StorageDeletePayload{Keys: keys})
	}
	return nil
}
