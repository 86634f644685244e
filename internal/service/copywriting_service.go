package service

import (
	"math/rand"
	"strings"

	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"
)

// CopywritingService 文案模版服务
type CopywritingService struct {
	repo      repository.CopywritingRepository
	mediaRepo repository.MediaRepository
}

// NewCopywritingService 创建文案模版服务
func NewCopywritingService(
	repo repository.CopywritingRepository,
	mediaRepo repository.MediaRepository,
) *CopywritingService {
	return &CopywritingService{
		repo:      repo,
		mediaRepo: mediaRepo,
	}
}

// TemplateInput 模版创建/更新输入
type TemplateInput struct {
	Title     string
	Category  string
	Content   string
	CreatedBy uint
}

// List 模版列表
func (s *CopywritingService) List(filter repository.CopywritingListFilter) ([]models.CopywritingTemplate, int64, error) {
	return s.repo.List(filter)
}

// Create 创建模版
func (s *CopywritingService) Create(input TemplateInput) (*models.CopywritingTemplate, error) {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	content := strings.TrimSpace(input.Content)
	if title == "" || category == "" || content == "" {
		return nil, ErrInvalidInput
	}
	template := &models.CopywritingTemplate{
		Title:     title,
		Category:  category,
		Content:   content,
		CreatedBy: input.CreatedBy,
	}
	if err := s.repo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Update 更新模版
func (s *CopywritingService) Update(id uint, input TemplateInput) (*models.CopywritingTemplate, error) {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	content := strings.TrimSpace(input.Content)
	if title == "" || category == "" || content == "" {
		return nil, ErrInvalidInput
	}

	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNotFound
	}

	template.Title = title
	template.Category = category
	template.Content = content
	if err := s.repo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete 删除模版
func (s *CopywritingService) Delete(id uint) error {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// Random 随机取一条模版，供素材文案快速填充
func (s *CopywritingService) Random(category string) (*models.CopywritingTemplate, error) {
	templates, _, err := s.repo.List(repository.CopywritingListFilter{Category: category})
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, ErrNotFound
	}
	picked := templates[rand.Intn(len(templates))]
	return &picked, nil
}

// MarkTemplateUsed 模版使用计数自增
func (s *CopywritingService) MarkTemplateUsed(id uint) error {
	if id == 0 {
		return nil
	}
	return s.repo.IncrementUseCount(id)
}
