package service

import (
	"context"
	"strings"

	"github.com/lipai-ops/internal/cache"
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 用户类型中文名
var userTypeNames = map[string]string{
	constants.UserTypeAdmin:    "管理员",
	constants.UserTypeLeader:   "组长",
	constants.UserTypeDeliver:  "发货员",
	constants.UserTypeEditor:   "剪辑",
	constants.UserTypeSalesman: "业务员",
}

// UserTypeName 用户类型的展示名，未知类型按业务员处理
func UserTypeName(userType string) string {
	if name, ok := userTypeNames[userType]; ok {
		return name
	}
	return "业务员"
}

func validUserType(userType string) bool {
	_, ok := userTypeNames[userType]
	return ok
}

// UserService 用户管理服务
type UserService struct {
	repo           repository.UserRepository
	permissionRepo repository.PermissionRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, permissionRepo repository.PermissionRepository) *UserService {
	return &UserService{
		repo:           repo,
		permissionRepo: permissionRepo,
	}
}

// UserInput 创建/更新用户输入
type UserInput struct {
	Username      string
	Password      string
	RealName      string
	Email         string
	Phone         string
	Avatar        string
	UserType      string
	LeaderID      *uint
	Status        *int
	PermissionIDs []uint
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// Get 用户详情及权限代码
func (s *UserService) Get(id uint) (*models.User, []string, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}
	codes, err := s.repo.PermissionCodes(id)
	if err != nil {
		return nil, nil, err
	}
	return user, codes, nil
}

// Create 创建用户并分配权限
func (s *UserService) Create(input UserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(input.Password) < 6 {
		return nil, ErrInvalidInput
	}
	userType := strings.TrimSpace(input.UserType)
	if userType == "" {
		userType = constants.UserTypeSalesman
	}
	if !validUserType(userType) {
		return nil, ErrInvalidInput
	}

	count, err := s.repo.CountByUsername(username, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		RealName:     strings.TrimSpace(input.RealName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Avatar:       input.Avatar,
		UserType:     userType,
		LeaderID:     input.LeaderID,
		Status:       constants.UserStatusEnabled,
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	if len(input.PermissionIDs) > 0 {
		if err := s.replacePermissions(user.ID, input.PermissionIDs); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Update 更新用户资料、权限与状态
func (s *UserService) Update(id uint, input UserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		count, err := s.repo.CountByUsername(username, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameExists
		}
		user.Username = username
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		user.TokenVersion++
	}
	if realName := strings.TrimSpace(input.RealName); realName != "" {
		user.RealName = realName
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = phone
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if userType := strings.TrimSpace(input.UserType); userType != "" {
		if !validUserType(userType) {
			return nil, ErrInvalidInput
		}
		user.UserType = userType
	}
	user.LeaderID = input.LeaderID
	if input.Status != nil {
		if *input.Status != user.Status {
			// 状态切换会使已签发 token 失效
			user.TokenVersion++
		}
		user.Status = *input.Status
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	if input.PermissionIDs != nil {
		if err := s.replacePermissions(user.ID, input.PermissionIDs); err != nil {
			return nil, err
		}
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

func (s *UserService) replacePermissions(userID uint, permissionIDs []uint) error {
	// 只保留真实存在的权限 ID
	permissions, err := s.permissionRepo.ListByIDs(permissionIDs)
	if err != nil {
		return err
	}
	validIDs := make([]uint, 0, len(permissions))
	for _, permission := range permissions {
		validIDs = append(validIDs, permission.ID)
	}
	return s.repo.ReplacePermissions(userID, validIDs)
}

// Delete 删除用户
func (s *UserService) Delete(id uint) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), id)
	return nil
}

// ListPermissions 权限字典
func (s *UserService) ListPermissions() ([]models.Permission, error) {
	return s.permissionRepo.ListAll()
}

// ListSubordinates 组长名下的业务员
func (s *UserService) ListSubordinates(leaderID uint) ([]models.User, error) {
	return s.repo.ListSubordinates(leaderID)
}

// PermissionCodes 用户权限代码
func (s *UserService) PermissionCodes(userID uint) ([]string, error) {
	return s.repo.PermissionCodes(userID)
}
