package service

import (
	"errors"
	"fmt"
)

// 业务层通用错误
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidInput       = errors.New("参数错误")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountDisabled    = errors.New("账号已被禁用")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrForbidden          = errors.New("没有权限执行此操作")
	ErrAlreadyProcessed   = errors.New("该申请已处理")
	ErrNotEligible        = errors.New("申请不存在或未审批")
	ErrSKUExists          = errors.New("商品编码已存在")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrProductReferenced  = errors.New("该商品有关联的库存变动记录，无法删除")
	ErrRequestNoConflict  = errors.New("申请单号冲突")
	ErrStorageDisabled    = errors.New("对象存储未启用")
	ErrCaptchaInvalid     = errors.New("验证码错误")
)

// InsufficientStockError 库存不足错误，携带触发校验失败的商品名
type InsufficientStockError struct {
	ProductName string
	Required    int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("库存不足：%s", e.ProductName)
}

// Is 支持 errors.Is(err, ErrInsufficientStock) 判断
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ErrInsufficientStock 库存不足哨兵错误
var ErrInsufficientStock = errors.New("库存不足")
