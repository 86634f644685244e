package constants

// 库存申请类型常量
const (
	RequestTypeInbound      = "in"
	RequestTypeOutbound     = "out"
	RequestTypeSelfPurchase = "self_purchase"
)

// 库存申请状态常量
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// 发货状态常量
const (
	ShippingStatusPending   = "pending"
	ShippingStatusShipped   = "shipped"
	ShippingStatusDelivered = "delivered"
)

// 运费承担方常量
const (
	ShippingFeePayerReceiver = "receiver"
	ShippingFeePayerSender   = "sender"
)

// 用户类型常量
const (
	UserTypeAdmin    = "admin"
	UserTypeLeader   = "leader"
	UserTypeSalesman = "salesman"
	UserTypeDeliver  = "deliver"
	UserTypeEditor   = "editor"
)

// 用户状态常量
const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

// 权限代码常量
const (
	PermUserManage      = "user_manage"
	PermUserView        = "user_view"
	PermInventoryManage = "inventory_manage"
	PermInventoryView   = "inventory_view"
	PermStockSubmit     = "stock_submit"
	PermStockApprove    = "stock_approve"
	PermStockViewAll    = "stock_view_all"
	PermShippingManage  = "shipping_manage"
	PermLogWrite        = "log_write"
	PermLogViewAll      = "log_view_all"
	PermMerchantUpload  = "merchant_upload"
	PermMerchantViewAll = "merchant_view_all"
)

// 商品状态常量
const (
	ProductStatusInactive = 0
	ProductStatusActive   = 1
)

// 商家信息审核状态常量
const (
	MerchantStatusPending  = 0
	MerchantStatusApproved = 1
	MerchantStatusRejected = 2
)

// 素材类型常量
const (
	MediaFileTypeImage = "image"
	MediaFileTypeVideo = "video"
)

// 素材每日达标任务量
const MediaDailyTarget = 5

// 队列与任务名常量
const (
	QueueDefault      = "default"
	TaskOperationLog  = "log:operation"
	TaskStorageDelete = "storage:delete"
)

// 自购申请的汇总文案前缀
const SelfPurchaseSummaryLabel = "自购立牌"
