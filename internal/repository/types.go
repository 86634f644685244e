package repository

// UserListFilter 用户列表过滤条件
type UserListFilter struct {
	Search   string
	UserType string
	Status   *int
	Page     int
	PageSize int
}

// ProductListFilter 商品列表过滤条件
type ProductListFilter struct {
	Search   string
	Category string
	Status   *int
	Page     int
	PageSize int
}

// StockRequestListFilter 申请单列表过滤条件
type StockRequestListFilter struct {
	Status            string
	Type              string
	SubmitterID       uint
	Search            string
	StartDate         string // 按创建日期过滤，YYYY-MM-DD
	EndDate           string
	ShippingStatus    string // 按发货状态过滤，none 表示尚无发货记录
	WithItems         bool
	OrderByApprovedAt bool // 发货视角按审批时间倒序
	Page              int
	PageSize          int
}

// ShippingListFilter 发货列表过滤条件
type ShippingListFilter struct {
	ShippingStatus string
	Page           int
	PageSize       int
}

// DailyLogListFilter 工作日志列表过滤条件
type DailyLogListFilter struct {
	UserID    uint
	StartDate string
	EndDate   string
	Page      int
	PageSize  int
}

// MediaListFilter 素材列表过滤条件
type MediaListFilter struct {
	UserID            uint
	LeaderID          uint
	UploadDate        string
	FileType          string
	CopywritingFilter string // with / without
	Page              int
	PageSize          int
}

// MerchantListFilter 商家注册列表过滤条件
type MerchantListFilter struct {
	UserID   uint
	Status   *int
	Search   string
	Page     int
	PageSize int
}

// OperationLogListFilter 操作日志列表过滤条件
type OperationLogListFilter struct {
	UserID   uint
	Action   string
	Page     int
	PageSize int
}

// CopywritingListFilter 文案模版列表过滤条件
type CopywritingListFilter struct {
	Category string
	Page     int
	PageSize int
}
