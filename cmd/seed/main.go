package main

import (
	"fmt"

	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/logger"
	"github.com/lipai-ops/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 权限字典与默认管理员
	if err := models.InitDefaultData("", ""); err != nil {
		stdLog.Fatalf("Failed to init default data: %v", err)
	}

	// 添加演示账号
	type userSeed struct {
		Username    string
		RealName    string
		UserType    string
		LeaderOf    string
		Permissions []string
	}
	userSeeds := []userSeed{
		{
			Username: "leader01",
			RealName: "组长-王丽",
			UserType: constants.UserTypeLeader,
			Permissions: []string{
				constants.PermUserView,
				constants.PermInventoryView,
				constants.PermStockSubmit,
				constants.PermStockApprove,
				constants.PermStockViewAll,
				constants.PermLogWrite,
				constants.PermLogViewAll,
				constants.PermMerchantUpload,
				constants.PermMerchantViewAll,
			},
		},
		{
			Username: "sales01",
			RealName: "业务员-李强",
			UserType: constants.UserTypeSalesman,
			LeaderOf: "leader01",
			Permissions: []string{
				constants.PermInventoryView,
				constants.PermStockSubmit,
				constants.PermLogWrite,
				constants.PermMerchantUpload,
			},
		},
		{
			Username: "sales02",
			RealName: "业务员-赵敏",
			UserType: constants.UserTypeSalesman,
			LeaderOf: "leader01",
			Permissions: []string{
				constants.PermInventoryView,
				constants.PermStockSubmit,
				constants.PermLogWrite,
				constants.PermMerchantUpload,
			},
		},
		{
			Username: "deliver01",
			RealName: "发货-张平",
			UserType: constants.UserTypeDeliver,
			Permissions: []string{
				constants.PermInventoryManage,
				constants.PermInventoryView,
				constants.PermShippingManage,
				constants.PermStockViewAll,
			},
		},
		{
			Username: "editor01",
			RealName: "剪辑-陈晨",
			UserType: constants.UserTypeEditor,
			Permissions: []string{
				constants.PermLogWrite,
			},
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("lipai123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}

	userIDs := map[string]uint{}
	for _, seed := range userSeeds {
		var existing models.User
		if err := models.DB.Where("username = ?", seed.Username).First(&existing).Error; err != nil {
			user := models.User{
				Username:     seed.Username,
				PasswordHash: string(hash),
				RealName:     seed.RealName,
				UserType:     seed.UserType,
				Status:       constants.UserStatusEnabled,
			}
			if leaderID, ok := userIDs[seed.LeaderOf]; ok {
				user.LeaderID = &leaderID
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", seed.Username, err)
				continue
			}
			userIDs[seed.Username] = user.ID
			stdLog.Printf("Created user: %s", seed.Username)
		} else {
			userIDs[seed.Username] = existing.ID
			stdLog.Printf("User already exists: %s", seed.Username)
		}
		if err := grantPermissions(userIDs[seed.Username], seed.Permissions); err != nil {
			stdLog.Printf("Failed to grant permissions for %s: %v", seed.Username, err)
		}
	}

	// 添加演示商品
	products := []models.Product{
		{
			Name:        "亚克力立牌 A5",
			SKU:         "LP-ACR-A5",
			Category:    "物料",
			Unit:        "个",
			Price:       decimal.NewFromFloat(12.50),
			Stock:       200,
			MinStock:    30,
			Description: "门店陈列用亚克力立牌，A5 尺寸",
			Status:      constants.ProductStatusActive,
		},
		{
			Name:        "宣传单页（100张/包）",
			SKU:         "LP-FLY-100",
			Category:    "物料",
			Unit:        "包",
			Price:       decimal.NewFromFloat(18.00),
			Stock:       80,
			MinStock:    10,
			Description: "铜版纸宣传单页，每包 100 张",
			Status:      constants.ProductStatusActive,
		},
		{
			Name:        "展示架折叠款",
			SKU:         "LP-RACK-01",
			Category:    "陈列",
			Unit:        "套",
			Price:       decimal.NewFromFloat(96.00),
			Stock:       25,
			MinStock:    5,
			Description: "可折叠金属展示架，含布面",
			Status:      constants.ProductStatusActive,
		},
		{
			Name:        "定制围裙",
			SKU:         "LP-APRON-01",
			Category:    "周边",
			Unit:        "件",
			Price:       decimal.NewFromFloat(22.00),
			Stock:       3,
			MinStock:    10,
			Description: "印制 logo 围裙，库存预警演示",
			Status:      constants.ProductStatusActive,
		},
		{
			Name:        "旧版台卡（停用）",
			SKU:         "LP-CARD-OLD",
			Category:    "物料",
			Unit:        "个",
			Price:       decimal.NewFromFloat(6.00),
			Stock:       0,
			MinStock:    0,
			Description: "已停用的旧版台卡",
			Status:      constants.ProductStatusInactive,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", prod.SKU)
			}
		} else {
			existing.Name = prod.Name
			existing.Category = prod.Category
			existing.Unit = prod.Unit
			existing.Price = prod.Price
			existing.MinStock = prod.MinStock
			existing.Description = prod.Description
			existing.Status = prod.Status
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.SKU)
			}
		}
	}

	// 添加演示拍摄文案模板
	templates := []models.CopywritingTemplate{
		{Title: "开业氛围", Content: "新店开业，礼派立牌已就位，欢迎打卡！", Category: "开业"},
		{Title: "日常陈列", Content: "今日门店陈列上新，细节见诚意。", Category: "日常"},
		{Title: "节日活动", Content: "节日限定物料上线，进店有惊喜。", Category: "活动"},
	}
	for _, tpl := range templates {
		var existing models.CopywritingTemplate
		if err := models.DB.Where("title = ?", tpl.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tpl).Error; err != nil {
				stdLog.Printf("Failed to create copywriting template %s: %v", tpl.Title, err)
			} else {
				stdLog.Printf("Created copywriting template: %s", tpl.Title)
			}
		} else {
			stdLog.Printf("Copywriting template already exists: %s", tpl.Title)
		}
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Demo users (password: lipai123)")
	fmt.Println("- 5 Products (含库存预警与停用演示)")
	fmt.Println("- 3 Copywriting templates")
}

func grantPermissions(userID uint, codes []string) error {
	if userID == 0 {
		return nil
	}
	for _, code := range codes {
		var permission models.Permission
		if err := models.DB.Where("code = ?", code).First(&permission).Error; err != nil {
			return err
		}
		var count int64
		if err := models.DB.Model(&models.UserPermission{}).
			Where("user_id = ? AND permission_id = ?", userID, permission.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		link := models.UserPermission{UserID: userID, PermissionID: permission.ID}
		if err := models.DB.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
