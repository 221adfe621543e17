package main

import (
	"fmt"
	"os"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Sizes       string
	Image       string
	Published   bool
}

// 演示数据：分类名 -> 商品
var catalog = []struct {
	Category string
	Products []seedProduct
}{
	{
		Category: "Vestidos",
		Products: []seedProduct{
			{Name: "Vestido rojo", Description: "Vestido de verano en algodón", Price: "49.90", Sizes: "S,M,L", Image: "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=800", Published: true},
			{Name: "Vestido largo", Description: "Vestido de noche", Price: "89.00", Sizes: "M,L", Published: true},
			{Name: "Vestido edición limitada", Description: "Aún no publicado", Price: "120.00", Sizes: "S", Published: false},
		},
	},
	{
		Category: "Zapatos",
		Products: []seedProduct{
			{Name: "Zapatilla urbana", Description: "Suela de goma", Price: "59.99", Sizes: "38,39,40,41", Published: true},
			{Name: "Sandalia", Description: "Cuero natural", Price: "35.50", Sizes: "37,38,39", Published: true},
		},
	},
	{
		Category: "Accesorios",
		Products: []seedProduct{
			{Name: "Bolso de mano", Description: "Talla única", Price: "42.00", Sizes: "", Published: true},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	log := logger.S()

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, models.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatalw("seed_database_open_failed", "error", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalw("seed_database_migrate_failed", "error", err)
	}

	if err := models.InitDefaultStaff(db, cfg.Staff.DefaultUsername, cfg.Staff.DefaultPassword); err != nil {
		log.Warnw("seed_default_staff_failed", "error", err)
	}

	for _, entry := range catalog {
		category, err := ensureCategory(db, entry.Category)
		if err != nil {
			log.Errorw("seed_category_failed", "category", entry.Category, "error", err)
			continue
		}
		for _, item := range entry.Products {
			created, err := ensureProduct(db, category.ID, item)
			if err != nil {
				log.Errorw("seed_product_failed", "product", item.Name, "error", err)
				continue
			}
			if created {
				log.Infow("seed_product_created", "product", item.Name, "category", category.Name)
			}
		}
	}
	log.Infow("seed_done")
}

// ensureCategory 按名称查找分类，不存在则创建
func ensureCategory(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error
	return &category, err
}

// ensureProduct 同一分类下按名称去重
func ensureProduct(db *gorm.DB, categoryID uint, item seedProduct) (bool, error) {
	var count int64
	if err := db.Model(&models.Product{}).
		Where("category_id = ? AND name = ?", categoryID, item.Name).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	product := models.Product{
		Name:           item.Name,
		Description:    item.Description,
		Image:          item.Image,
		Price:          models.MustMoney(item.Price),
		Published:      item.Published,
		CategoryID:     categoryID,
		AvailableSizes: item.Sizes,
	}
	return true, db.Create(&product).Error
}
