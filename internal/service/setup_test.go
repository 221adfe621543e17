package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	categories *CategoryService
	products   *ProductService
	carts      *CartService
	auth       *UserAuthService
	cfg        *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret-with-enough-length", ExpireHours: 1},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{
			MinLength:     8,
			RequireLower:  true,
			RequireNumber: true,
		}},
	}
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &testEnv{
		db:         db,
		categories: NewCategoryService(categoryRepo, 0),
		products:   NewProductService(productRepo, categoryRepo, 0),
		carts:      NewCartService(cartRepo, productRepo),
		auth:       NewUserAuthService(cfg, userRepo),
		cfg:        cfg,
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func (e *testEnv) category(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := e.categories.Create(CategoryInput{Name: strPtr(name)})
	require.NoError(t, err)
	return category
}

func (e *testEnv) product(t *testing.T, categoryID uint, name, price string, published bool) *models.Product {
	t.Helper()
	p := models.MustMoney(price).Decimal
	product, err := e.products.Create(ProductInput{
		Name:           strPtr(name),
		Price:          &p,
		CategoryID:     uintPtr(categoryID),
		Published:      boolPtr(published),
		AvailableSizes: strPtr("S,M,L"),
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) member(t *testing.T, username string) Caller {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Status: "active"}
	require.NoError(t, e.db.Create(user).Error)
	return Caller{UserID: user.ID}
}

func (e *testEnv) staff(t *testing.T, username string) Caller {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Status: "active", IsStaff: true}
	require.NoError(t, e.db.Create(user).Error)
	return Caller{UserID: user.ID, IsStaff: true}
}
