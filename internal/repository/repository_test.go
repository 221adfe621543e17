package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tienda-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price, sizes string, published bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:           name,
		Price:          models.MustMoney(price),
		Published:      published,
		CategoryID:     categoryID,
		AvailableSizes: sizes,
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestProductListPriceRangeAndCategory(t *testing.T) {
	db := setupRepositoryTestDB(t)
	a := createTestCategory(t, db, "A")
	b := createTestCategory(t, db, "B")
	createTestProduct(t, db, a.ID, "p10", "10.00", "S", true)
	createTestProduct(t, db, a.ID, "p20", "20.00", "S", true)
	createTestProduct(t, db, a.ID, "p30", "30.00", "S", true)
	createTestProduct(t, db, b.ID, "b20", "20.00", "S", true)

	minPrice := decimal.NewFromInt(15)
	maxPrice := decimal.NewFromInt(25)
	products, err := NewProductRepository(db).List(ProductListFilter{
		CategoryID: &a.ID,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
	})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "p20" {
		t.Fatalf("want only p20, got %v", productNames(products))
	}
}

func TestProductListBoundsAreInclusive(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	createTestProduct(t, db, c.ID, "low", "9.99", "", true)
	createTestProduct(t, db, c.ID, "edge", "10.00", "", true)
	createTestProduct(t, db, c.ID, "high", "10.01", "", true)

	bound := decimal.RequireFromString("10")
	products, err := NewProductRepository(db).List(ProductListFilter{MinPrice: &bound, MaxPrice: &bound})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "edge" {
		t.Fatalf("want only edge, got %v", productNames(products))
	}
}

func TestProductListOnlyPublished(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	createTestProduct(t, db, c.ID, "visible", "5.00", "", true)
	createTestProduct(t, db, c.ID, "draft", "5.00", "", false)
	repo := NewProductRepository(db)

	public, err := repo.List(ProductListFilter{OnlyPublished: true})
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if len(public) != 1 || public[0].Name != "visible" {
		t.Fatalf("want only visible, got %v", productNames(public))
	}
	all, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 products, got %v", productNames(all))
	}

	draft, err := repo.GetByID(all[1].ID, true)
	if err != nil {
		t.Fatalf("get draft failed: %v", err)
	}
	if draft != nil {
		t.Fatalf("draft should be hidden when only published")
	}
}

func TestProductListSizeSubstringIgnoresCase(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	createTestProduct(t, db, c.ID, "camisa", "5.00", "S,M,L,XL", true)
	createTestProduct(t, db, c.ID, "vestido", "5.00", "xs,s", true)
	createTestProduct(t, db, c.ID, "zapato", "5.00", "38,39,40", true)

	products, err := NewProductRepository(db).List(ProductListFilter{SizeContains: "xL"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "camisa" {
		t.Fatalf("want only camisa, got %v", productNames(products))
	}

	products, err = NewProductRepository(db).List(ProductListFilter{SizeContains: "%"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("literal %% should match nothing, got %v", productNames(products))
	}
}

func TestProductListUnknownCategoryIsEmpty(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	createTestProduct(t, db, c.ID, "p", "5.00", "", true)

	missing := uint(9999)
	products, err := NewProductRepository(db).List(ProductListFilter{CategoryID: &missing})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("want empty non-nil list, got %v", products)
	}
}

func TestCategoryDeleteCascadesToProductsAndCartItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	doomed := createTestCategory(t, db, "Vestidos")
	kept := createTestCategory(t, db, "Camisas")
	p1 := createTestProduct(t, db, doomed.ID, "v1", "5.00", "", true)
	createTestProduct(t, db, doomed.ID, "v2", "5.00", "", false)
	p3 := createTestProduct(t, db, kept.ID, "c1", "5.00", "", true)

	user := createTestUser(t, db, "ana")
	carts := NewCartRepository(db)
	cart, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}
	if _, err := carts.AddItemQuantity(cart.ID, p1.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := carts.AddItemQuantity(cart.ID, p3.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	found, err := NewCategoryRepository(db).Delete(doomed.ID)
	if err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if !found {
		t.Fatalf("category should be reported as found")
	}

	var productCount int64
	db.Model(&models.Product{}).Where("category_id = ?", doomed.ID).Count(&productCount)
	if productCount != 0 {
		t.Fatalf("products of deleted category should be gone, got %d", productCount)
	}
	items, err := carts.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != p3.ID {
		t.Fatalf("only the item of the kept category should remain, got %+v", items)
	}

	found, err = NewCategoryRepository(db).Delete(doomed.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if found {
		t.Fatalf("second delete should report not found")
	}
}

func TestProductDeleteCascadesToCartItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	product := createTestProduct(t, db, c.ID, "p", "5.00", "", true)
	carts := NewCartRepository(db)
	for _, name := range []string{"ana", "luis"} {
		user := createTestUser(t, db, name)
		cart, err := carts.EnsureForUser(user.ID)
		if err != nil {
			t.Fatalf("ensure cart failed: %v", err)
		}
		if _, err := carts.AddItemQuantity(cart.ID, product.ID, 2); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}

	found, err := NewProductRepository(db).Delete(product.ID)
	if err != nil || !found {
		t.Fatalf("delete product failed: found=%v err=%v", found, err)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Fatalf("cart items should be deleted with product, got %d", count)
	}
}

func TestCartAddItemQuantityMergesDuplicates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	product := createTestProduct(t, db, c.ID, "p", "5.00", "", true)
	user := createTestUser(t, db, "ana")
	carts := NewCartRepository(db)
	cart, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}

	if _, err := carts.AddItemQuantity(cart.ID, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := carts.AddItemQuantity(cart.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", item.Quantity)
	}
	items, err := carts.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want exactly one row, got %d", len(items))
	}
}

func TestCartEnsureForUserIsIdempotent(t *testing.T) {
	db := setupRepositoryTestDB(t)
	user := createTestUser(t, db, "ana")
	carts := NewCartRepository(db)

	first, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}
	second, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart again failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("want same cart, got %d and %d", first.ID, second.ID)
	}
	if !second.OwnedBy(user.ID) {
		t.Fatalf("cart should be owned by user")
	}
	if second.Items == nil {
		t.Fatalf("items should be an empty slice, not nil")
	}
}

func TestCartDeleteCascadesToItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	c := createTestCategory(t, db, "C")
	product := createTestProduct(t, db, c.ID, "p", "5.00", "", true)
	user := createTestUser(t, db, "ana")
	carts := NewCartRepository(db)
	cart, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}
	if _, err := carts.AddItemQuantity(cart.ID, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	found, err := carts.Delete(cart.ID)
	if err != nil || !found {
		t.Fatalf("delete cart failed: found=%v err=%v", found, err)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	if count != 0 {
		t.Fatalf("items should be deleted with cart, got %d", count)
	}
}

func TestCartDeleteItemByProductReportsMissing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	user := createTestUser(t, db, "ana")
	carts := NewCartRepository(db)
	cart, err := carts.EnsureForUser(user.ID)
	if err != nil {
		t.Fatalf("ensure cart failed: %v", err)
	}
	found, err := carts.DeleteItemByProduct(cart.ID, 42)
	if err != nil {
		t.Fatalf("delete missing item failed: %v", err)
	}
	if found {
		t.Fatalf("missing item should report not found")
	}
}

func TestProductImageLookups(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	dresses := createTestCategory(t, db, "Vestidos")
	shoes := createTestCategory(t, db, "Zapatos")

	a := createTestProduct(t, db, dresses.ID, "A", "10.00", "M", true)
	b := createTestProduct(t, db, dresses.ID, "B", "10.00", "M", true)
	createTestProduct(t, db, dresses.ID, "C", "10.00", "M", true)
	d := createTestProduct(t, db, shoes.ID, "D", "10.00", "M", true)
	for product, image := range map[*models.Product]string{a: "productos/a.png", b: "productos/a.png", d: "productos/d.png"} {
		if err := db.Model(product).Update("image", image).Error; err != nil {
			t.Fatalf("set image failed: %v", err)
		}
	}

	images, err := repo.ImagesByCategory(dresses.ID)
	if err != nil {
		t.Fatalf("images by category failed: %v", err)
	}
	if len(images) != 1 || images[0] != "productos/a.png" {
		t.Fatalf("unexpected images: %v", images)
	}

	count, err := repo.CountByImage("productos/a.png")
	if err != nil {
		t.Fatalf("count by image failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}
}
