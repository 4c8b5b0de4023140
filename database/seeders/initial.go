package seeders

import (
	"gorm.io/gorm"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/pkg/auth"
)

func init() {
	Register("roles", SeedRoles)
	Register("super-admin", SeedSuperAdmin)
	Register("catalog", SeedCatalog)
}

// SeedRoles pins the two role rows to the IDs the application hard-codes.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{RoleID: models.RoleAdmin, Name: "Admin"},
		{RoleID: models.RoleCustomer, Name: "Customer"},
	}
	for _, role := range roles {
		if err := db.Where("role_id = ?", role.RoleID).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSuperAdmin creates the one account allowed to manage other admins.
// The password comes from SUPER_ADMIN_PASSWORD so deployments never ship
// the development default.
func SeedSuperAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", models.SuperAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := auth.HashPassword(config.Get("SUPER_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:       "Super Admin",
		Email:      models.SuperAdminEmail,
		Password:   hash,
		RoleID:     models.RoleAdmin,
		IsActivate: true,
	}).Error
}

// SeedCatalog loads a small starter catalogue so a fresh install has
// something to browse. Skipped when categories already exist.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	intp := func(n int) *int { return &n }

	categories := []struct {
		category models.Category
		products []models.Product
	}{
		{
			category: models.Category{Name: "Tables"},
			products: []models.Product{
				{Name: "Oak Dining Table", Description: "Solid oak, seats six.", Price: 8_500_000, Stock: intp(12)},
				{Name: "Walnut Coffee Table", Description: "Low walnut table with storage shelf.", Price: 3_200_000, Stock: intp(20)},
			},
		},
		{
			category: models.Category{Name: "Chairs"},
			products: []models.Product{
				{Name: "Walnut Dining Chair", Description: "Upholstered seat, walnut frame.", Price: 1_450_000, Stock: intp(40)},
				{Name: "Rattan Lounge Chair", Description: "Hand-woven rattan with cushion.", Price: 2_900_000, Stock: intp(8)},
			},
		},
		{
			category: models.Category{Name: "Sofas"},
			products: []models.Product{
				{Name: "Three-Seat Linen Sofa", Description: "Linen cover, feather-wrapped cushions.", Price: 21_000_000, Stock: intp(4)},
			},
		},
	}

	for _, entry := range categories {
		if err := db.Create(&entry.category).Error; err != nil {
			return err
		}
		for _, product := range entry.products {
			product.CategoryID = entry.category.CategoryID
			if err := db.Create(&product).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
