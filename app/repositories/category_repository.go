// Package repositories holds the persistence layer. Each repository owns the
// queries for one aggregate and maps gorm's sentinel errors into the apperr
// taxonomy, so services never see a raw driver error for a missing row.
package repositories

import (
	"errors"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/orm"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

// CategoryRepository manages the category lifecycle, including the image
// asset that lives alongside each row.
type CategoryRepository struct {
	disk storage.Disk
}

// NewCategoryRepository builds a repository writing images to disk.
func NewCategoryRepository(disk storage.Disk) *CategoryRepository {
	return &CategoryRepository{disk: disk}
}

// All returns every category ordered by name.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var cats []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name asc").Get(&cats)
	return cats, err
}

// Paginate returns one page of categories with pagination metadata.
func (r *CategoryRepository) Paginate(page, perPage int) ([]models.Category, orm.Pagination, error) {
	var cats []models.Category
	p, err := orm.DB().Model(&models.Category{}).Order("name asc").GetWithPagination(&cats, page, perPage)
	return cats, p, err
}

// CategoryWithCount pairs a category with the number of products in it, for
// the back-office listing.
type CategoryWithCount struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// PaginateWithCounts returns one page of categories annotated with their
// product counts. One count query per row; admin pages are small.
func (r *CategoryRepository) PaginateWithCounts(page, perPage int) ([]CategoryWithCount, orm.Pagination, error) {
	cats, p, err := r.Paginate(page, perPage)
	if err != nil {
		return nil, p, err
	}

	out := make([]CategoryWithCount, 0, len(cats))
	for _, cat := range cats {
		n, err := orm.DB().Model(&models.Product{}).Where("category_id = ?", cat.CategoryID).Count()
		if err != nil {
			return nil, p, err
		}
		out = append(out, CategoryWithCount{Category: cat, ProductCount: n})
	}
	return out, p, nil
}

// Find loads one category by ID.
func (r *CategoryRepository) Find(id uint) (*models.Category, error) {
	var cat models.Category
	if err := orm.DB().Where("category_id = ?", id).First(&cat); err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	return &cat, nil
}

// Create validates the name, stores the image when one was uploaded, then
// inserts the row. The image is written first so a failed insert leaves at
// worst an orphan file, never a row pointing at nothing. The image is
// optional; a category without one simply has an empty Image field.
func (r *CategoryRepository) Create(name string, image *Upload) (*models.Category, error) {
	if err := r.checkName(name, 0); err != nil {
		return nil, err
	}

	var stored string
	if image != nil {
		var err error
		stored, err = saveImage(r.disk, categoryImageDir, image)
		if err != nil {
			return nil, err
		}
	}

	cat := &models.Category{Name: name, Image: stored}
	if err := orm.DB().Create(cat); err != nil {
		deleteImage(r.disk, stored)
		return nil, err
	}
	return cat, nil
}

// Update renames a category and optionally replaces its image. The old image
// is removed only after the new one is safely on disk and the row is saved.
func (r *CategoryRepository) Update(id uint, name string, image *Upload) (*models.Category, error) {
	cat, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkName(name, id); err != nil {
		return nil, err
	}

	oldImage := cat.Image
	cat.Name = name

	if image != nil {
		stored, err := saveImage(r.disk, categoryImageDir, image)
		if err != nil {
			return nil, err
		}
		cat.Image = stored
	}

	if err := orm.DB().Save(cat); err != nil {
		if cat.Image != oldImage {
			deleteImage(r.disk, cat.Image)
		}
		return nil, err
	}

	if cat.Image != oldImage {
		deleteImage(r.disk, oldImage)
	}
	return cat, nil
}

// Delete removes a category and its image. A category still referenced by
// products cannot be removed; that is a rule violation, not a fault.
func (r *CategoryRepository) Delete(id uint) error {
	cat, err := r.Find(id)
	if err != nil {
		return err
	}

	n, err := orm.DB().Model(&models.Product{}).Where("category_id = ?", id).Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.BusinessRule("Cannot delete category %q: %d products still belong to it.", cat.Name, n)
	}

	if err := orm.DB().Where("category_id = ?", id).Delete(&models.Category{}); err != nil {
		return err
	}
	deleteImage(r.disk, cat.Image)
	return nil
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Category{}).Count()
}

// checkName enforces presence and uniqueness, skipping the category's own
// row on update.
func (r *CategoryRepository) checkName(name string, selfID uint) error {
	if name == "" {
		return apperr.ValidationField("name", "The category name is required.")
	}

	q := orm.DB().Model(&models.Category{}).Where("name = ?", name)
	if selfID != 0 {
		q = q.Where("category_id <> ?", selfID)
	}
	n, err := q.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.ValidationField("name", "A category with this name already exists.")
	}
	return nil
}
