package repositories

import (
	"errors"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/collection"
	"github.com/thanhvudev/furnimart/pkg/orm"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Search     string
	CategoryID uint
}

// ProductRepository owns product persistence, including the guarded stock
// decrement the checkout path relies on.
type ProductRepository struct {
	disk storage.Disk
}

// NewProductRepository builds a repository writing images to disk.
func NewProductRepository(disk storage.Disk) *ProductRepository {
	return &ProductRepository{disk: disk}
}

// Paginate returns one page of products matching filter, newest first.
func (r *ProductRepository) Paginate(filter ProductFilter, page, perPage int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).Preload("Category").Order("product_id desc")
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var products []models.Product
	p, err := q.GetWithPagination(&products, page, perPage)
	return products, p, err
}

// Find loads one product with its category.
func (r *ProductRepository) Find(id uint) (*models.Product, error) {
	var p models.Product
	if err := orm.DB().Preload("Category").Where("product_id = ?", id).First(&p); err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return &p, nil
}

// ByIDs loads the given products keyed by ID. Missing IDs are simply absent
// from the map; the caller decides whether that is an error.
func (r *ProductRepository) ByIDs(ids []uint) (map[uint]models.Product, error) {
	var products []models.Product
	if err := orm.DB().Where("product_id IN ?", ids).Get(&products); err != nil {
		return nil, err
	}
	return collection.KeyBy(products, func(p models.Product) uint { return p.ProductID }), nil
}

// Create stores the image (when given) and inserts the product.
func (r *ProductRepository) Create(p *models.Product, image *Upload) error {
	if image != nil {
		stored, err := saveImage(r.disk, productImageDir, image)
		if err != nil {
			return err
		}
		p.Image = stored
	}
	if err := orm.DB().Create(p); err != nil {
		deleteImage(r.disk, p.Image)
		return err
	}
	return nil
}

// Update saves changed fields, replacing the image only when a new one is
// uploaded. The old image is deleted after the save succeeds.
func (r *ProductRepository) Update(p *models.Product, image *Upload) error {
	oldImage := ""
	if image != nil {
		var current models.Product
		if err := orm.DB().Where("product_id = ?", p.ProductID).First(&current); err == nil {
			oldImage = current.Image
		}
		stored, err := saveImage(r.disk, productImageDir, image)
		if err != nil {
			return err
		}
		p.Image = stored
	}

	if err := orm.DB().Save(p); err != nil {
		if image != nil {
			deleteImage(r.disk, p.Image)
		}
		return err
	}

	if oldImage != "" && oldImage != p.Image {
		deleteImage(r.disk, oldImage)
	}
	return nil
}

// Delete removes a product and its image. Products referenced by past order
// items stay deletable; historical order lines keep their own price copy.
func (r *ProductRepository) Delete(id uint) error {
	p, err := r.Find(id)
	if err != nil {
		return err
	}
	if err := orm.DB().Where("product_id = ?", id).Delete(&models.Product{}); err != nil {
		return err
	}
	deleteImage(r.disk, p.Image)
	return nil
}

// DecrementStock atomically takes qty units off a product's stock inside tx.
// The WHERE guard makes the decrement conditional on sufficient stock; a zero
// rows-affected return means another checkout won the race and the caller
// must roll back.
func (r *ProductRepository) DecrementStock(tx *orm.Query, productID uint, qty int) (int64, error) {
	return tx.Model(&models.Product{}).
		Where("product_id = ? AND stock IS NOT NULL AND stock >= ?", productID, qty).
		Updates(map[string]interface{}{"stock": orm.Expr("stock - ?", qty)})
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Product{}).Count()
}
