package repositories

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/database"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

// fakeDisk records writes and deletes in memory. The embedded interface
// covers the Disk methods the repository never touches.
type fakeDisk struct {
	storage.Disk
	files   map[string][]byte
	deleted []string
	putErr  error
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{files: map[string][]byte{}}
}

func (d *fakeDisk) Put(path string, content []byte) error {
	if d.putErr != nil {
		return d.putErr
	}
	d.files[path] = content
	return nil
}

func (d *fakeDisk) Exists(path string) bool  { _, ok := d.files[path]; return ok }
func (d *fakeDisk) Missing(path string) bool { return !d.Exists(path) }

func (d *fakeDisk) Delete(path string) error {
	delete(d.files, path)
	d.deleted = append(d.deleted, path)
	return nil
}

// setupDB points the global handle at a throwaway sqlite file and restores
// the previous handle when the test ends.
func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func pngUpload() *Upload {
	return &Upload{
		Filename: "sofa.png",
		MIME:     "image/png",
		Size:     4,
		Content:  []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestCreateStoresImageBeforeRow(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	cat, err := repo.Create("Sofas", pngUpload())
	require.NoError(t, err)

	assert.Equal(t, "Sofas", cat.Name)
	assert.True(t, strings.HasPrefix(cat.Image, "images/categories/"))
	assert.True(t, strings.HasSuffix(cat.Image, ".png"))
	assert.True(t, disk.Exists(cat.Image))

	found, err := repo.Find(cat.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, cat.Image, found.Image)
}

func TestCreateWithoutImage(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	cat, err := repo.Create("Lamps", nil)
	require.NoError(t, err)

	assert.Empty(t, cat.Image)
	assert.Empty(t, disk.files, "an imageless create must not touch the disk")

	found, err := repo.Find(cat.CategoryID)
	require.NoError(t, err)
	assert.Empty(t, found.Image)
}

func TestCreateRejectsBadUploads(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	_, err := repo.Create("Sofas", &Upload{
		Filename: "notes.pdf",
		MIME:     "application/pdf",
		Size:     10,
		Content:  []byte("%PDF-"),
	})
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok, "disallowed MIME type must be rejected")

	_, err = repo.Create("Sofas", &Upload{
		Filename: "huge.png",
		MIME:     "image/png",
		Size:     MaxImageSize + 1,
		Content:  bytes.Repeat([]byte{0}, 8),
	})
	_, ok = apperr.AsValidation(err)
	assert.True(t, ok, "oversize upload must be rejected")

	assert.Empty(t, disk.files, "rejected uploads must not reach the disk")
}

func TestCreateDuplicateName(t *testing.T) {
	setupDB(t)
	repo := NewCategoryRepository(newFakeDisk())

	_, err := repo.Create("Chairs", pngUpload())
	require.NoError(t, err)

	_, err = repo.Create("Chairs", pngUpload())
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "name")
}

func TestUpdateKeepsOwnNameAndSwapsImage(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	cat, err := repo.Create("Tables", pngUpload())
	require.NoError(t, err)
	oldImage := cat.Image

	// Same name on the same row is not a uniqueness violation.
	updated, err := repo.Update(cat.CategoryID, "Tables", pngUpload())
	require.NoError(t, err)

	assert.NotEqual(t, oldImage, updated.Image)
	assert.True(t, disk.Exists(updated.Image))
	assert.Contains(t, disk.deleted, oldImage, "old image is removed after the swap")
}

func TestUpdateWithoutImageKeepsExisting(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	cat, err := repo.Create("Desks", pngUpload())
	require.NoError(t, err)

	updated, err := repo.Update(cat.CategoryID, "Standing Desks", nil)
	require.NoError(t, err)

	assert.Equal(t, "Standing Desks", updated.Name)
	assert.Equal(t, cat.Image, updated.Image)
	assert.Empty(t, disk.deleted)
}

func TestDeleteBlockedWhileProductsRemain(t *testing.T) {
	setupDB(t)
	disk := newFakeDisk()
	repo := NewCategoryRepository(disk)

	cat, err := repo.Create("Beds", pngUpload())
	require.NoError(t, err)

	product := models.Product{Name: "King Bed", Price: 1200000, CategoryID: cat.CategoryID}
	require.NoError(t, database.DB.Create(&product).Error)

	err = repo.Delete(cat.CategoryID)
	assert.True(t, apperr.IsBusinessRule(err))

	_, err = repo.Find(cat.CategoryID)
	assert.NoError(t, err, "a blocked delete must leave the row intact")
	assert.True(t, disk.Exists(cat.Image))

	require.NoError(t, database.DB.Delete(&product).Error)

	require.NoError(t, repo.Delete(cat.CategoryID))
	_, err = repo.Find(cat.CategoryID)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, disk.deleted, cat.Image)
}

func TestPaginateWithCounts(t *testing.T) {
	setupDB(t)
	repo := NewCategoryRepository(newFakeDisk())

	chairs, err := repo.Create("Chairs", pngUpload())
	require.NoError(t, err)
	_, err = repo.Create("Rugs", pngUpload())
	require.NoError(t, err)

	for _, name := range []string{"Office Chair", "Dining Chair"} {
		p := models.Product{Name: name, Price: 100, CategoryID: chairs.CategoryID}
		require.NoError(t, database.DB.Create(&p).Error)
	}

	rows, pagination, err := repo.PaginateWithCounts(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pagination.Total)

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Name] = row.ProductCount
	}
	assert.Equal(t, int64(2), counts["Chairs"])
	assert.Equal(t, int64(0), counts["Rugs"])
}
