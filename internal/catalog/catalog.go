package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cozythreads/storefront/internal/models"
	"github.com/cozythreads/storefront/internal/util"
)

// Repo is the read-only product catalog. Products are loaded once at
// construction; the cart and checkout paths never touch the DB for lookups.
type Repo struct {
	products []models.Product
	byID     map[int]int
}

// New seeds the products table when empty and loads the catalog into memory.
func New(db *gorm.DB) (*Repo, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("catalog: count: %w", err)
	}
	if count == 0 {
		seed := seedProducts()
		if err := db.Create(&seed).Error; err != nil {
			return nil, fmt.Errorf("catalog: seed: %w", err)
		}
	}

	var products []models.Product
	if err := db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	return FromProducts(products), nil
}

// FromProducts builds a catalog over an already-materialized product list.
func FromProducts(products []models.Product) *Repo {
	r := &Repo{products: products, byID: make(map[int]int, len(products))}
	for i, p := range products {
		r.byID[p.ID] = i
	}
	return r
}

func (r *Repo) ByID(id int) (models.Product, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return r.products[i], true
}

func (r *Repo) All() []models.Product {
	return r.products
}

// List returns one page of products plus the total count.
func (r *Repo) List(page, size int) ([]models.Product, int) {
	from, limit := util.Calculate(page, size)
	total := len(r.products)
	if from >= total {
		return []models.Product{}, total
	}
	to := from + limit
	if to > total {
		to = total
	}
	return r.products[from:to], total
}
