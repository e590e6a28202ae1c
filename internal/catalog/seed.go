package catalog

import (
	"github.com/cozythreads/storefront/internal/models"
)

// seedProducts is the Cozy Threads launch catalog.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Organic Cotton Tee",
			Price:       24.00,
			Description: "A soft everyday tee in GOTS-certified organic cotton.",
			Image:       "/images/products/organic-cotton-tee.jpg",
			Categories:  []string{"Tops", "Essentials"},
			Colors:      []string{"White", "Sage", "Charcoal"},
			Rating:      4.7,
			ReviewCount: 212,
		},
		{
			ID:          2,
			Name:        "Recycled Wool Sweater",
			Price:       68.00,
			Description: "Chunky crew-neck knit from post-consumer recycled wool.",
			Image:       "/images/products/recycled-wool-sweater.jpg",
			Categories:  []string{"Knitwear"},
			Colors:      []string{"Oatmeal", "Forest"},
			Rating:      4.8,
			ReviewCount: 97,
		},
		{
			ID:          3,
			Name:        "Hemp Canvas Tote",
			Price:       32.00,
			Description: "Heavyweight hemp canvas tote with interior pocket.",
			Image:       "/images/products/hemp-canvas-tote.jpg",
			Categories:  []string{"Accessories"},
			Colors:      []string{"Natural"},
			Rating:      4.5,
			ReviewCount: 54,
		},
		{
			ID:          4,
			Name:        "Linen Relaxed Trousers",
			Price:       58.00,
			Description: "Breathable European flax linen with a relaxed taper.",
			Image:       "/images/products/linen-relaxed-trousers.jpg",
			Categories:  []string{"Bottoms"},
			Colors:      []string{"Sand", "Navy", "Olive"},
			Rating:      4.6,
			ReviewCount: 143,
		},
		{
			ID:          5,
			Name:        "Bamboo Lounge Socks",
			Price:       12.00,
			Description: "Three-pack of breathable bamboo-blend crew socks.",
			Image:       "/images/products/bamboo-lounge-socks.jpg",
			Categories:  []string{"Essentials", "Accessories"},
			Colors:      []string{"Mixed"},
			Rating:      4.4,
			ReviewCount: 321,
		},
		{
			ID:          6,
			Name:        "Cork Strap Watch",
			Price:       89.00,
			Description: "Minimal quartz watch with a vegan cork strap.",
			Image:       "/images/products/cork-strap-watch.jpg",
			Categories:  []string{"Accessories"},
			Colors:      []string{"Tan", "Black"},
			Rating:      4.2,
			ReviewCount: 38,
		},
	}
}
