package domain

import (
	"strings"
	"time"
)

// UnknownCategoryName is the label shown when a product references a
// category that no longer exists. Dangling references degrade to this
// label instead of failing the fetch.
const UnknownCategoryName = "Unknown"

type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Slug        string    `gorm:"index" json:"slug" form:"slug"`
	Description string    `json:"description" form:"description"`
	Image       string    `gorm:"size:1024" json:"image" form:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Slug        string    `gorm:"index" json:"slug" form:"slug"`
	Description string    `json:"description" form:"description"`
	PriceCents  int64     `json:"price_cents" form:"price_cents"` // minor currency units, no implied decimals
	Stock       int       `json:"stock" form:"stock"`
	Images      string    `gorm:"size:4096" json:"-"` // newline separated image URLs
	Active      bool      `json:"active" form:"active"`
	CategoryID  int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ImageList splits the stored image column into the ordered URL sequence.
func (p Product) ImageList() []string {
	if strings.TrimSpace(p.Images) == "" {
		return nil
	}
	var urls []string
	for _, line := range strings.Split(p.Images, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}

// SetImageList stores the ordered URL sequence into the image column.
func (p *Product) SetImageList(urls []string) {
	var keep []string
	for _, u := range urls {
		if s := strings.TrimSpace(u); s != "" {
			keep = append(keep, s)
		}
	}
	p.Images = strings.Join(keep, "\n")
}

// ProductView is a Product with the category reference resolved for display.
type ProductView struct {
	Product
	CategoryName string   `json:"category_name"`
	ImageURLs    []string `json:"images"`
}
