package models

import (
	"time"
)

type GalleryCategory string

const (
	CategoryConstruction GalleryCategory = "construction"
	CategoryCeremony     GalleryCategory = "ceremony"
	CategoryInterior     GalleryCategory = "interior"
	CategoryExterior     GalleryCategory = "exterior"
	CategoryOther        GalleryCategory = "other"
)

func (c GalleryCategory) IsValid() bool {
	switch c {
	case CategoryConstruction, CategoryCeremony, CategoryInterior, CategoryExterior, CategoryOther:
		return true
	}
	return false
}

// GalleryItem is a photo entry; publicly listed only while IsVisible.
type GalleryItem struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title"`
	TitleEn       string          `json:"titleEn"`
	Description   string          `json:"description"`
	DescriptionEn string          `json:"descriptionEn"`
	ImageURL      string          `json:"imageUrl"`
	Category      GalleryCategory `json:"category" gorm:"default:construction;index"`
	Date          time.Time       `json:"date"`
	Order         int             `json:"order" gorm:"column:sort_order;default:0"`
	IsVisible     bool            `json:"isVisible" gorm:"default:true"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
