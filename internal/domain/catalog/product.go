package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Category    string          `gorm:"column:category;not null;index" json:"category"`
	Subcategory string          `gorm:"column:subcategory" json:"subcategory,omitempty"`
	Description string          `gorm:"column:description" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Currency    string          `gorm:"column:currency;not null;default:'INR'" json:"currency"`
	Tags        datatypes.JSON  `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`

	// ExtractedFeatures is written by the feature-extraction pipeline; nil until it has run.
	ExtractedFeatures datatypes.JSON `gorm:"column:extracted_features;type:jsonb" json:"extracted_features,omitempty"`

	StyleCluster       string     `gorm:"column:style_cluster;index" json:"style_cluster,omitempty"`
	StyleConfigVersion string     `gorm:"column:style_config_version" json:"style_config_version,omitempty"`
	ClassifiedAt       *time.Time `gorm:"column:classified_at" json:"classified_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ExtractedFeatures mirrors the JSON document stored in Product.ExtractedFeatures.
type ExtractedFeatures struct {
	Fit      string   `json:"fit,omitempty"`
	Style    string   `json:"style,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Fabric   string   `json:"fabric,omitempty"`
	Occasion []string `json:"occasion,omitempty"`
}
