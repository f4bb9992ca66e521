package models

import (
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// MenuItemModel is the persistence model for the MenuItem aggregate root.
// Prices are whole THB but stored with decimal precision so historic data
// survives a currency-policy change.
type MenuItemModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	DisplayName string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	CategoryID  string          `gorm:"type:varchar(50);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	SpiceLevel  int             `gorm:"not null;default:0"`
	IsPopular   bool            `gorm:"not null;default:false"`
	Ingredients pq.StringArray  `gorm:"type:text[]"`
	Allergens   pq.StringArray  `gorm:"type:text[]"`
	Available   bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the persistence model to a domain MenuItem entity.
func (m *MenuItemModel) ToDomain() *catalog.MenuItem {
	return &catalog.MenuItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		DisplayName:       m.DisplayName,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		Price:             m.Price,
		ImageURL:          m.ImageURL,
		SpiceLevel:        m.SpiceLevel,
		IsPopular:         m.IsPopular,
		Ingredients:       []string(m.Ingredients),
		Allergens:         []string(m.Allergens),
		Available:         m.Available,
	}
}

// FromDomain populates the persistence model from a domain MenuItem entity.
func (m *MenuItemModel) FromDomain(item *catalog.MenuItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.Name = item.Name
	m.DisplayName = item.DisplayName
	m.Description = item.Description
	m.CategoryID = item.CategoryID
	m.Price = item.Price
	m.ImageURL = item.ImageURL
	m.SpiceLevel = item.SpiceLevel
	m.IsPopular = item.IsPopular
	m.Ingredients = pq.StringArray(item.Ingredients)
	m.Allergens = pq.StringArray(item.Allergens)
	m.Available = item.Available
}

// MenuItemModelFromDomain creates a new persistence model from a domain MenuItem entity.
func MenuItemModelFromDomain(item *catalog.MenuItem) *MenuItemModel {
	m := &MenuItemModel{}
	m.FromDomain(item)
	return m
}
