package models

import "time"

// Set is one catalog set together with its two resumable sync cursors.
//
// A cursor is the offset of the next base card to process. It stays within
// [0, TotalCards] and is reset to 0 only when a pass over the set completes,
// which is also the only moment the matching LastXxxSync timestamp moves.
type Set struct {
	ID           string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name         string `gorm:"type:varchar(191)" json:"name"`
	Series       string `gorm:"type:varchar(191)" json:"series"`
	ReleaseDate  string `gorm:"type:varchar(32)" json:"release_date"`
	TotalCards   int    `gorm:"not null;default:0" json:"total_cards"`
	PrintedTotal int    `gorm:"not null;default:0" json:"printed_total"`
	SymbolURL    string `gorm:"type:varchar(512)" json:"symbol_url"`
	LogoURL      string `gorm:"type:varchar(512)" json:"logo_url"`
	// CatalogOrder is the position of the set in the catalog listing and breaks
	// ties between sets with equal sync timestamps.
	CatalogOrder int `gorm:"not null;default:0;index" json:"catalog_order"`

	PriceSyncProgress    int        `gorm:"not null;default:0" json:"price_sync_progress"`
	LastPriceSync        *time.Time `json:"last_price_sync"`
	MetadataSyncProgress int        `gorm:"not null;default:0" json:"metadata_sync_progress"`
	LastMetadataSync     *time.Time `json:"last_metadata_sync"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Set) TableName() string { return "sets" }

// Card is one edition of a base card; its ID is derived by the edition package.
type Card struct {
	ID         string   `gorm:"primaryKey;type:varchar(128)" json:"id"`
	BaseCardID string   `gorm:"type:varchar(64);not null;index" json:"base_card_id"`
	SetID      string   `gorm:"type:varchar(64);not null;index" json:"set_id"`
	Name       string   `gorm:"type:varchar(191)" json:"name"`
	Number     string   `gorm:"type:varchar(32)" json:"number"`
	Rarity     string   `gorm:"type:varchar(64)" json:"rarity"`
	Types      []string `gorm:"serializer:json;type:text" json:"types"`
	Supertype  string   `gorm:"type:varchar(64)" json:"supertype"`
	ImageSmall string   `gorm:"type:varchar(512)" json:"image_small"`
	ImageLarge string   `gorm:"type:varchar(512)" json:"image_large"`
	Edition    string   `gorm:"type:varchar(32);not null" json:"edition"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (Card) TableName() string { return "cards" }

// Price is the current price snapshot of one edition card. No history is kept.
type Price struct {
	CardID      string    `gorm:"primaryKey;type:varchar(128)" json:"card_id"`
	Market      float64   `gorm:"not null;default:0" json:"market"`
	Low         float64   `gorm:"not null;default:0" json:"low"`
	High        float64   `gorm:"not null;default:0" json:"high"`
	LastUpdated time.Time `json:"last_updated"`
}

func (Price) TableName() string { return "prices" }

// SyncStatus is the state recorded in the sync_metadata table.
type SyncStatus string

const (
	StatusInProgress SyncStatus = "in_progress"
	StatusSuccess    SyncStatus = "success"
	StatusFailed     SyncStatus = "failed"
)

// SyncMetadata is the operator-facing last-run status, one row per mode.
type SyncMetadata struct {
	ID       string     `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Status   SyncStatus `gorm:"type:varchar(16);not null" json:"status"`
	Message  string     `gorm:"type:text" json:"message"`
	LastSync *time.Time `json:"last_sync"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (SyncMetadata) TableName() string { return "sync_metadata" }

// All lists the models managed by the migrate command.
func All() []any {
	return []any{&Set{}, &Card{}, &Price{}, &SyncMetadata{}}
}
