package sync

import (
	"time"

	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/edition"
	"catalog-sync/feature/catalog/models"
)

func setRow(s client.Set, order int) models.Set {
	return models.Set{
		ID:           s.ID,
		Name:         s.Name,
		Series:       s.Series,
		ReleaseDate:  s.ReleaseDate,
		TotalCards:   s.Total,
		PrintedTotal: s.PrintedTotal,
		SymbolURL:    s.Images.Symbol,
		LogoURL:      s.Images.Logo,
		CatalogOrder: order,
	}
}

func quotes(c client.Card) map[string]edition.Quote {
	if c.TCGPlayer == nil || len(c.TCGPlayer.Prices) == 0 {
		return nil
	}
	out := make(map[string]edition.Quote, len(c.TCGPlayer.Prices))
	for key, blob := range c.TCGPlayer.Prices {
		out[key] = edition.Quote{Low: blob.Low, Market: blob.Market, High: blob.High}
	}
	return out
}

// expand turns one base card into its edition rows and their prices.
func expand(c client.Card, setID string, now time.Time) ([]models.Card, []models.Price) {
	if c.Set.ID != "" {
		setID = c.Set.ID
	}

	editions := edition.Resolve(quotes(c))
	cards := make([]models.Card, 0, len(editions))
	prices := make([]models.Price, 0, len(editions))

	for _, ed := range editions {
		id := edition.ID(c.ID, ed.Edition)
		row := models.Card{
			ID:         id,
			BaseCardID: c.ID,
			SetID:      setID,
			Edition:    string(ed.Edition),
		}
		applyMetadata(&row, c, now)
		cards = append(cards, row)

		prices = append(prices, models.Price{
			CardID:      id,
			Market:      ed.Prices.Market,
			Low:         ed.Prices.Low,
			High:        ed.Prices.High,
			LastUpdated: now,
		})
	}
	return cards, prices
}

// applyMetadata copies the descriptive fields of a base card onto an edition row.
func applyMetadata(row *models.Card, c client.Card, now time.Time) {
	row.Name = c.Name
	row.Number = c.Number
	row.Rarity = c.Rarity
	row.Types = c.Types
	row.Supertype = c.Supertype
	row.ImageSmall = c.Images.Small
	row.ImageLarge = c.Images.Large
	row.UpdatedAt = now
}
