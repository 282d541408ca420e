package migration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// seedOrder mirrors one entry of a mock dataset file
type seedOrder struct {
	OrderID string `json:"orderId"`
	Buyer   string `json:"buyer"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Address string `json:"address"`
}

// seedSource names one dataset file and the marketplace it belongs to
type seedSource struct {
	MarketplaceName string
	File            string
}

// Seeder loads the mock JSON datasets into the relational schema so a
// db-mode deployment starts with the same data the mock source serves
type Seeder struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSeeder creates a Seeder over an open connection
func NewSeeder(db *sql.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Seed imports every dataset in one transaction. Existing rows for the
// same marketplace and original order id are skipped, so re-running is
// safe.
func (s *Seeder) Seed(dataDir string, sources []seedSource) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, src := range sources {
		n, err := s.seedFile(tx, dataDir, src)
		if err != nil {
			return err
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	s.logger.Info("Seed completed", zap.Int("orders", total))
	return nil
}

// DefaultSeedSources returns the shipped dataset files
func DefaultSeedSources() []seedSource {
	return []seedSource{
		{MarketplaceName: "Shopee", File: "shopee-orders.json"},
		{MarketplaceName: "Mercado Livre", File: "mercadolivre-orders.json"},
		{MarketplaceName: "Shein", File: "shein-orders.json"},
	}
}

func (s *Seeder) seedFile(tx *sql.Tx, dataDir string, src seedSource) (int, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, src.File))
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset %s: %w", src.File, err)
	}

	var entries []seedOrder
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("malformed dataset %s: %w", src.File, err)
	}

	marketplaceID, err := s.upsertMarketplace(tx, src.MarketplaceName)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, e := range entries {
		var exists int
		err := tx.QueryRow(
			"SELECT COUNT(*) FROM orders WHERE marketplace_id = $1 AND original_order_id = $2",
			marketplaceID, e.OrderID,
		).Scan(&exists)
		if err != nil {
			return inserted, fmt.Errorf("failed to check order %s: %w", e.OrderID, err)
		}
		if exists > 0 {
			continue
		}

		var buyerID int64
		err = tx.QueryRow(
			"INSERT INTO buyers (name) VALUES ($1) RETURNING id", e.Buyer,
		).Scan(&buyerID)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert buyer for %s: %w", e.OrderID, err)
		}

		var orderID int64
		err = tx.QueryRow(
			"INSERT INTO orders (original_order_id, marketplace_id, buyer_id, product, status) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			e.OrderID, marketplaceID, buyerID, e.Product, strings.ToLower(e.Status),
		).Scan(&orderID)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert order %s: %w", e.OrderID, err)
		}

		street, number, neighborhood, city, state := splitAddress(e.Address)
		_, err = tx.Exec(
			"INSERT INTO addresses (order_id, street, number, neighborhood, city, state) VALUES ($1, $2, $3, $4, $5, $6)",
			orderID, street, number, neighborhood, city, state,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert address for %s: %w", e.OrderID, err)
		}
		inserted++
	}

	s.logger.Info("Dataset seeded",
		zap.String("marketplace", src.MarketplaceName),
		zap.String("file", src.File),
		zap.Int("inserted", inserted),
		zap.Int("skipped", len(entries)-inserted),
	)
	return inserted, nil
}

func (s *Seeder) upsertMarketplace(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM marketplaces WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up marketplace %q: %w", name, err)
	}

	err = tx.QueryRow("INSERT INTO marketplaces (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert marketplace %q: %w", name, err)
	}
	return id, nil
}

// splitAddress decomposes the canonical single-line form
// "street, number - neighborhood - city, state" back into columns.
// Unparseable input lands whole in street so nothing is lost.
func splitAddress(addr string) (street, number, neighborhood, city, state string) {
	parts := strings.Split(addr, " - ")
	if len(parts) != 3 {
		return addr, "", "", "", ""
	}

	if i := strings.LastIndex(parts[0], ", "); i >= 0 {
		street = parts[0][:i]
		number = parts[0][i+2:]
	} else {
		street = parts[0]
	}
	neighborhood = parts[1]
	if i := strings.LastIndex(parts[2], ", "); i >= 0 {
		city = parts[2][:i]
		state = parts[2][i+2:]
	} else {
		city = parts[2]
	}
	return street, number, neighborhood, city, state
}
