package source

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE marketplaces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE buyers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			original_order_id TEXT NOT NULL,
			marketplace_id INTEGER NOT NULL,
			buyer_id INTEGER,
			product TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (marketplace_id, original_order_id)
		)`,
		`CREATE TABLE addresses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			street TEXT,
			number TEXT,
			neighborhood TEXT,
			city TEXT,
			state TEXT
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

// Five orders across three marketplaces. Statuses are stored the way
// the seeder writes them, lowercase, with one row on the schema default
// "pending".
func seedOrdersDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	exec := func(sql string, args ...any) {
		require.NoError(t, db.Exec(sql, args...).Error)
	}

	exec(`INSERT INTO marketplaces (id, name) VALUES (1, 'Shopee'), (2, 'Mercado Livre'), (3, 'Shein')`)
	exec(`INSERT INTO buyers (id, name) VALUES (1, 'Ana Souza'), (2, 'Bruno Lima'), (3, 'Carla Mendes'), (4, 'Diego Ferreira'), (5, 'Elisa Martins')`)
	exec(`INSERT INTO orders (id, original_order_id, marketplace_id, buyer_id, product, status, created_at) VALUES
		(1, 'SPE-001', 1, 1, 'Fone Bluetooth', 'delivered', '2024-01-01 10:00:00'),
		(2, 'SPE-002', 1, 2, 'Capa de Celular', 'shipped', '2024-01-02 10:00:00'),
		(3, 'ML-101', 2, 3, 'Cafeteira', 'delivered', '2024-01-03 10:00:00'),
		(4, 'ML-102', 2, 4, 'Furadeira', 'pending', '2024-01-04 10:00:00'),
		(5, 'SHN-201', 3, 5, 'Vestido Floral', 'waiting_pickup', '2024-01-05 10:00:00')`)
	exec(`INSERT INTO addresses (order_id, street, number, neighborhood, city, state) VALUES
		(1, 'Rua das Acácias', '120', 'Jardim Paulista', 'São Paulo', 'SP'),
		(3, 'Rua Augusta', '1900', 'Consolação', 'São Paulo', 'SP')`)
}

func newRelationalSource(t *testing.T) *RelationalSource {
	t.Helper()
	db := setupOrdersDB(t)
	seedOrdersDB(t, db)
	return NewRelationalSource(db, sourceTestRegistry(t), zap.NewNop())
}

func TestRelationalSourceFetchPage(t *testing.T) {
	ctx := context.Background()
	src := newRelationalSource(t)

	t.Run("returns one marketplace's orders sorted by orderId", func(t *testing.T) {
		page, err := src.FetchPage(ctx, "shopee", order.Query{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "SPE-001", page.Data[0].OrderID)
		assert.Equal(t, "SPE-002", page.Data[1].OrderID)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("renders the joined address in canonical form", func(t *testing.T) {
		page, err := src.FetchPage(ctx, "shopee", order.Query{Page: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Rua das Acácias, 120 - Jardim Paulista - São Paulo, SP", page.Data[0].Address)
	})

	t.Run("normalizes stored statuses", func(t *testing.T) {
		page, err := src.FetchPage(ctx, "mercadolivre", order.Query{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, order.StatusDelivered, page.Data[0].Status)
		assert.Equal(t, order.StatusReadyToShip, page.Data[1].Status, "schema default 'pending' maps to READY_TO_SHIP")
	})

	t.Run("pushes the search filter into SQL", func(t *testing.T) {
		page, err := src.FetchPage(ctx, "shopee", order.Query{Search: "BRUNO", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "SPE-002", page.Data[0].OrderID)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := src.FetchPage(ctx, "amazon", order.Query{Page: 1, Limit: 10})
		assert.ErrorIs(t, err, shared.ErrMarketplaceNotConfigured)
	})
}

func TestRelationalSourceFetchUnifiedPage(t *testing.T) {
	ctx := context.Background()
	src := newRelationalSource(t)

	t.Run("merges all marketplaces sorted by orderId", func(t *testing.T) {
		page, err := src.FetchUnifiedPage(ctx, order.Query{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 5)

		ids := make([]string, len(page.Data))
		for i, o := range page.Data {
			ids[i] = o.OrderID
		}
		assert.Equal(t, []string{"ML-101", "ML-102", "SHN-201", "SPE-001", "SPE-002"}, ids)
	})

	t.Run("rows carry marketplace identity", func(t *testing.T) {
		page, err := src.FetchUnifiedPage(ctx, order.Query{Page: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "mercadolivre", page.Data[0].Marketplace)
		require.NotNil(t, page.Data[0].MarketplaceInfo)
		assert.Equal(t, "Mercado Livre", page.Data[0].MarketplaceInfo.Name)
	})

	t.Run("paginates in SQL", func(t *testing.T) {
		page, err := src.FetchUnifiedPage(ctx, order.Query{Page: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "SHN-201", page.Data[0].OrderID)
		assert.Equal(t, "SPE-001", page.Data[1].OrderID)
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		require.NotNil(t, page.Next)
		require.NotNil(t, page.Previous)
	})

	t.Run("searches across the joined projection", func(t *testing.T) {
		page, err := src.FetchUnifiedPage(ctx, order.Query{Search: "consolação", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "ML-101", page.Data[0].OrderID)
	})

	t.Run("out-of-range page returns empty data with metadata", func(t *testing.T) {
		page, err := src.FetchUnifiedPage(ctx, order.Query{Page: 9, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Equal(t, 5, page.Total)
	})
}

// orderId is unique only within a marketplace. When two marketplaces
// share an orderId the unified sort must still partition pages
// deterministically, so the tie is broken on the marketplace name.
func TestRelationalSourceUnifiedTieBreak(t *testing.T) {
	ctx := context.Background()
	db := setupOrdersDB(t)

	exec := func(sql string, args ...any) {
		require.NoError(t, db.Exec(sql, args...).Error)
	}
	exec(`INSERT INTO marketplaces (id, name) VALUES (1, 'Shopee'), (2, 'Mercado Livre'), (3, 'Shein')`)
	exec(`INSERT INTO orders (id, original_order_id, marketplace_id, product, status) VALUES
		(1, 'X-001', 1, 'Fone Bluetooth', 'delivered'),
		(2, 'X-001', 3, 'Vestido Floral', 'shipped')`)

	src := NewRelationalSource(db, sourceTestRegistry(t), zap.NewNop())

	page1, err := src.FetchUnifiedPage(ctx, order.Query{Page: 1, Limit: 1})
	require.NoError(t, err)
	page2, err := src.FetchUnifiedPage(ctx, order.Query{Page: 2, Limit: 1})
	require.NoError(t, err)

	require.Len(t, page1.Data, 1)
	require.Len(t, page2.Data, 1)
	assert.Equal(t, "shein", page1.Data[0].Marketplace, "Shein sorts before Shopee on equal orderIds")
	assert.Equal(t, "shopee", page2.Data[0].Marketplace)
	assert.Equal(t, 2, page1.Total)
}

func TestRelationalSourceStatistics(t *testing.T) {
	ctx := context.Background()
	src := newRelationalSource(t)

	t.Run("counts by marketplace keyed on slug", func(t *testing.T) {
		counts, err := src.CountByMarketplace(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"shopee": 2, "mercadolivre": 2, "shein": 1}, counts)
	})

	t.Run("counts by normalized status", func(t *testing.T) {
		counts, err := src.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[order.StatusDelivered])
		assert.Equal(t, 1, counts[order.StatusShipped])
		assert.Equal(t, 1, counts[order.StatusReadyToShip])
		assert.Equal(t, 1, counts[order.StatusWaitingPickup])
	})

	t.Run("recent orders come newest first, tagged", func(t *testing.T) {
		recent, err := src.RecentOrders(ctx, 3)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "SHN-201", recent[0].OrderID)
		assert.Equal(t, "ML-102", recent[1].OrderID)
		assert.Equal(t, "shein", recent[0].Marketplace)
	})
}

func TestRelationalSourceFetchAll(t *testing.T) {
	ctx := context.Background()
	src := newRelationalSource(t)

	orders, err := src.FetchAll(ctx, "shein")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SHN-201", orders[0].OrderID)
	assert.Empty(t, orders[0].Marketplace, "fetch-all results are untagged")
}

// The search needle must reach the driver as a bound parameter, never
// spliced into the SQL text.
func TestRelationalSourceSearchBinding(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	needle := "%o'reilly%"
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WithArgs(needle, needle, needle, needle, needle).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT o\.original_order_id`).
		WithArgs(needle, needle, needle, needle, needle).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "buyer", "product", "status", "address", "marketplace_name"}))

	src := NewRelationalSource(db, sourceTestRegistry(t), zap.NewNop())
	page, err := src.FetchUnifiedPage(context.Background(), order.Query{Search: "O'Reilly", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
