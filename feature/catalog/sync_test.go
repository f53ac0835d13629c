package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/database"
	feedmocks "catalog-sync/core/feed/mocks"
	storagemocks "catalog-sync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func newFetcher(t *testing.T, doc string) *feedmocks.Fetcher {
	t.Helper()
	fetcher := new(feedmocks.Fetcher)
	fetcher.On("Fetch", mock.Anything).Return(parseFeed(t, doc), []byte(doc), nil)
	return fetcher
}

func countRows(t *testing.T, db *gorm.DB, query string, args ...interface{}) int {
	t.Helper()
	var count int
	require.NoError(t, db.Raw(query, args...).Scan(&count).Error)
	return count
}

func TestSyncOne_Currencies(t *testing.T) {
	db := setupSQLite(t)
	sync := NewSynchronizer(db, newFetcher(t, testFeed), ExtractOptions{}, zap.NewNop())

	written, err := sync.SyncOne(context.Background(), KindCurrency)
	assert.NoError(t, err)
	assert.Equal(t, 3, written)

	assert.Equal(t, 3, countRows(t, db, "SELECT COUNT(*) FROM currencies"))

	var rate float64
	require.NoError(t, db.Raw("SELECT rate FROM currencies WHERE currency_id = ?", "EUR").Scan(&rate).Error)
	assert.Equal(t, 89.5, rate)
}

func TestSyncOne_Idempotent(t *testing.T) {
	db := setupSQLite(t)
	sync := NewSynchronizer(db, newFetcher(t, testFeed), ExtractOptions{}, zap.NewNop())

	for i := 0; i < 2; i++ {
		written, err := sync.SyncOne(context.Background(), KindOffer)
		assert.NoError(t, err)
		assert.Equal(t, 2, written)
	}

	assert.Equal(t, 2, countRows(t, db, "SELECT COUNT(*) FROM offers"))
	// The attribute set is replaced, not accumulated
	assert.Equal(t, 2, countRows(t, db, "SELECT COUNT(*) FROM offer_attributes WHERE offer_vendor_code = ?", "SKU-101"))
}

func TestSyncOne_AttributesReplaced(t *testing.T) {
	db := setupSQLite(t)
	log := zap.NewNop()

	sync := NewSynchronizer(db, newFetcher(t, `<shop><offers>
		<offer id="1" available="true">
			<vendorCode>SKU-1</vendorCode>
			<param name="a">1</param>
			<param name="b">2</param>
			<param name="c">3</param>
		</offer>
	</offers></shop>`), ExtractOptions{}, log)

	_, err := sync.SyncOne(context.Background(), KindOffer)
	require.NoError(t, err)
	assert.Equal(t, 3, countRows(t, db, "SELECT COUNT(*) FROM offer_attributes WHERE offer_vendor_code = ?", "SKU-1"))

	// The next feed carries a single param; the stale rows must go
	sync = NewSynchronizer(db, newFetcher(t, `<shop><offers>
		<offer id="1" available="true">
			<vendorCode>SKU-1</vendorCode>
			<param name="a">updated</param>
		</offer>
	</offers></shop>`), ExtractOptions{}, log)

	_, err = sync.SyncOne(context.Background(), KindOffer)
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM offer_attributes WHERE offer_vendor_code = ?", "SKU-1"))

	var value string
	require.NoError(t, db.Raw("SELECT param_value FROM offer_attributes WHERE offer_vendor_code = ?", "SKU-1").Scan(&value).Error)
	assert.Equal(t, "updated", value)
}

func TestSyncOne_UpdatesExistingRows(t *testing.T) {
	db := setupSQLite(t)
	log := zap.NewNop()

	sync := NewSynchronizer(db, newFetcher(t, `<shop><categories>
		<category id="1">Tools</category>
	</categories></shop>`), ExtractOptions{}, log)
	_, err := sync.SyncOne(context.Background(), KindCategory)
	require.NoError(t, err)

	sync = NewSynchronizer(db, newFetcher(t, `<shop><categories>
		<category id="1" parentId="9">Renamed</category>
	</categories></shop>`), ExtractOptions{}, log)
	_, err = sync.SyncOne(context.Background(), KindCategory)
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM categories"))

	var name string
	require.NoError(t, db.Raw("SELECT name FROM categories WHERE category_id = 1").Scan(&name).Error)
	assert.Equal(t, "Renamed", name)
}

func TestSyncOne_IDLessOffersDoNotCollide(t *testing.T) {
	db := setupSQLite(t)

	sync := NewSynchronizer(db, newFetcher(t, `<shop><offers>
		<offer available="true"><vendorCode>SKU-A</vendorCode></offer>
		<offer available="true"><vendorCode>SKU-B</vendorCode></offer>
	</offers></shop>`), ExtractOptions{}, zap.NewNop())

	written, err := sync.SyncOne(context.Background(), KindOffer)
	assert.NoError(t, err)
	assert.Equal(t, 2, written)

	// Absent ids are stored as NULL, which the unique index never collides
	assert.Equal(t, 2, countRows(t, db, "SELECT COUNT(*) FROM offers"))
	assert.Equal(t, 2, countRows(t, db, "SELECT COUNT(*) FROM offers WHERE offer_id IS NULL"))
}

func TestSyncOne_DuplicateOfferIDMergesByID(t *testing.T) {
	db := setupSQLite(t)

	sync := NewSynchronizer(db, newFetcher(t, `<shop><offers>
		<offer id="101" available="true">
			<vendorCode>SKU-A</vendorCode>
			<name>First</name>
		</offer>
		<offer id="101" available="true">
			<vendorCode>SKU-B</vendorCode>
			<name>Second</name>
		</offer>
	</offers></shop>`), ExtractOptions{}, zap.NewNop())

	_, err := sync.SyncOne(context.Background(), KindOffer)
	require.NoError(t, err)

	// The second entry collides on offer_id and updates the matched row,
	// keeping its vendor code. Same outcome as MySQL's ON DUPLICATE KEY
	// UPDATE, which never updates vendor_code.
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM offers"))

	var name string
	require.NoError(t, db.Raw("SELECT name FROM offers WHERE vendor_code = ?", "SKU-A").Scan(&name).Error)
	assert.Equal(t, "Second", name)
}

func TestSyncAll(t *testing.T) {
	db := setupSQLite(t)
	sync := NewSynchronizer(db, newFetcher(t, testFeed), ExtractOptions{}, zap.NewNop())

	results, err := sync.SyncAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[Kind]int{
		KindCurrency: 3,
		KindCategory: 3,
		KindOffer:    2,
	}, results)
}

func TestSyncOne_UnknownKind(t *testing.T) {
	db := setupSQLite(t)
	sync := NewSynchronizer(db, new(feedmocks.Fetcher), ExtractOptions{}, zap.NewNop())

	_, err := sync.SyncOne(context.Background(), Kind("vehicles"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	exists, err := database.HasTable(db, "vehicles")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSyncOne_FetchFailure(t *testing.T) {
	db := setupSQLite(t)

	fetcher := new(feedmocks.Fetcher)
	fetcher.On("Fetch", mock.Anything).Return(nil, nil, errors.New("connection refused"))

	sync := NewSynchronizer(db, fetcher, ExtractOptions{}, zap.NewNop())
	_, err := sync.SyncOne(context.Background(), KindCurrency)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, KindCurrency, syncErr.Kind)

	// Nothing was created
	exists, err := database.HasTable(db, "currencies")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSyncAll_StopsAtFirstFailure(t *testing.T) {
	db := setupSQLite(t)

	fetcher := new(feedmocks.Fetcher)
	fetcher.On("Fetch", mock.Anything).Return(nil, nil, errors.New("connection refused"))

	sync := NewSynchronizer(db, fetcher, ExtractOptions{}, zap.NewNop())
	results, err := sync.SyncAll(context.Background())

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, KindCurrency, syncErr.Kind)
	assert.Empty(t, results)
}

func TestSyncOne_RollsBackOnFailure(t *testing.T) {
	db, dbMock := setupMockDB(t)

	doc := `<shop><currencies>
		<currency id="RUB" rate="1"/>
		<currency id="EUR" rate="89,50"/>
	</currencies></shop>`

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	dbMock.ExpectExec("INSERT INTO currencies").
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("INSERT INTO currencies").
		WillReturnError(errors.New("deadlock"))
	dbMock.ExpectRollback()

	sync := NewSynchronizer(db, newFetcher(t, doc), ExtractOptions{}, zap.NewNop())
	_, err := sync.SyncOne(context.Background(), KindCurrency)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, KindCurrency, syncErr.Kind)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSyncOne_AttributeFailureRollsBackOffers(t *testing.T) {
	db, dbMock := setupMockDB(t)

	doc := `<shop><offers>
		<offer id="1" available="true">
			<vendorCode>SKU-1</vendorCode>
			<param name="weight">450g</param>
		</offer>
	</offers></shop>`

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	dbMock.ExpectExec("INSERT INTO offers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("DELETE FROM offer_attributes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectExec("INSERT INTO offer_attributes").
		WillReturnError(errors.New("value too long"))
	dbMock.ExpectRollback()

	sync := NewSynchronizer(db, newFetcher(t, doc), ExtractOptions{}, zap.NewNop())
	_, err := sync.SyncOne(context.Background(), KindOffer)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, KindOffer, syncErr.Kind)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSyncOne_ArchivesSnapshot(t *testing.T) {
	db := setupSQLite(t)

	archive := new(storagemocks.Client)
	archive.On("PutObject", mock.Anything, "catalog-archive",
		mock.MatchedBy(func(name string) bool { return len(name) > len("snapshots/") }),
		mock.Anything, int64(len(testFeed)), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	sync := NewSynchronizer(db, newFetcher(t, testFeed), ExtractOptions{}, zap.NewNop())
	sync.SetArchive(archive, "catalog-archive")

	_, err := sync.SyncOne(context.Background(), KindCurrency)
	assert.NoError(t, err)
	archive.AssertExpectations(t)
}

func TestSyncOne_ArchiveFailureIsNonFatal(t *testing.T) {
	db := setupSQLite(t)

	archive := new(storagemocks.Client)
	archive.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	sync := NewSynchronizer(db, newFetcher(t, testFeed), ExtractOptions{}, zap.NewNop())
	sync.SetArchive(archive, "catalog-archive")

	written, err := sync.SyncOne(context.Background(), KindCurrency)
	assert.NoError(t, err)
	assert.Equal(t, 3, written)
}
