package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"catalog-sync/core/feed"
	"catalog-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncError wraps any failure during a single kind's sync so callers can
// tell which kind aborted a run.
type SyncError struct {
	Kind Kind
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to sync %s: %v", e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Synchronizer drives feed-to-database reconciliation. Each kind is synced
// in its own transaction: either every extracted row lands or none do.
//
// A Synchronizer assumes it is the only writer for its tables. No advisory
// lock is taken; two concurrent instances can race the check-then-create of
// table setup.
type Synchronizer struct {
	db      *gorm.DB
	fetcher feed.Fetcher
	opts    ExtractOptions
	log     *zap.Logger

	archive storage.Client
	bucket  string
}

// NewSynchronizer creates a synchronizer without snapshot archiving.
func NewSynchronizer(db *gorm.DB, fetcher feed.Fetcher, opts ExtractOptions, log *zap.Logger) *Synchronizer {
	return &Synchronizer{
		db:      db,
		fetcher: fetcher,
		opts:    opts,
		log:     log,
	}
}

// SetArchive enables best-effort raw feed snapshots into the given bucket.
// Archive failures are logged and never fail a sync.
func (s *Synchronizer) SetArchive(client storage.Client, bucket string) {
	s.archive = client
	s.bucket = bucket
}

// SyncAll syncs every kind in registry order and returns per-kind row
// counts. It stops at the first failure; kinds already committed stay
// committed.
func (s *Synchronizer) SyncAll(ctx context.Context) (map[Kind]int, error) {
	results := make(map[Kind]int, len(Kinds()))
	for _, kind := range Kinds() {
		written, err := s.SyncOne(ctx, kind)
		if err != nil {
			return results, err
		}
		results[kind] = written
	}
	return results, nil
}

// SyncOne fetches the feed and reconciles a single kind inside one
// transaction.
func (s *Synchronizer) SyncOne(ctx context.Context, kind Kind) (int, error) {
	spec, err := lookup(kind)
	if err != nil {
		return 0, err
	}
	dialect, err := dialectOf(s.db)
	if err != nil {
		return 0, &SyncError{Kind: kind, Err: err}
	}

	root, raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return 0, &SyncError{Kind: kind, Err: err}
	}
	s.archiveSnapshot(ctx, raw)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, &SyncError{Kind: kind, Err: tx.Error}
	}

	if err := EnsureTables(tx, kind); err != nil {
		tx.Rollback()
		return 0, &SyncError{Kind: kind, Err: err}
	}

	written, err := spec.run(tx, spec.upsert[dialect], root, s.opts, s.log)
	if err != nil {
		tx.Rollback()
		return 0, &SyncError{Kind: kind, Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, &SyncError{Kind: kind, Err: err}
	}

	s.log.Info("Sync committed",
		zap.String("kind", string(kind)),
		zap.Int("rows", written))
	return written, nil
}

// archiveSnapshot uploads the raw feed document. Best effort only.
func (s *Synchronizer) archiveSnapshot(ctx context.Context, raw []byte) {
	if s.archive == nil || len(raw) == 0 {
		return
	}

	object := fmt.Sprintf("snapshots/%s-%s.xml",
		time.Now().UTC().Format("20060102-150405"), uuid.NewString())
	_, err := s.archive.PutObject(ctx, s.bucket, object,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/xml"})
	if err != nil {
		s.log.Warn("Failed to archive feed snapshot",
			zap.String("object", object),
			zap.Error(err))
		return
	}
	s.log.Debug("Archived feed snapshot", zap.String("object", object))
}

func runCurrencies(tx *gorm.DB, upsert string, root *feed.Node, _ ExtractOptions, log *zap.Logger) (int, error) {
	rows, skipped := ExtractCurrencies(root)
	if skipped > 0 {
		log.Warn("Skipped currency entries without id", zap.Int("count", skipped))
	}
	for _, row := range rows {
		if err := tx.Exec(upsert, row.CurrencyID, row.Code, row.Name, row.Rate).Error; err != nil {
			return 0, fmt.Errorf("failed to upsert currency %s: %w", row.CurrencyID, err)
		}
	}
	return len(rows), nil
}

func runCategories(tx *gorm.DB, upsert string, root *feed.Node, opts ExtractOptions, log *zap.Logger) (int, error) {
	rows, skipped := ExtractCategories(root, opts)
	if skipped > 0 {
		log.Warn("Skipped category entries without an integer id", zap.Int("count", skipped))
	}
	for _, row := range rows {
		if err := tx.Exec(upsert, row.CategoryID, row.Name, row.ParentID).Error; err != nil {
			return 0, fmt.Errorf("failed to upsert category %d: %w", row.CategoryID, err)
		}
	}
	return len(rows), nil
}

// runOffers applies the batch in three phases: offer upserts, then
// attribute deletes, then attribute inserts. Phases never interleave, so an
// offer appearing twice in one feed keeps only its last attribute set.
func runOffers(tx *gorm.DB, upsert string, root *feed.Node, _ ExtractOptions, log *zap.Logger) (int, error) {
	rows, skipped := ExtractOffers(root)
	if skipped > 0 {
		log.Warn("Skipped offer entries without a vendor code", zap.Int("count", skipped))
	}

	for _, row := range rows {
		// offer_id carries a unique index; absent ids are bound as NULL so
		// id-less offers never collide on the empty string.
		var offerID interface{}
		if row.OfferID != "" {
			offerID = row.OfferID
		}
		err := tx.Exec(upsert,
			offerID, row.VendorCode, row.Available, row.Name, row.Price,
			row.CurrencyID, row.CategoryID, row.Picture, row.Description).Error
		if err != nil {
			return 0, fmt.Errorf("failed to upsert offer %s: %w", row.VendorCode, err)
		}
	}

	for _, row := range rows {
		if err := tx.Exec(offerAttributeDelete, row.VendorCode).Error; err != nil {
			return 0, fmt.Errorf("failed to clear attributes for offer %s: %w", row.VendorCode, err)
		}
	}

	for _, row := range rows {
		for _, attr := range row.Attributes {
			if err := tx.Exec(offerAttributeInsert, row.VendorCode, attr.Name, attr.Value).Error; err != nil {
				return 0, fmt.Errorf("failed to insert attribute %q for offer %s: %w", attr.Name, row.VendorCode, err)
			}
		}
	}
	return len(rows), nil
}
