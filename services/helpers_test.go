package services

import (
	"context"
	"sync"
	"testing"

	"github.com/joanie-store/storefront/internal/testutil"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordedEvent struct {
	topic     string
	eventType string
	body      string
}

// fakeSNS records every published message.
type fakeSNS struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, topicArn, eventType string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{topic: topicArn, eventType: eventType, body: string(message)})
	return f.err
}

func (f *fakeSNS) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.eventType)
	}
	return out
}

type fakeMetrics struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return nil
}

type fixture struct {
	db       *gorm.DB
	catalog  testutil.Catalog
	sns      *fakeSNS
	metrics  *fakeMetrics
	cart     CartService
	wishlist WishlistService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:      db,
		catalog: testutil.SeedCatalog(t, db),
		sns:     &fakeSNS{},
		metrics: &fakeMetrics{},
	}
	log := zap.NewNop()
	events := NewEventPublisher(f.sns, "arn:aws:sns:us-east-1:000000000000:storefront-events", f.metrics, log)
	products := repository.NewGormProductRepository(db)
	f.cart = NewCartService(repository.NewGormCartRepository(db), products, events, log)
	f.wishlist = NewWishlistService(repository.NewGormWishlistRepository(db), products, events, log)
	return f
}

func (f *fixture) quantityOf(t *testing.T, itemID string) int {
	t.Helper()
	var item models.CartItem
	if err := f.db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("load cart item %s: %v", itemID, err)
	}
	return item.Quantity
}
