package simulate

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/handlers"
	"github.com/nebulashop/storefront/internal/models"
)

// Simulator auto-progresses orders through the forward chain for demo
// purposes. One cancellable timer per order, keyed by order id; a failed
// transition is logged and dropped, never retried.
type Simulator struct {
	DB  *gorm.DB
	Log *slog.Logger

	MinDelay time.Duration
	MaxDelay time.Duration

	mu      sync.Mutex
	timers  map[uint]*time.Timer
	stopped bool
}

func New(db *gorm.DB, log *slog.Logger, minDelay, maxDelay time.Duration) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{
		DB:       db,
		Log:      log,
		MinDelay: minDelay,
		MaxDelay: maxDelay,
		timers:   make(map[uint]*time.Timer),
	}
}

// Track schedules the next forward step for an order after a randomized
// delay. Tracking an already-tracked order resets its timer.
func (s *Simulator) Track(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.delay(), func() { s.advance(orderID) })
}

// TrackExisting schedules every non-terminal order already in the store.
func (s *Simulator) TrackExisting() error {
	var orders []models.Order
	err := s.DB.
		Where("status NOT IN ?", []string{models.StatusDelivered, models.StatusCancelled}).
		Find(&orders).Error
	if err != nil {
		return err
	}
	for _, o := range orders {
		s.Track(o.ID)
	}
	return nil
}

func (s *Simulator) Cancel(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}

// Stop tears down every pending timer; the simulator cannot be restarted.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Simulator) delay() time.Duration {
	span := s.MaxDelay - s.MinDelay
	if span <= 0 {
		return s.MinDelay
	}
	return s.MinDelay + time.Duration(rand.Int63n(int64(span)))
}

func (s *Simulator) advance(orderID uint) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.timers, orderID)
	s.mu.Unlock()

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		s.Log.Warn("simulate: order load failed", "orderID", orderID, "error", err)
		return
	}

	next, ok := models.NextStatus(order.Status)
	if !ok {
		return
	}

	if err := handlers.ApplyStatus(s.DB, &order, next); err != nil {
		s.Log.Warn("simulate: status update dropped", "orderID", orderID, "status", next, "error", err)
		return
	}

	s.Log.Info("simulate: order advanced", "orderID", orderID, "status", next)

	if _, more := models.NextStatus(next); more {
		s.Track(orderID)
	}
}
