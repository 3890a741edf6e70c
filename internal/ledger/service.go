package ledger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the balance-recalculation and trade-lifecycle engine. Every
// mutation of a farmer's or purchaser's CurrentBalance in the system goes
// through it; handlers only read balances.
type Service struct {
	db  *gorm.DB
	log *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:    db,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// partyLock returns the mutex serializing recalculation for one party.
// Keyed per {kind,id}: recalculations of different parties never contend.
func (s *Service) partyLock(kind string, id uint) *sync.Mutex {
	key := fmt.Sprintf("%s:%d", kind, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

// partyExists checks a farmer/purchaser reference before anything is
// persisted against it.
func (s *Service) partyExists(model any, id uint) error {
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
