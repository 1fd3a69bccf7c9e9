package console

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/coopbilling/internal/cooperative/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordPtr[T any] interface {
	*T
	domain.Record
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

// Site is the administrative console: the set of registered model admins,
// keyed by table name.
type Site struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	mu     sync.RWMutex
	admins map[string]ModelAdmin
}

func NewSite(p Params) *Site {
	return &Site{
		db:     p.DB,
		log:    p.Log.Named("console"),
		genID:  p.GenID,
		admins: make(map[string]ModelAdmin),
	}
}

// Register makes T visible and editable in the console with default
// behavior. Registering the same table twice fails with ErrAlreadyRegistered.
func Register[T any, PT recordPtr[T]](s *Site) error {
	admin, err := newModelAdmin[T, PT](s.db, s.genID, s.log)
	if err != nil {
		return err
	}
	return s.add(admin)
}

func (s *Site) add(admin ModelAdmin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := admin.Info().Name
	if _, ok := s.admins[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	s.admins[name] = admin
	s.log.Debug("model registered", zap.String("model", name))
	return nil
}

func (s *Site) IsRegistered(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[name]
	return ok
}

// Admin returns the admin for the model stored in table name.
func (s *Site) Admin(name string) (ModelAdmin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return admin, nil
}

// Models describes every registered model, sorted by name.
func (s *Site) Models() []ModelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ModelInfo, 0, len(s.admins))
	for _, admin := range s.admins {
		out = append(out, admin.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
