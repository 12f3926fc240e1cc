package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-datawriter/internal/store"
)

// Cleaner is the part of the store used to reset the database.
type Cleaner interface {
	EnsureSchema(ctx context.Context) error
	DeleteAll(ctx context.Context, kind store.Kind) (int64, error)
}

// PreparationService gets the database ready for a generation run.
type PreparationService struct {
	store Cleaner
}

// NewPreparationService returns ErrNilStore when s is nil.
func NewPreparationService(s Cleaner) (*PreparationService, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	return &PreparationService{store: s}, nil
}

// Prepare creates the schema if it does not exist.
func (s *PreparationService) Prepare(ctx context.Context) error {
	return s.store.EnsureSchema(ctx)
}

// Clear deletes all rows, children before parents.
func (s *PreparationService) Clear(ctx context.Context) error {
	kinds := store.Kinds()
	for i := len(kinds) - 1; i >= 0; i-- {
		n, err := s.store.DeleteAll(ctx, kinds[i])
		if err != nil {
			return err
		}
		log.Debug().Str("table", kinds[i].String()).Int64("deleted", n).Msg("cleared")
	}
	log.Info().Msg("database cleared")
	return nil
}
