package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source fetches raw product records. Records arrive without a
// session-unique identity; the loader assigns one.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// Loader populates the store from a source. A failed fetch leaves the
// store at its previous contents.
type Loader struct {
	Source Source
	Store  *Store
	Log    *zap.Logger
}

func (l *Loader) Load(ctx context.Context) error {
	products, err := l.Source.Fetch(ctx)
	if err != nil {
		if l.Log != nil {
			l.Log.Error("catalog fetch failed", zap.Error(err))
		}
		return err
	}

	for i := range products {
		products[i].UUID = uuid.NewString()
	}
	l.Store.Replace(products)

	if l.Log != nil {
		l.Log.Info("catalog loaded", zap.Int("products", len(products)))
	}
	return nil
}
