package notebook

import (
	"context"

	"github.com/kailas-cloud/learnhub/internal/domain/note"
)

// Source supplies the notebook.
type Source interface {
	Notes(ctx context.Context) ([]note.Note, error)
}
