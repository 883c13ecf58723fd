package decoder

import (
	"context"

	"github.com/mdt-route/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one input of a batch, at the input's position.
type BatchItem struct {
	Index  int
	Result *models.DecodeResult
	Err    error
}

// DecodeBatch decodes inputs in parallel, at most Options.MaxConcurrent at a
// time. A failing item does not stop the others. Items not started before ctx
// is done carry ctx's error.
func (d *Decoder) DecodeBatch(ctx context.Context, inputs []string) []BatchItem {
	items := make([]BatchItem, len(inputs))

	var g errgroup.Group
	g.SetLimit(d.opts.MaxConcurrent)

	for i, input := range inputs {
		items[i].Index = i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result, items[i].Err = d.Decode(input)
			return nil
		})
	}
	g.Wait()

	return items
}
