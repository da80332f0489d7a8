package message

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-mailenc/message/walker"
)

// Resolve loads every pending body of the tree and transfer encodes every
// body that is not yet encoded. Bodies are loaded concurrently, see
// WithConcurrency. The first failure cancels the context passed to the
// remaining loads and is returned as a *PartError. Bodies that failed stay
// Failed; calling Resolve again returns their error without retrying.
//
// The tree must not be touched by anything else while Resolve runs.
func Resolve(ctx context.Context, m *Mail, opts ...Option) error {
	if m == nil {
		return &PartError{Err: ErrNoBody}
	}

	o := newOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	var resolveBody walker.Parts[*Mail] = func(path []int, part *Mail) error {
		sb, ok := part.Body.(*SingleBody)
		if !ok || sb.Body == nil {
			return nil
		}

		b := sb.Body
		pref := preferredEncoding(part, b)
		p := append([]int(nil), path...)
		g.Go(func() error {
			if err := b.resolve(ctx, o.registry, pref); err != nil {
				o.logger.Error().Err(err).Ints("path", p).Msg("body could not be resolved")
				return &PartError{Path: p, Err: err}
			}
			o.logger.Debug().
				Ints("path", p).
				Str("encoding", b.Encoded().Encoding.String()).
				Int("size", len(b.Encoded().Data())).
				Msg("body resolved")
			return nil
		})
		return nil
	}

	if err := resolveBody.WalkSingle(m); err != nil {
		return err
	}
	return g.Wait()
}
