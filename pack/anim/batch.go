package anim

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

type File struct {
	Name string
	Data []byte
}

type Result struct {
	Name      string
	Animation *Animation
	Err       error
}

// Report is the one-line user-facing status of a decoded file.
func (r *Result) Report() string {
	if r.Err == nil {
		return fmt.Sprintf("%s: ok (%d frames, %d bones, %d warnings)", r.Name,
			r.Animation.Pose.FrameCount, r.Animation.Pose.BoneCount, len(r.Animation.Warnings))
	}
	var fe *FormatError
	if errors.As(r.Err, &fe) {
		return fmt.Sprintf("%s: %v at 0x%x: %s", r.Name, fe.Kind, fe.Offset, fe.Msg)
	}
	return fmt.Sprintf("%s: %v", r.Name, r.Err)
}

// DecodeBatch decodes every file with at most workers goroutines (<= 0 means no limit).
// Results keep the order of files. A malformed file only fails its own result.
// Files not yet started when ctx is done get ctx.Err().
func (d *Decoder) DecodeBatch(ctx context.Context, files []File, workers int) []Result {
	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range files {
		i := i
		results[i].Name = files[i].Name
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			fd := &Decoder{opts: d.opts}
			fd.opts.Logger = d.opts.Logger.WithPrefix(files[i].Name + ": ")
			results[i].Animation, results[i].Err = fd.DecodeAnimation(files[i].Data)
			return nil
		})
	}
	// workers report through results, never through the group
	_ = g.Wait()

	return results
}

// BatchErrors combines all failed results, each wrapped with its file name.
func BatchErrors(results []Result) error {
	var err error
	for i := range results {
		if results[i].Err != nil {
			err = multierr.Append(err, errors.Wrapf(results[i].Err, "%s", results[i].Name))
		}
	}
	return err
}
