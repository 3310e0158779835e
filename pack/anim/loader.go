package anim

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mogaika/anim_browser/pack"
	"github.com/mogaika/anim_browser/utils"
)

// SetDefaultOptions replaces the options of Decode, DecodeAnimation and the .ANIM
// pack handler. Call it before any decoding starts.
func SetDefaultOptions(opts Options) {
	defaultDecoder = NewDecoder(opts)
}

func init() {
	pack.SetHandler(".ANIM", func(src utils.ResourceSource, r *io.SectionReader) (interface{}, error) {
		data := make([]byte, r.Size())
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.Wrapf(err, "Failed to read %s", src.Name())
		}
		return DecodeAnimation(data)
	})
}
