package session

import (
	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/pipe"
)

// Bundle pairs a mask with the pipe that belongs to it. A Bundle configured
// as the mask supplies the pipe for the update.
type Bundle struct {
	Mask mask.Provider
	Pipe pipe.Pipe
}

// Resolve implements mask.Provider by delegating to the bundled mask.
func (b Bundle) Resolve(raw string, ctx mask.Context) (mask.Mask, bool) {
	if b.Mask == nil {
		return nil, false
	}
	return b.Mask.Resolve(raw, ctx)
}

// split normalises the combined form into separate mask and pipe.
func split(provider mask.Provider, p pipe.Pipe) (mask.Provider, pipe.Pipe) {
	switch typed := provider.(type) {
	case Bundle:
		if typed.Mask != nil && typed.Pipe != nil {
			return typed.Mask, typed.Pipe
		}
	case *Bundle:
		if typed != nil && typed.Mask != nil && typed.Pipe != nil {
			return typed.Mask, typed.Pipe
		}
	}
	return provider, p
}
