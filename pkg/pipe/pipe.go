// Package pipe defines post-processing transforms applied to a conformed
// value before it is displayed.
package pipe

// Context carries the raw input and the conformance settings that produced
// the conformed value handed to a pipe.
type Context struct {
	RawValue               string
	PreviousConformedValue string
	Guide                  bool
	PlaceholderChar        rune
	Placeholder            string
	CurrentCaretPosition   int
	KeepCharPositions      bool
}

// Result is the record form of a pipe outcome. IndexesOfPipedChars lists the
// positions of the value the pipe inserted or altered itself.
type Result struct {
	Value               string
	IndexesOfPipedChars []int
	Rejected            bool
}

// Pipe transforms a conformed value. Returning false rejects the update and
// the previous conformed value is displayed instead.
type Pipe interface {
	Pipe(conformed string, ctx Context) (Result, bool)
}

// Func adapts a function returning the record form.
type Func func(conformed string, ctx Context) (Result, bool)

// Pipe implements Pipe.
func (fn Func) Pipe(conformed string, ctx Context) (Result, bool) {
	if fn == nil {
		return Result{Value: conformed}, true
	}
	return fn(conformed, ctx)
}

// StringFunc adapts a function returning a plain string; the string is taken
// verbatim as the new value.
type StringFunc func(conformed string, ctx Context) (string, bool)

// Pipe implements Pipe.
func (fn StringFunc) Pipe(conformed string, ctx Context) (Result, bool) {
	if fn == nil {
		return Result{Value: conformed}, true
	}
	value, ok := fn(conformed, ctx)
	if !ok {
		return Result{}, false
	}
	return Result{Value: value}, true
}

// Chain runs pipes in order, feeding each one the previous value. Piped
// indexes are merged and the first rejection stops the chain.
func Chain(pipes ...Pipe) Pipe {
	return Func(func(conformed string, ctx Context) (Result, bool) {
		out := Result{Value: conformed}
		seen := make(map[int]struct{})
		for _, p := range pipes {
			if p == nil {
				continue
			}
			res, ok := p.Pipe(out.Value, ctx)
			if !ok {
				return Result{}, false
			}
			out.Value = res.Value
			out.Rejected = out.Rejected || res.Rejected
			for _, idx := range res.IndexesOfPipedChars {
				if _, dup := seen[idx]; dup {
					continue
				}
				seen[idx] = struct{}{}
				out.IndexesOfPipedChars = append(out.IndexesOfPipedChars, idx)
			}
		}
		return out, true
	})
}
