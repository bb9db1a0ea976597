package mask

// Context is handed to dynamic masks on every update.
type Context struct {
	CurrentCaretPosition   int
	PreviousConformedValue string
	PlaceholderChar        rune
}

// Provider resolves the mask to apply for a raw value. Returning false
// rejects the input entirely and the previous value is kept.
type Provider interface {
	Resolve(raw string, ctx Context) (Mask, bool)
}

// Func is a dynamic mask evaluated once per update, for masks whose shape
// depends on the content typed so far.
type Func func(raw string, ctx Context) (Mask, bool)

// Resolve implements Provider.
func (fn Func) Resolve(raw string, ctx Context) (Mask, bool) {
	if fn == nil {
		return nil, false
	}
	return fn(raw, ctx)
}

var (
	_ Provider = Mask(nil)
	_ Provider = Func(nil)
)
