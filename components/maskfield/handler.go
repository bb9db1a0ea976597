package maskfield

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/field"
	"github.com/goliatone/go-textmask/pkg/mask"
	"github.com/goliatone/go-textmask/pkg/presets"
	"github.com/goliatone/go-textmask/pkg/session"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// State mirrors session.State on the wire.
type State struct {
	PreviousConformedValue string `json:"previousConformedValue"`
	PreviousPlaceholder    string `json:"previousPlaceholder"`
	Initialized            bool   `json:"initialized"`
}

// ConformRequest is the POST payload. Preset wins over Mask; the remaining
// mask settings only apply to inline masks. Value is a string, a number or
// null. Caret defaults to the end of the value.
type ConformRequest struct {
	Preset string `json:"preset,omitempty"`
	Mask   string `json:"mask,omitempty"`
	Value  any    `json:"value"`
	Caret  *int   `json:"caret,omitempty"`
	State  State  `json:"state"`

	PlaceholderChar   string `json:"placeholderChar,omitempty"`
	Guide             *bool  `json:"guide,omitempty"`
	KeepCharPositions bool   `json:"keepCharPositions,omitempty"`
	ShowMask          bool   `json:"showMask,omitempty"`
	Pipe              string `json:"pipe,omitempty"`
}

// ConformResponse tells the client what to display and which state to send
// with the next edit.
type ConformResponse struct {
	Value             string `json:"value"`
	Caret             int    `json:"caret"`
	Placeholder       string `json:"placeholder"`
	CaretTraps        []int  `json:"caretTraps,omitempty"`
	SomeCharsRejected bool   `json:"someCharsRejected"`
	PipeRejected      bool   `json:"pipeRejected"`
	MaskRejected      bool   `json:"maskRejected"`
	Skipped           bool   `json:"skipped"`
	Complete          bool   `json:"complete"`
	State             State  `json:"state"`
}

// PresetInfo describes one preset in the listing.
type PresetInfo struct {
	Name        string `json:"name"`
	Mask        string `json:"mask"`
	Description string `json:"description,omitempty"`
	Dynamic     bool   `json:"dynamic,omitempty"`
}

type presetsResponse struct {
	Data []PresetInfo `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if r.Method == http.MethodPost {
			serveConform(w, r, opts)
			return
		}
		servePresets(w, r, opts)
	})
}

func servePresets(w http.ResponseWriter, r *http.Request, opts Options) {
	defs := opts.Store.Definitions()
	data := make([]PresetInfo, 0, len(defs))
	for _, def := range defs {
		data = append(data, PresetInfo{
			Name:        def.Name,
			Mask:        def.Mask,
			Description: def.Description,
			Dynamic:     def.IsDynamic(),
		})
	}
	writeJSON(w, r, presetsResponse{Data: data})
}

func serveConform(w http.ResponseWriter, r *http.Request, opts Options) {
	var req ConformRequest
	body := http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, StatusError{Code: http.StatusRequestEntityTooLarge, Err: err})
			return
		}
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("maskfield: decode request: %w", err)})
		return
	}

	def, err := resolveDefinition(req, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	controller, err := def.Controller(opts.Pipes, session.WithLogger(opts.Logger))
	if err != nil {
		writeError(w, StatusError{Code: http.StatusUnprocessableEntity, Err: err})
		return
	}

	raw, err := mask.RawValue(req.Value)
	if err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	caretPosition := len([]rune(raw))
	if req.Caret != nil {
		caretPosition = *req.Caret
	}

	st := session.State{
		PreviousConformedValue: req.State.PreviousConformedValue,
		PreviousPlaceholder:    req.State.PreviousPlaceholder,
		Initialized:            req.State.Initialized,
	}
	res, err := controller.Update(&st, session.Input{RawValue: raw, CaretPosition: caretPosition})
	if err != nil {
		writeError(w, StatusError{Code: http.StatusUnprocessableEntity, Err: err})
		return
	}

	opts.Logger.Debug("maskfield: conform",
		zap.String("preset", def.Name),
		zap.Bool("skipped", res.Skipped),
		zap.Bool("mask_rejected", res.MaskRejected),
	)

	placeholderChar := controller.Config().PlaceholderChar
	writeJSON(w, r, ConformResponse{
		Value:             res.Value,
		Caret:             res.CaretPosition,
		Placeholder:       res.Placeholder,
		CaretTraps:        res.CaretTrapIndexes,
		SomeCharsRejected: res.SomeCharsRejected,
		PipeRejected:      res.PipeRejected,
		MaskRejected:      res.MaskRejected,
		Skipped:           res.Skipped,
		Complete:          field.Complete(res.Value, res.Placeholder, placeholderChar),
		State: State{
			PreviousConformedValue: st.PreviousConformedValue,
			PreviousPlaceholder:    st.PreviousPlaceholder,
			Initialized:            st.Initialized,
		},
	})
}

func resolveDefinition(req ConformRequest, opts Options) (presets.Definition, error) {
	if name := strings.TrimSpace(req.Preset); name != "" {
		def, ok := opts.Store.Get(name)
		if !ok {
			return presets.Definition{}, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("maskfield: unknown preset %q", name)}
		}
		return def, nil
	}
	if strings.TrimSpace(req.Mask) == "" {
		return presets.Definition{}, StatusError{Code: http.StatusBadRequest, Err: errors.New("maskfield: preset or mask is required")}
	}
	if !opts.AllowInlineMask {
		return presets.Definition{}, StatusError{Code: http.StatusBadRequest, Err: errors.New("maskfield: inline masks are disabled")}
	}
	return presets.Definition{
		Name:              "inline",
		Mask:              req.Mask,
		PlaceholderChar:   req.PlaceholderChar,
		Guide:             req.Guide,
		KeepCharPositions: req.KeepCharPositions,
		ShowMask:          req.ShowMask,
		Pipe:              req.Pipe,
	}, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, err.Error(), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
