package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-textmask/pkg/openapi"
	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/presets"
	"github.com/goliatone/go-textmask/pkg/session"
)

// maskFlags selects the mask a command works with: a preset, an inline
// pattern, or an x-text-mask property of an OpenAPI document.
type maskFlags struct {
	preset          string
	pattern         string
	openapi         string
	property        string
	placeholderChar string
	noGuide         bool
	keepPositions   bool
	showMask        bool
	pipe            string
}

func (f *maskFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.preset, "preset", "p", "", "preset name (see `textmask presets`)")
	flags.StringVarP(&f.pattern, "mask", "m", "", "inline mask pattern, e.g. 99/99/9999")
	flags.StringVar(&f.openapi, "openapi", "", "OpenAPI document path or URL declaring x-text-mask properties")
	flags.StringVar(&f.property, "property", "", "property key in the OpenAPI document, e.g. createCustomer.phone")
	flags.StringVar(&f.placeholderChar, "placeholder-char", "", "placeholder character")
	flags.BoolVar(&f.noGuide, "no-guide", false, "hide placeholder characters for unfilled slots")
	flags.BoolVar(&f.keepPositions, "keep-positions", false, "keep character positions on interior edits")
	flags.BoolVar(&f.showMask, "show-mask", false, "show the placeholder when the field is empty")
	flags.StringVar(&f.pipe, "pipe", "", "named pipe applied after conforming (upper, lower)")
}

func (a *app) loadStore() (*presets.Store, error) {
	store := presets.Builtins()
	path := strings.TrimSpace(a.presets)
	if path == "" {
		return store, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	var loaded *presets.Store
	if info.IsDir() {
		loaded, err = presets.LoadFS(os.DirFS(path))
	} else {
		loaded, err = presets.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := store.Merge(loaded); err != nil {
		return nil, err
	}
	return store, nil
}

// definition resolves the selected mask and applies flag overrides.
func (a *app) definition(ctx context.Context, cmd *cobra.Command, f *maskFlags) (presets.Definition, error) {
	var (
		def presets.Definition
		err error
	)
	switch {
	case f.openapi != "":
		def, err = openAPIDefinition(ctx, f.openapi, f.property)
	case f.preset != "":
		var store *presets.Store
		store, err = a.loadStore()
		if err != nil {
			break
		}
		var ok bool
		def, ok = store.Get(f.preset)
		if !ok {
			err = fmt.Errorf("unknown preset %q (known: %s)", f.preset, strings.Join(store.Names(), ", "))
		}
	case f.pattern != "":
		def = presets.Definition{Name: "inline", Mask: f.pattern}
	default:
		err = fmt.Errorf("one of --preset, --mask or --openapi is required")
	}
	if err != nil {
		return presets.Definition{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("placeholder-char") {
		def.PlaceholderChar = f.placeholderChar
	}
	if flags.Changed("no-guide") {
		guide := !f.noGuide
		def.Guide = &guide
	}
	if flags.Changed("keep-positions") {
		def.KeepCharPositions = f.keepPositions
	}
	if flags.Changed("show-mask") {
		def.ShowMask = f.showMask
	}
	if flags.Changed("pipe") {
		def.Pipe = f.pipe
	}
	return def, nil
}

func (a *app) controller(ctx context.Context, cmd *cobra.Command, f *maskFlags) (*session.Controller, presets.Definition, error) {
	def, err := a.definition(ctx, cmd, f)
	if err != nil {
		return nil, presets.Definition{}, err
	}
	controller, err := def.Controller(pipe.NewRegistry(), session.WithLogger(a.logger))
	if err != nil {
		return nil, presets.Definition{}, err
	}
	return controller, def, nil
}

func openAPIDefinition(ctx context.Context, location, property string) (presets.Definition, error) {
	raw, err := openapi.Load(ctx, location)
	if err != nil {
		return presets.Definition{}, err
	}
	defs, err := openapi.Definitions(ctx, raw)
	if err != nil {
		return presets.Definition{}, err
	}
	if property == "" && len(defs) == 1 {
		for _, def := range defs {
			return def, nil
		}
	}
	def, ok := defs[property]
	if !ok {
		keys := make([]string, 0, len(defs))
		for key := range defs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return presets.Definition{}, fmt.Errorf("%s: no x-text-mask property %q (available: %s)", location, property, strings.Join(keys, ", "))
	}
	return def, nil
}
