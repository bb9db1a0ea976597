package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-textmask/pkg/field"
	"github.com/goliatone/go-textmask/pkg/openapi"
	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/session"
)

type conformOutput struct {
	Input       string `json:"input"`
	Value       string `json:"value"`
	Caret       int    `json:"caret"`
	Placeholder string `json:"placeholder"`
	Complete    bool   `json:"complete"`
	Rejected    bool   `json:"rejected,omitempty"`
}

func (a *app) conformCmd() *cobra.Command {
	var (
		flags  maskFlags
		asJSON bool
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "conform [value...]",
		Short: "Conform values to a mask as if each was pasted into an empty field",
		Example: `  textmask conform --preset date 12345678
  textmask conform --mask "(999) 999-9999" 2125551234 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, _, err := a.controller(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			placeholderChar := controller.Config().PlaceholderChar

			outputs := make([]conformOutput, 0, len(args))
			incomplete := 0
			for _, raw := range args {
				res, err := controller.Update(&session.State{}, session.Input{
					RawValue:      raw,
					CaretPosition: len([]rune(raw)),
				})
				if err != nil {
					return err
				}
				out := conformOutput{
					Input:       raw,
					Value:       res.Value,
					Caret:       res.CaretPosition,
					Placeholder: res.Placeholder,
					Complete:    field.Complete(res.Value, res.Placeholder, placeholderChar),
					Rejected:    res.MaskRejected || res.PipeRejected,
				}
				if !out.Complete {
					incomplete++
				}
				outputs = append(outputs, out)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(outputs); err != nil {
					return err
				}
			} else {
				for _, out := range outputs {
					fmt.Fprintln(w, out.Value)
				}
			}
			if strict && incomplete > 0 {
				return fmt.Errorf("%d of %d values did not fill the mask", incomplete, len(args))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a value leaves slots unfilled")
	return cmd
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMASK\tDESCRIPTION")
			for _, def := range store.Definitions() {
				pattern := def.Mask
				if def.IsDynamic() {
					pattern = "(dynamic)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Name, pattern, def.Description)
			}
			return tw.Flush()
		},
	}
}

type violation struct {
	file    string
	message string
}

func (a *app) lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check x-text-mask extensions in OpenAPI documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg := pipe.NewRegistry()

			var violations []violation
			for _, path := range args {
				raw, err := openapi.Load(ctx, path)
				if err != nil {
					violations = append(violations, violation{file: path, message: err.Error()})
					continue
				}
				defs, err := openapi.Definitions(ctx, raw)
				if err != nil {
					violations = append(violations, violation{file: path, message: err.Error()})
					continue
				}
				keys := make([]string, 0, len(defs))
				for key := range defs {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					if _, err := defs[key].Options(reg); err != nil {
						violations = append(violations, violation{file: path, message: fmt.Sprintf("%s: %v", key, err)})
					}
				}
				a.logger.Debug("lint: checked document", zap.String("path", path), zap.Int("masks", len(defs)))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d masked properties\n", path, len(defs))
			}

			if len(violations) == 0 {
				return nil
			}
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.file, v.message)
			}
			return errors.New("lint failed")
		},
	}
}
