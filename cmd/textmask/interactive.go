package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-textmask/pkg/field/teainput"
	"github.com/goliatone/go-textmask/pkg/field/terminal"
)

func label(name string) string {
	if name == "" {
		return "value"
	}
	return name
}

func (a *app) editCmd() *cobra.Command {
	var (
		flags   maskFlags
		initial string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a masked value in the terminal, key by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, def, err := a.controller(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			editor, err := terminal.NewEditor(controller,
				terminal.WithPrompt(label(def.Name)+": "),
				terminal.WithInitialValue(initial),
				terminal.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			value, err := editor.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&initial, "value", "", "initial value")
	return cmd
}

func (a *app) tuiCmd() *cobra.Command {
	var (
		flags   maskFlags
		initial string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a masked value in a full-screen text input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, def, err := a.controller(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			model, err := teainput.New(controller,
				teainput.WithLabel(label(def.Name)),
				teainput.WithInitialValue(initial),
			)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			result, ok := final.(teainput.Model)
			if !ok {
				return fmt.Errorf("unexpected model %T", final)
			}
			if result.Aborted() {
				return terminal.ErrAborted
			}
			if err := result.Err(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Value())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&initial, "value", "", "initial value")
	return cmd
}

func (a *app) promptCmd() *cobra.Command {
	var (
		flags      maskFlags
		message    string
		help       string
		incomplete bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a value and conform the answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, def, err := a.controller(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			if message == "" {
				message = fmt.Sprintf("%s (%s)", label(def.Name), def.Mask)
			}
			p := &terminal.Prompt{
				Message:         message,
				Help:            help,
				Controller:      controller,
				AllowIncomplete: incomplete,
			}
			value, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&message, "message", "", "question shown to the user")
	cmd.Flags().StringVar(&help, "help-text", "", "help shown when the user types ?")
	cmd.Flags().BoolVar(&incomplete, "allow-incomplete", false, "accept answers that leave slots unfilled")
	return cmd
}
