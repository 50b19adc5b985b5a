package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/demo"
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/render"
)

// rendered is one rendering of the dashboard.
type rendered struct {
	HTML     string
	Selected string
	State    map[string]bool
}

// renderDemo builds the dashboard in a throwaway scope, applies the
// assignments in one batch and renders it.
func renderDemo(cfg *config.Config, sets []string) (out rendered, err error) {
	root := reactive.NewOwner(nil)
	restore := reactive.Enter(root)
	defer func() {
		root.Dispose()
		restore()
		reactive.Release()
	}()
	defer func() {
		if r := recover(); r != nil {
			e, ok := errors.FromPanic(r)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	d := demo.New()
	if err := d.ApplyAll(sets); err != nil {
		return rendered{}, err
	}

	r := render.New(render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent})
	html, err := r.RenderToString(d.View())
	if err != nil {
		return rendered{}, errors.New("E130").Wrap(err)
	}
	return rendered{HTML: html, Selected: d.Selected(), State: d.State()}, nil
}

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		sets   []string
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard to HTML",
		Long: `Render the demo dashboard once and print the HTML.

Examples:
  declarative render
  declarative render --set loggedIn=true --set admin=true
  declarative render --set maintenance=true --pretty --out page.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if pretty {
				cfg.Render.Pretty = true
			}

			page, err := renderDemo(cfg, sets)
			if err != nil {
				return err
			}
			logger.Debug("rendered", "selected", page.Selected, "bytes", len(page.HTML))

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), page.HTML)
				if !cfg.Render.Pretty {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			}
			if err := os.WriteFile(out, []byte(page.HTML), 0644); err != nil {
				return errors.New("E130").WithDetail("Could not write " + out + ".").Wrap(err)
			}
			success(cmd.OutOrStdout(), "Wrote %s (%d bytes, branch %s)", out, len(page.HTML), page.Selected)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Signal assignment name=true|false|toggle (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")

	return cmd
}
