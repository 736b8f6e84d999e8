package commands

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.trai.ch/forma/internal/adapters/watcher"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <params-file>",
		Short: "Rebuild the preview mesh whenever the params file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := partSet(cmd)
			if err != nil {
				return err
			}
			tol, _ := cmd.Flags().GetFloat64("tolerance")
			window, _ := cmd.Flags().GetDuration("debounce")

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			emit := func(resp domain.Response) {
				mu.Lock()
				defer mu.Unlock()
				switch resp.Type {
				case domain.ResponseMesh:
					_, _ = fmt.Fprintf(out, "mesh: %d vertices, %d triangles\n",
						resp.Mesh.VertexCount(), resp.Mesh.TriangleCount())
				case domain.ResponseError:
					_, _ = fmt.Fprintf(out, "error: %s\n", resp.Text)
				}
			}

			return c.components.App.Watch(cmd.Context(), c.components.Watcher, c.components.Loader, app.WatchOptions{
				ParamsPath: args[0],
				Parts:      set,
				Tolerance:  tol,
				Debounce:   window,
			}, emit)
		},
	}
	addPartFlags(cmd)
	cmd.Flags().Float64P("tolerance", "t", domain.DefaultTolerance, "Mesh deviation tolerance")
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet time before rebuilding after an edit")
	return cmd
}
