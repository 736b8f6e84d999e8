package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.trai.ch/forma/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [params-file]",
		Short: "Build the preview mesh of the selected parts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := c.components.Loader.Load(paramsPath(args))
			if err != nil {
				return err
			}
			set, err := partSet(cmd)
			if err != nil {
				return err
			}
			tol, _ := cmd.Flags().GetFloat64("tolerance")

			resp, err := c.request(cmd.Context(), domain.Request{
				ID:        uuid.NewString(),
				Type:      domain.RequestBuild,
				Params:    params,
				Tolerance: tol,
				Parts:     set,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mesh: %d vertices, %d triangles\n",
				resp.Mesh.VertexCount(), resp.Mesh.TriangleCount())
			return nil
		},
	}
	addPartFlags(cmd)
	cmd.Flags().Float64P("tolerance", "t", domain.DefaultTolerance, "Mesh deviation tolerance")
	return cmd
}
