package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.trai.ch/forma/internal/core/domain"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [params-file]",
		Short: "Fuse the selected parts and write them to a file",
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
			name, _ := cmd.Flags().GetString("format")
			format, err := domain.ParseExportFormat(name)
			if err != nil {
				return err
			}
			filename, _ := cmd.Flags().GetString("output")
			dir, _ := cmd.Flags().GetString("dir")

			store, err := c.components.ArtifactsAt(dir)
			if err != nil {
				return err
			}

			resp, err := c.request(cmd.Context(), domain.Request{
				ID:       uuid.NewString(),
				Type:     domain.RequestExport,
				Params:   params,
				Parts:    set,
				Format:   format,
				Filename: filename,
			})
			if err != nil {
				return err
			}

			path, err := store.Write(*resp.File)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(resp.File.Bytes))
			return nil
		},
	}
	addPartFlags(cmd)
	cmd.Flags().StringP("format", "f", string(domain.FormatSTL), "Export format: stl or step")
	cmd.Flags().StringP("output", "o", "", "Output file name (default forma.<ext>)")
	cmd.Flags().String("dir", "", "Directory to write the file to (default current directory)")
	return cmd
}
