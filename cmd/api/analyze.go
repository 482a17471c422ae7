package main

import (
	"encoding/json"
	"fmt"
	"os"

	"hotelrp/cmd/internal/service"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the complete viability analysis as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			svc := service.NewAnalyticsService(a.companies, a.reference, a.engine)

			var out any
			if summary {
				resp, apierr := svc.Summary(cmd.Context())
				if apierr != nil {
					return fmt.Errorf("summary failed with status %d", apierr.Code())
				}
				out = resp
			} else {
				resp, apierr := svc.Complete(cmd.Context())
				if apierr != nil {
					return fmt.Errorf("analysis failed with status %d", apierr.Code())
				}
				out = resp
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&summary, "resumo", false, "Print the executive summary instead")
	return cmd
}
