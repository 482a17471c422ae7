package main

import (
	"fmt"
	"os"

	"hotelrp/cmd/internal/domain/entity"
	"hotelrp/cmd/internal/domain/jsonstore"
	"hotelrp/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <empresas.json>",
		Short: "Replace the company store with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			companies, err := jsonstore.Decode(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			companies, dropped := entity.DedupeByCNPJ(companies)
			for _, c := range dropped {
				log.Warnf("skipping duplicate CNPJ %s (%s)", c.CNPJ, c.LegalName)
			}

			for _, c := range companies {
				if c.ID == 0 {
					c.ID = uid.Generate()
				}
				if c.Sector == "" {
					c.Sector = a.classifier.ClassifyOrDefault(c.ActivityCode).Sector
				}
			}
			if err := a.companies.Save(cmd.Context(), companies); err != nil {
				return fmt.Errorf("save companies: %w", err)
			}

			log.Infof("imported %d companies into the %s store (%d duplicates skipped)", len(companies), a.cfg.StoreDriver, len(dropped))
			return nil
		},
	}
}
