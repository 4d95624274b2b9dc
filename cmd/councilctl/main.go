// councilctl is the operator CLI: it seeds legislative periods (the
// daemon refuses motions and meetings until one exists) and inspects
// the motion register from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"council-motions-backend/config"
	"council-motions-backend/internal/db"
	"council-motions-backend/internal/model"
	"council-motions-backend/internal/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "councilctl",
		Short:         "Operator tooling for the council motion register",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config/config.yaml", "path to the configuration file")

	root.AddCommand(periodCmd(), motionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(gormDB), nil
}

func periodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage legislative periods",
	}

	var number int
	var startStr, endStr string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a legislative period",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			p := model.Period{Number: number, StartDate: start, EndDate: end}
			if err := s.CreatePeriod(context.Background(), &p); err != nil {
				return err
			}
			fmt.Printf("created legislative period %d (%s to %s)\n",
				p.Number, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
			return nil
		},
	}
	create.Flags().IntVar(&number, "number", 0, "period number")
	create.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD)")
	create.Flags().StringVar(&endStr, "end", "", "end date (YYYY-MM-DD)")
	create.MarkFlagRequired("number")
	create.MarkFlagRequired("start")
	create.MarkFlagRequired("end")

	list := &cobra.Command{
		Use:   "list",
		Short: "List legislative periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			periods, err := s.ListPeriods(context.Background())
			if err != nil {
				return err
			}
			for _, p := range periods {
				fmt.Printf("%4d  %s  to  %s\n",
					p.Number, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func motionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "motion",
		Short: "Inspect the motion register",
	}

	var period int
	var status, motionType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List motions of a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if period == 0 {
				latest, err := s.LatestPeriod(ctx)
				if err != nil {
					return err
				}
				period = latest.Number
			}

			motions, err := s.ListMotions(ctx, period, store.MotionFilter{
				Status: model.MotionStatus(status),
				Type:   model.MotionType(motionType),
			})
			if err != nil {
				return err
			}
			for _, m := range motions {
				fmt.Printf("%d/%d  [%s]  %-22s  %s\n", m.PeriodNumber, m.Seq, m.Type, m.Status, m.Title)
			}
			return nil
		},
	}
	list.Flags().IntVar(&period, "period", 0, "period number (default: latest)")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&motionType, "type", "", "filter by motion type")

	cmd.AddCommand(list)
	return cmd
}
