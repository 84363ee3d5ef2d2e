package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	rivers "github.com/Serapieum-of-alex/digital-rivers"
	"github.com/Serapieum-of-alex/digital-rivers/dem"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "rivers",
		Short:        "derive D8 water-flow routing from digital elevation models",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := log.InfoLevel
			if verbose {
				lvl = log.DebugLevel
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05",
				Level:           lvl,
			})
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")

	root.AddCommand(routeCmd(), tableCmd(), basinsCmd())
	return root.ExecuteContext(ctx)
}

var logger *log.Logger

func routeCmd() *cobra.Command {
	var (
		gdefFP, demFP, prfx string
		outfalls            []string
		layered             bool
		passes              int
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "fill sinks, assign flow directions and accumulate flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, gd, err := rivers.LoadElevation(gdefFP, demFP)
			if err != nil {
				return err
			}
			logger.Info("elevation loaded", "rows", g.Nr, "cols", g.Nc, "valid", g.Nvalid())

			ovr, err := parseOutfalls(outfalls)
			if err != nil {
				return err
			}
			ovds, err := rivers.Overrides(gd, ovr)
			if err != nil {
				return err
			}
			for _, o := range ovds {
				logger.Debug("outfall forced", "row", o.Row, "col", o.Col, "dir", o.Dir)
			}

			uiprogress.Start()
			bar := uiprogress.AddBar(5).AppendCompleted()

			var filled *dem.Grid
			if passes > 1 {
				var n int
				filled, n = g.FillSinksN(passes)
				logger.Debug("sinks filled", "passes", n)
			} else {
				filled = g.FillSinks()
			}
			bar.Incr()

			slopes := filled.Slopes()
			bar.Incr()

			fd, err := dem.FlowDirection(filled, slopes, ovds)
			if err != nil {
				return err
			}
			bar.Incr()

			accumulate := dem.Accumulate
			if layered {
				accumulate = dem.AccumulateConcurrent
			}
			acc, err := accumulate(cmd.Context(), filled, fd)
			if err != nil {
				return err
			}
			bar.Incr()

			x := &rivers.Routing{Filled: filled, Slopes: slopes, Dir: fd, Acc: acc}
			if err := x.SaveBils(gd, prfx); err != nil {
				return err
			}
			bar.Incr()
			uiprogress.Stop()
			logger.Info("routing saved", "prefix", prfx)
			return nil
		},
	}
	cmd.Flags().StringVar(&gdefFP, "gdef", "", "grid definition file")
	cmd.Flags().StringVar(&demFP, "dem", "", "elevation raster (bil)")
	cmd.Flags().StringVar(&prfx, "out", "routing.", "output file prefix")
	cmd.Flags().StringArrayVar(&outfalls, "outfall", nil, "forced outlet as easting,northing,direction (0=S..7=SE)")
	cmd.Flags().BoolVar(&layered, "layered", false, "use the layer-parallel accumulator")
	cmd.Flags().IntVar(&passes, "fill-passes", 1, "maximum sink-filling passes")
	cmd.MarkFlagRequired("gdef")
	cmd.MarkFlagRequired("dem")
	return cmd
}

func tableCmd() *cobra.Command {
	var gdefFP, fdFP, outFP string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "build upstream adjacency from a bit-coded direction raster",
		RunE: func(cmd *cobra.Command, args []string) error {
			gd, err := rivers.LoadGDEF(gdefFP)
			if err != nil {
				return err
			}
			bd, err := rivers.LoadIntGrid(gd, fdFP)
			if err != nil {
				return err
			}
			tbl, err := dem.Upslopes(bd, dem.NoData)
			if err != nil {
				return err
			}
			logger.Info("adjacency built", "cells", len(tbl))
			return rivers.SaveUpslopeCounts(gd, outFP, tbl)
		},
	}
	cmd.Flags().StringVar(&gdefFP, "gdef", "", "grid definition file")
	cmd.Flags().StringVar(&fdFP, "fd", "", "bit-coded direction raster (1,2,4,...,128)")
	cmd.Flags().StringVar(&outFP, "out", "nus.bil", "upstream-count raster")
	cmd.MarkFlagRequired("gdef")
	cmd.MarkFlagRequired("fd")
	return cmd
}

func basinsCmd() *cobra.Command {
	var gdefFP, basinFP, outFP string
	cmd := &cobra.Command{
		Use:   "basins",
		Short: "prune a basin-label raster to its first basin",
		RunE: func(cmd *cobra.Command, args []string) error {
			gd, err := rivers.LoadGDEF(gdefFP)
			if err != nil {
				return err
			}
			b, err := rivers.LoadIntGrid(gd, basinFP)
			if err != nil {
				return err
			}
			pruned, err := dem.PruneBasins(b, dem.NoData)
			if err != nil {
				return err
			}
			return rivers.SaveIntGrid(gd, outFP, pruned)
		},
	}
	cmd.Flags().StringVar(&gdefFP, "gdef", "", "grid definition file")
	cmd.Flags().StringVar(&basinFP, "basins", "", "basin-label raster")
	cmd.Flags().StringVar(&outFP, "out", "basin.bil", "pruned basin raster")
	cmd.MarkFlagRequired("gdef")
	cmd.MarkFlagRequired("basins")
	return cmd
}

func parseOutfalls(specs []string) ([]rivers.Outfall, error) {
	out := make([]rivers.Outfall, 0, len(specs))
	for _, s := range specs {
		p := strings.Split(s, ",")
		if len(p) != 3 {
			return nil, fmt.Errorf("outfall %q: want easting,northing,direction", s)
		}
		e, err := strconv.ParseFloat(p[0], 64)
		if err != nil {
			return nil, fmt.Errorf("outfall %q: %v", s, err)
		}
		n, err := strconv.ParseFloat(p[1], 64)
		if err != nil {
			return nil, fmt.Errorf("outfall %q: %v", s, err)
		}
		d, err := strconv.Atoi(p[2])
		if err != nil {
			return nil, fmt.Errorf("outfall %q: %v", s, err)
		}
		if !dem.Direction(d).Defined() {
			return nil, fmt.Errorf("outfall %q: direction %d outside 0..7", s, d)
		}
		out = append(out, rivers.Outfall{E: e, N: n, Dir: dem.Direction(d)})
	}
	return out, nil
}
