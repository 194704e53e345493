// Package main provides the CLI entry point for vsdxstruct.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/output"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/render"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/store"
)

var (
	outputPath string
	pretty     bool
	mode       string
	configPath string
	strict     bool
	debug      bool
	xlsxPath   string
	sqlitePath string
	renderDir  string
	renderOut  string
	scale      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vsdxstruct",
		Short: "Extract structured diagram data from Visio files",
		Long: `vsdxstruct reconstructs the shape tree, connections and connectors
of a Visio VSDX drawing and outputs JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	extractCmd := &cobra.Command{
		Use:   "extract [input.vsdx]",
		Short: "Extract a VSDX file to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>_structure.json, - for stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	extractCmd.Flags().StringVar(&mode, "mode", "", "Extraction mode: light, standard, verbose")
	extractCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	extractCmd.Flags().BoolVar(&strict, "strict", false, "Abort on the first malformed page")
	extractCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write a component inventory workbook")
	extractCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also store the result in an SQLite database")
	extractCmd.Flags().StringVar(&renderDir, "render-dir", "", "Also render PNG images into this directory")

	renderCmd := &cobra.Command{
		Use:   "render [input.json]",
		Short: "Render an extracted JSON file to PNG images",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&renderOut, "output-dir", "", "Output directory (default: directory of the input)")
	renderCmd.Flags().Float64Var(&scale, "scale", 0, "Pixels per drawing inch")
	renderCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")

	rootCmd.AddCommand(extractCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (vsdxstruct.Config, error) {
	if configPath == "" {
		return vsdxstruct.DefaultConfig(), nil
	}
	return vsdxstruct.LoadConfig(configPath)
}

func runExtract(cmd *cobra.Command, args []string) error {
	setupLogger()
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if mode != "" {
		m, ok := vsdxstruct.ParseMode(mode)
		if !ok {
			return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", mode)
		}
		opts.Mode = m
	}
	if strict {
		opts.Strict = true
	}

	// Extract data
	res, err := vsdxstruct.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	for _, skipped := range res.Skipped {
		slog.Warn("page skipped", "error", skipped)
	}
	pages := res.Document.Pages
	if len(pages) == 0 {
		slog.Warn("no core components found", "input", inputPath)
	}

	// Write output
	jsonData, err := output.ToJSON(pages, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath == "-" {
		fmt.Println(string(jsonData))
	} else {
		if outputPath == "" {
			outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_structure.json"
		}
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		slog.Info("structure written", "output", outputPath, "pages", len(pages), "warnings", len(res.Warnings))
	}

	if xlsxPath != "" {
		if err := output.WriteWorkbook(xlsxPath, pages); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	if sqlitePath != "" {
		if err := saveToStore(cmd.Context(), sqlitePath, res.Document); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}
	}

	if renderDir != "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if err := renderPages(pages, renderDir, base+"_structure", cfg.Render); err != nil {
			return err
		}
	}

	return nil
}

func saveToStore(ctx context.Context, path string, doc models.Document) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path, store.WithMkdirAll())
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(ctx, doc.Source, doc.Pages)
	if err != nil {
		return err
	}
	slog.Info("result stored", "database", path, "document", id)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	setupLogger()
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scale > 0 {
		cfg.Render.Scale = scale
	}

	pages, err := output.ReadJSONFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	dir := renderOut
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return renderPages(pages, dir, base, cfg.Render)
}

func renderPages(pages []models.PageRecord, dir, base string, rc vsdxstruct.RenderConfig) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	opts := render.Options{Scale: rc.Scale, Margin: rc.Margin}

	structurePath := filepath.Join(dir, base+"_visualization.png")
	if err := render.Structure(pages, structurePath, opts); err != nil {
		if !errors.Is(err, render.ErrNothingToDraw) {
			return err
		}
		slog.Warn("nothing to draw", "image", structurePath)
	} else {
		slog.Info("image written", "image", structurePath)
	}

	connectorPath := filepath.Join(dir, base+"_connectors.png")
	if err := render.Connectors(pages, connectorPath, opts); err != nil {
		if !errors.Is(err, render.ErrNothingToDraw) {
			return err
		}
		slog.Warn("no connectors to draw", "image", connectorPath)
	} else {
		slog.Info("image written", "image", connectorPath)
	}
	return nil
}
