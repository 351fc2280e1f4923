package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"inlay"
	"inlay/internal/compile"
	"inlay/internal/config"
	"inlay/internal/crawler"
	"inlay/internal/resolve"
	"inlay/internal/store"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "inlay",
		Short: "Rewrite inline component blocks into virtual modules",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "inlay.yaml", "Path to the config file")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(transformCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		// A missing config file is fine; defaults apply.
		return config.Default()
	}
	return cfg
}

func newPlugin(cfg *config.Config) (*inlay.Plugin, error) {
	var opts []inlay.Option
	if len(cfg.Tags) > 0 {
		opts = append(opts, inlay.WithTags(cfg.Tags...))
	}
	if cfg.Fences.Imports.Start != "" {
		opts = append(opts, inlay.WithImportsFence(cfg.Fences.Imports.Start, cfg.Fences.Imports.End))
	}
	if cfg.Fences.Shared.Start != "" {
		opts = append(opts, inlay.WithSharedFence(cfg.Fences.Shared.Start, cfg.Fences.Shared.End))
	}
	if len(cfg.Extensions) > 0 {
		opts = append(opts, inlay.WithExtensions(cfg.Extensions...))
	}
	if cfg.Cache.Path != "" {
		s, err := store.NewSQLite(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache %s: %w", cfg.Cache.Path, err)
		}
		opts = append(opts, inlay.WithStore(s))
	}
	if len(cfg.Compiler.Command) > 0 {
		opts = append(opts, inlay.WithCompiler(&compile.ExecCompiler{Command: cfg.Compiler.Command}))
		opts = append(opts, inlay.WithCompileTarget(cfg.Compiler.Generate, cfg.Compiler.CSS))
	}
	return inlay.New(opts...), nil
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Report inline blocks and shared fences under a directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		cfg := loadConfig()
		plugin, err := newPlugin(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer plugin.Store().Close()

		fmt.Printf("📂 Scanning directory: %s\n", root)

		ctx := context.Background()
		files, modules := 0, 0
		c := crawler.New(extensions(cfg))
		err = c.Scan(root, func(path string) {
			code, err := os.ReadFile(path)
			if err != nil {
				return
			}
			res, err := plugin.Transform(ctx, string(code), path)
			if err != nil {
				log.Fatalf("Failed to transform %s: %v", path, err)
			}
			if res == nil {
				return
			}
			n := countModules(res.Code)
			files++
			modules += n
			fmt.Printf("  %s: %d inline module(s)\n", path, n)
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		fmt.Printf("✅ %d file(s) with %d inline module(s)\n", files, modules)
	},
}

var (
	writeStdout bool
	checkOnly   bool
	outSuffix   string
)

var transformCmd = &cobra.Command{
	Use:   "transform [path]",
	Short: "Rewrite eligible files, replacing inline blocks with module references",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		cfg := loadConfig()
		plugin, err := newPlugin(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer plugin.Store().Close()

		ctx := context.Background()
		changed := 0
		c := crawler.New(extensions(cfg))
		err = c.Scan(root, func(path string) {
			code, err := os.ReadFile(path)
			if err != nil {
				return
			}
			res, err := plugin.Transform(ctx, string(code), path)
			if err != nil {
				log.Fatalf("Failed to transform %s: %v", path, err)
			}
			if res == nil {
				return
			}
			changed++

			switch {
			case checkOnly:
				fmt.Printf("  would rewrite %s\n", path)
			case writeStdout:
				fmt.Print(res.Code)
			default:
				if err := os.WriteFile(path+outSuffix, []byte(res.Code), 0o644); err != nil {
					log.Fatalf("Failed to write %s: %v", path+outSuffix, err)
				}
				fmt.Printf("  ✏️  %s -> %s\n", path, path+outSuffix)
			}
		})
		if err != nil {
			log.Fatalf("Transform failed: %v", err)
		}

		if checkOnly && changed > 0 {
			os.Exit(1)
		}
		fmt.Printf("✅ %d file(s) rewritten\n", changed)
	},
}

func init() {
	transformCmd.Flags().BoolVar(&writeStdout, "stdout", false, "Print rewritten code instead of writing files")
	transformCmd.Flags().BoolVar(&checkOnly, "check", false, "Exit nonzero if any file would change")
	transformCmd.Flags().StringVar(&outSuffix, "suffix", ".out", "Suffix for rewritten files")
}

func extensions(cfg *config.Config) []string {
	if len(cfg.Extensions) > 0 {
		return cfg.Extensions
	}
	return []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".svelte"}
}

// countModules counts generated import statements in rewritten code.
func countModules(code string) int {
	return strings.Count(code, "from '"+resolve.VirtualPrefix)
}
