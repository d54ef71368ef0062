// SPDX-License-Identifier: Apache-2.0

// Command vigcrack recovers the key of Vigenère-encrypted English text.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/vigcrack/vigcrack/internal/analysis"
	"github.com/vigcrack/vigcrack/internal/analysis/readers"
	"github.com/vigcrack/vigcrack/internal/cipher"
	"github.com/vigcrack/vigcrack/internal/config"
	"github.com/vigcrack/vigcrack/internal/tool"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "vigcrack",
		Short:         "Ciphertext-only cryptanalysis of Vigenère ciphers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML file with tuning parameters")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newCrackCmd(opts),
		newCodecCmd(opts, "encode", "Encrypt text with a known key", cipher.EncodeText),
		newCodecCmd(opts, "decode", "Decrypt text with a known key", cipher.DecodeText),
		newServeCmd(opts),
	)
	return rootCmd
}

// loadConfig resolves the config file, then lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, opts *rootOptions, overrides func(*config.Config)) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if overrides != nil {
		overrides(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	return data, args[0], nil
}

// formatFromPath guesses a reader hint from the file extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return ""
}

func newCrackCmd(opts *rootOptions) *cobra.Command {
	var (
		samples   int
		threshold float64
		maxStride int
		seed      uint64
		format    string
		plaintext bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "crack [file]",
		Short: "Recover the key and plaintext of a Vigenère ciphertext",
		Long: `Estimate the key length with the index of coincidence, recover each key
letter by frequency correlation against English and decrypt.

Reads stdin when no file is given. Example: vigcrack crack secret.txt --plaintext`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, func(c *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("samples") {
					c.Samples = samples
				}
				if flags.Changed("threshold") {
					c.Threshold = threshold
				}
				if flags.Changed("max-stride") {
					c.MaxStride = maxStride
				}
				if flags.Changed("seed") {
					c.Seed = seed
				}
			})
			if err != nil {
				return err
			}

			content, id, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(id)
			}

			pipeline := analysis.NewPipeline(
				analysis.WithReaders(readers.Default()...),
				analysis.WithConfig(cfg),
				analysis.WithLogger(newLogger(cmd.ErrOrStderr(), cfg)),
			)
			result, err := pipeline.Run(cmd.Context(), analysis.Document{Content: content, Format: format, ID: id})
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, plaintext, verbose)
			return nil
		},
	}

	cmd.Flags().IntVar(&samples, "samples", analysis.DefaultSamples, "Position pairs sampled per coincidence estimate")
	cmd.Flags().Float64Var(&threshold, "threshold", analysis.DefaultThreshold, "Normalized IOC that ends the key length scan")
	cmd.Flags().IntVar(&maxStride, "max-stride", 0, "Longest key length to try (0 = half the text length)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Sampler seed (0 = seed from the clock)")
	cmd.Flags().StringVar(&format, "format", "", "Input format: text, yaml or json (default: detect)")
	cmd.Flags().BoolVar(&plaintext, "plaintext", false, "Print the decrypted text")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-column diagnostics")

	return cmd
}

func printResult(stdout, stderr io.Writer, result analysis.Result, plaintext, verbose bool) {
	fmt.Fprintf(stderr, "best stride: %d (IOC %.2f)\n", result.KeyLength.Stride, result.KeyLength.Score)
	if verbose {
		for _, c := range result.Columns {
			if c.Degenerate {
				fmt.Fprintf(stderr, "column %d: %s (no letters)\n", c.Index, c.Letter)
				continue
			}
			fmt.Fprintf(stderr, "column %d: %s shift=%d n=%d corr=%.3f chi2=%.1f p=%.3f\n",
				c.Index, c.Letter, c.Shift, c.Samples, c.Correlation, c.ChiSquared, c.PValue)
		}
	}
	fmt.Fprintf(stdout, "key: %s (%s)\n", result.Key, result.Key.Shifts())
	if plaintext {
		fmt.Fprintln(stdout, result.Plaintext)
	}
}

func newCodecCmd(opts *rootOptions, name, short string, op func(cipher.Text, cipher.Key) cipher.Text) *cobra.Command {
	var keyFlag string

	cmd := &cobra.Command{
		Use:   name + " --key KEY [file]",
		Short: short,
		Long:  short + ". The input is uppercased and stripped to A-Z first; stdin is read when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, opts, nil); err != nil {
				return err
			}
			key, err := cipher.ParseKey(keyFlag)
			if err != nil {
				return err
			}
			content, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), op(cipher.Normalize(content), key))
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyFlag, "key", "k", "", "Key as letters, e.g. LEMON")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cracking tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			logger.Info("serving MCP on stdio", "version", version)
			return newServer(cfg, logger).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// newServer builds the MCP server with every tool tuned from cfg.
func newServer(cfg config.Config, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "vigcrack", Version: version}, nil)
	tool.Register(server, cfg, logger)
	return server
}
