// Package main provides the tonegen command line interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/soundtoys/tonegen/src/synth"
)

var (
	// Version as provided by goreleaser.
	Version = ""

	waveName string
	freq     float64
	amp      float64
	duration float64
	output   string
	rate     int

	rootCmd = &cobra.Command{
		Use:          "tonegen",
		Short:        "Play a waveform on the default audio output, optionally capturing it to a WAV file",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         execute,
	}
)

// envConfig holds the debugging knobs read from the environment.
type envConfig struct {
	Debug   bool   `env:"TONEGEN_DEBUG"`
	LogFile string `env:"TONEGEN_LOGFILE"`
}

func execute(*cobra.Command, []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		sig := <-signalCh
		log.Debug("caught signal, shutting down", "signal", sig)
		cancel()
	}()

	engine, err := synth.NewEngine(cfg.SampleRate)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Error("closing engine", "err", err)
		}
	}()

	var sink *synth.CaptureSink
	if cfg.OutputPath != "" {
		sink = synth.NewCaptureSink(cfg.OutputPath, cfg.Duration, engine.SampleRate())
	}

	osc := synth.NewOscillator(cfg.Waveform, cfg.Freq, cfg.Amp, float64(engine.SampleRate()))
	var tap synth.Tap
	if sink != nil {
		tap = sink
	}
	renderer := synth.NewRenderer(ctx, osc, tap)

	log.Debug("starting render",
		"waveform", cfg.Waveform, "freq", cfg.Freq, "amp", cfg.Amp,
		"duration", cfg.Duration, "rate", engine.SampleRate(), "capture", sink != nil)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Start(renderer)
	})
	g.Go(func() error {
		defer cancel()
		if sink != nil {
			select {
			case <-sink.Done():
			case <-ctx.Done():
			}
			return nil
		}
		select {
		case <-time.After(time.Duration(cfg.Duration * float64(time.Second))):
		case <-ctx.Done():
		}
		return nil
	})
	err = g.Wait()

	if sink != nil {
		if cerr := sink.Close(); cerr != nil {
			log.Error("closing capture file", "err", cerr)
		}
	}
	return err
}

// resolveConfig turns the flag/env/config-file values collected by viper
// into one validated, immutable config.
func resolveConfig() (*synth.Config, error) {
	kind, err := synth.ParseWaveKind(viper.GetString("wave"))
	if err != nil {
		return nil, err
	}
	cfg := &synth.Config{
		Waveform:   kind,
		Freq:       viper.GetFloat64("freq"),
		Amp:        viper.GetFloat64("amp"),
		Duration:   viper.GetFloat64("duration"),
		OutputPath: viper.GetString("out"),
		SampleRate: viper.GetInt("rate"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
		return f.Close, nil
	}
	return func() error { return nil }, nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version

	rootCmd.Flags().StringVarP(&waveName, "wave", "w", "sine", "waveform: sine, square, saw, saw-rev, triangle, noise")
	rootCmd.Flags().Float64VarP(&freq, "freq", "f", 440, "frequency in Hz")
	rootCmd.Flags().Float64VarP(&amp, "amp", "a", 1.0, "amplitude, clamped into [0, 1]")
	rootCmd.Flags().Float64VarP(&duration, "duration", "d", synth.DefaultDuration, "play/capture length in seconds")
	rootCmd.Flags().StringVarP(&output, "out", "o", "", "capture to WAV file (optional)")
	rootCmd.Flags().IntVarP(&rate, "rate", "r", synth.DefaultSampleRate, "sample rate in Hz")

	_ = viper.BindPFlag("wave", rootCmd.Flags().Lookup("wave"))
	_ = viper.BindPFlag("freq", rootCmd.Flags().Lookup("freq"))
	_ = viper.BindPFlag("amp", rootCmd.Flags().Lookup("amp"))
	_ = viper.BindPFlag("duration", rootCmd.Flags().Lookup("duration"))
	_ = viper.BindPFlag("out", rootCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("rate", rootCmd.Flags().Lookup("rate"))
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "tonegen")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "tonegen")}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("tonegen")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("tonegen")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
	}
}
