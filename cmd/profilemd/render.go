package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	profilemd "github.com/alnah/go-profilemd"
	"github.com/alnah/go-profilemd/internal/config"
	"github.com/alnah/go-profilemd/internal/fileutil"
)

// Sentinel errors for the render command.
var (
	ErrNoInput          = errors.New("no profile file specified")
	ErrInvalidExtension = errors.New("profile file must have .yaml, .yml, or .json extension")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrRenderFailed     = errors.New("profiles failed to render")
)

// profileExtensions lists the extensions discovered in directories.
var profileExtensions = []string{".yaml", ".yml", ".json"}

// exporter renders one document; *profilemd.Renderer implements it.
type exporter interface {
	Export(ctx context.Context, p *profilemd.Profile, format profilemd.Format) (*profilemd.Document, error)
}

// Compile-time interface implementation check.
var _ exporter = (*profilemd.Renderer)(nil)

// renderJob is one profile file and the directory its documents go to.
type renderJob struct {
	InputPath string
	OutputDir string
}

// renderResult holds the outcome of rendering a single profile.
type renderResult struct {
	InputPath   string
	OutputPaths []string
	Err         error
	Duration    time.Duration
}

// runRender handles the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f := &renderFlags{}
	positional, err := parseFlagSet(newRenderFlagSet(f), args, env.Stderr, printRenderUsage)
	if err != nil {
		return err
	}
	env.useCommonFlags(&f.common)

	cfg, err := resolveConfig(&f.common, env)
	if err != nil {
		return err
	}
	applyOutputFlags(f.output, f.formats, f.width, cfg)
	applyEngineFlags(&f.pdf, cfg)
	applyThemeFlag(f.theme, cfg)
	if f.workers != 0 {
		cfg.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	formats, err := parseConfigFormats(cfg)
	if err != nil {
		return err
	}
	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}

	if len(positional) == 0 {
		return fmt.Errorf("%w (usage: profilemd render <profile|dir>...)", ErrNoInput)
	}
	jobs, err := discoverProfiles(positional, cfg.Output.Dir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no .yaml, .yml, or .json files found", ErrNoInput)
	}

	pool := profilemd.NewRendererPool(min(profilemd.ResolvePoolSize(cfg.Workers), len(jobs)), opts...)
	defer pool.Close()

	env.Logger.Debug().
		Int("files", len(jobs)).
		Int("workers", pool.Size()).
		Str("engine", cfg.PDF.Engine).
		Msg("rendering")

	results := renderBatch(ctx, pool, jobs, formats, env.Logger)
	if failed, firstErr := printResults(results, f.common, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d: %w", ErrRenderFailed, failed, len(results), firstErr)
	}
	return nil
}

// parseConfigFormats parses the validated config format list.
func parseConfigFormats(cfg *config.Config) ([]profilemd.Format, error) {
	return profilemd.ParseFormats(strings.Join(cfg.Output.Formats, ","))
}

// discoverProfiles expands files and directories into render jobs.
// Explicit files must carry a profile extension; directories are walked
// recursively. When more than one profile is found, each gets its own
// subdirectory named after the file, since every profile writes README.md.
func discoverProfiles(inputs []string, outputDir string) ([]renderJob, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateProfileExtension(in); err != nil {
				return nil, err
			}
			add(in)
			continue
		}

		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() && isProfileFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	perProfile := len(files) > 1
	used := make(map[string]int, len(files))
	jobs := make([]renderJob, 0, len(files))
	for _, path := range files {
		dir := resolveOutputDir(path, outputDir, perProfile)
		if n := used[dir]; n > 0 {
			used[dir]++
			dir = fmt.Sprintf("%s-%d", dir, n+1)
		} else {
			used[dir] = 1
		}
		jobs = append(jobs, renderJob{InputPath: path, OutputDir: dir})
	}
	return jobs, nil
}

// resolveOutputDir returns where documents for inputPath are written: the
// output directory, or the profile's own directory when none is set.
func resolveOutputDir(inputPath, outputDir string, perProfile bool) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	if perProfile {
		base := filepath.Base(inputPath)
		dir = filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	return dir
}

func isProfileFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range profileExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// validateProfileExtension checks that the file is YAML or JSON.
func validateProfileExtension(path string) error {
	if !isProfileFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// outputFilename returns the on-disk name for a document, with the
// profile name made safe for the local filesystem.
func outputFilename(format profilemd.Format, name string) string {
	return format.Filename(fileutil.SanitizeFilename(strings.TrimSpace(name)))
}

// renderBatch renders jobs concurrently, at most pool.Size() at a time.
// Results keep the order of jobs.
func renderBatch(ctx context.Context, pool *profilemd.RendererPool, jobs []renderJob, formats []profilemd.Format, logger zerolog.Logger) []renderResult {
	results := make([]renderResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = renderResult{InputPath: job.InputPath, Err: err}
				return nil
			}

			r, err := pool.Acquire(ctx)
			if err != nil {
				results[i] = renderResult{InputPath: job.InputPath, Err: err}
				return nil
			}
			defer pool.Release(r)

			results[i] = renderFile(ctx, r, job, formats)
			logger.Debug().
				Str("file", job.InputPath).
				Dur("took", results[i].Duration).
				Err(results[i].Err).
				Msg("rendered")
			return nil
		})
	}

	_ = g.Wait() // goroutines record errors in results
	return results
}

// renderFile loads one profile and writes every requested format.
// Stops at the first failing format.
func renderFile(ctx context.Context, r exporter, job renderJob, formats []profilemd.Format) renderResult {
	start := time.Now()
	result := renderResult{InputPath: job.InputPath}

	p, err := profilemd.LoadProfile(job.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	for _, format := range formats {
		doc, err := r.Export(ctx, p, format)
		if err != nil {
			result.Err = fmt.Errorf("%s: %w", format, err)
			break
		}

		path := filepath.Join(job.OutputDir, outputFilename(format, p.Name))
		if err := fileutil.WriteFile(path, doc.Content); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			break
		}
		result.OutputPaths = append(result.OutputPaths, path)
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs render results and returns the failure count and
// the first error.
func printResults(results []renderResult, common commonFlags, env *Environment) (int, error) {
	out := newStyles(env.Stdout)
	errOut := newStyles(env.Stderr)

	failed := 0
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			errOut.failed(env.Stderr, r.InputPath, r.Err)
			continue
		}

		if common.quiet {
			continue
		}

		for _, path := range r.OutputPaths {
			out.created(env.Stdout, path)
		}
		if common.verbose {
			fmt.Fprintln(env.Stdout, out.muted.Render(fmt.Sprintf("  %s (%v)", r.InputPath, r.Duration.Round(time.Millisecond))))
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed, firstErr
}
