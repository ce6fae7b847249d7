// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	scholarmatch "github.com/poiesic/scholarmatch"
	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/embedding"
	"github.com/poiesic/scholarmatch/server"
)

func main() {
	app := &cli.App{
		Name:  "scholarmatch",
		Usage: "Scholarship matching engine for student profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP matching API",
				Action: serveCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Address to listen on",
						Value:   ":8080",
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Load scholarships from a JSON file into the database",
				Action: seedCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of scholarships",
						Required: true,
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the vector index from approved scholarships",
				Action: reindexCommand,
				Flags:  engineFlags(),
			},
			{
				Name:   "match",
				Usage:  "Match a profile against the stored scholarships",
				Action: matchCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{Name: "state", Usage: "Applicant state"},
					&cli.StringFlag{Name: "category", Usage: "Applicant category (SC, ST, OBC, General)"},
					&cli.StringFlag{Name: "education", Usage: "Education level"},
					&cli.Int64Flag{Name: "income", Usage: "Annual family income in rupees", Value: -1},
					&cli.StringFlag{Name: "gender", Usage: "Applicant gender"},
					&cli.BoolFlag{Name: "disability", Usage: "Applicant has a disability"},
					&cli.StringFlag{Name: "religion", Usage: "Applicant religion"},
					&cli.StringFlag{Name: "area", Usage: "Residential area (urban, rural, semi-urban)"},
					&cli.StringFlag{Name: "course", Usage: "Course of study"},
					&cli.BoolFlag{Name: "semantic", Usage: "Blend semantic similarity into scores", Value: true},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./scholarmatch-db",
			EnvVars: []string{"SCHOLARMATCH_DB"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"SCHOLARMATCH_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"SCHOLARMATCH_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-token",
			Usage:   "API token for the embedding service",
			Value:   "none",
			EnvVars: []string{"SCHOLARMATCH_EMBEDDING_TOKEN"},
		},
		&cli.DurationFlag{
			Name:  "embedding-timeout",
			Usage: "Timeout per embedding request",
			Value: embedding.DefaultTimeout,
		},
	}
}

func openEngine(c *cli.Context) (*scholarmatch.Engine, error) {
	config := embedding.NewConfig(
		embedding.WithHost(c.String("embedding-host")),
		embedding.WithModel(c.String("embedding-model")),
		embedding.WithToken(c.String("embedding-token")),
		embedding.WithTimeout(c.Duration("embedding-timeout")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedding configuration: %w", err)
	}

	engine, err := scholarmatch.NewEngine(c.String("db"), scholarmatch.WithEmbeddingConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func serveCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	warmCtx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()
	if err := engine.Warm(warmCtx); err != nil {
		return fmt.Errorf("failed to warm vector index: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.NewServer(engine).Run(ctx, c.String("addr"))
}

func seedCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var scholarships []*core.Scholarship
	if err := json.Unmarshal(data, &scholarships); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stored := 0
	for _, scholarship := range scholarships {
		if _, err := engine.Store().Put(c.Context, scholarship); err != nil {
			return fmt.Errorf("failed to store scholarship %q: %w", scholarship.Id, err)
		}
		stored++
	}

	fmt.Fprintf(os.Stderr, "Stored %d scholarships\n", stored)
	return nil
}

func reindexCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Indexer().Reindex(c.Context); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d scholarships\n", engine.Index().Len())
	return nil
}

func matchCommand(c *cli.Context) error {
	profile := profileFromFlags(c)

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if c.Bool("semantic") {
		if err := engine.Warm(c.Context); err != nil {
			return fmt.Errorf("failed to warm vector index: %w", err)
		}
	}

	response, err := engine.Match(c.Context, profile, c.Bool("semantic"))
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func profileFromFlags(c *cli.Context) *core.Profile {
	profile := &core.Profile{
		State:          c.String("state"),
		Category:       core.Category(c.String("category")),
		EducationLevel: core.EducationLevel(c.String("education")),
		Gender:         core.Gender(c.String("gender")),
		Religion:       core.Religion(c.String("religion")),
		Area:           core.Area(c.String("area")),
		Course:         core.Course(c.String("course")),
	}
	if income := c.Int64("income"); income >= 0 {
		profile.Income = &income
	}
	if c.IsSet("disability") {
		disability := c.Bool("disability")
		profile.Disability = &disability
	}
	return profile
}

func setup(c *cli.Context) error {
	// A missing .env file is fine, flags and real env still apply.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
