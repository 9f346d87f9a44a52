// Command kifconv normalizes a saved Shogi Wars payload offline and prints
// the canonical entity as JSON, or the game as CSA text.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mito-shogi/wars-kif-service/internal/domain/kifu"
	"github.com/mito-shogi/wars-kif-service/internal/pipeline"
	"github.com/mito-shogi/wars-kif-service/internal/ruleset"
)

func newCommand(stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "kifconv",
		Usage: "Convert saved Shogi Wars payloads into canonical records",
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Normalize one payload; FILE may be - for stdin",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "endpoint",
						Usage: "Endpoint the payload came from",
						Value: ruleset.EndpointDetail,
					},
					&cli.StringFlag{
						Name:  "api-version",
						Usage: "Client version the payload was requested with",
						Value: ruleset.VersionWebapp9,
					},
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "Content-Type the payload was served with",
					},
					&cli.BoolFlag{
						Name:  "csa",
						Usage: "Print CSA text instead of JSON (detail payloads only)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return convert(cmd, stdin, stdout)
				},
			},
		},
	}
}

func convert(cmd *cli.Command, stdin io.Reader, stdout io.Writer) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("convert: missing FILE argument")
	}
	body, err := readInput(path, stdin)
	if err != nil {
		return err
	}

	raw := ruleset.RawPayload{Body: body, ContentType: cmd.String("content-type")}
	hint := ruleset.Hint{Endpoint: cmd.String("endpoint"), APIVersion: cmd.String("api-version")}
	entity, err := pipeline.Normalize(raw, hint)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", path, err)
	}

	if cmd.Bool("csa") {
		if entity.Kind != kifu.KindDetail || entity.Detail == nil {
			return fmt.Errorf("convert: --csa needs a detail payload, got %s", entity.Kind)
		}
		text, err := pipeline.ToCSA(*entity.Detail)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", path, err)
		}
		_, err = io.WriteString(stdout, text)
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entity)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func main() {
	if err := newCommand(os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("kifconv failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
