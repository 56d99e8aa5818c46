package supporters

import (
	"context"
	"errors"
	"fmt"
	"os"

	"patron-manager/core/storage"

	"go.uber.org/zap"
)

// ErrUnknownSource is returned for an unsupported Config.Source.
var ErrUnknownSource = errors.New("unknown supporters source")

// Load reads the static inputs once. client and bucket are only used by the bucket source.
func Load(ctx context.Context, cfg Config, client storage.Client, bucket string, logger *zap.Logger) (*Static, error) {
	var (
		data []byte
		err  error
	)

	switch cfg.Source {
	case SourceBuiltin, "":
		logger.Info("Using builtin supporter list")
		return Builtin(), nil
	case SourceFile:
		data, err = os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read supporters file: %w", err)
		}
	case SourceBucket:
		if client == nil {
			return nil, fmt.Errorf("supporters source %q requires object storage", cfg.Source)
		}
		data, err = storage.ReadObject(ctx, client, bucket, cfg.ObjectKey)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded supporter list",
		zap.String("source", cfg.Source),
		zap.Int("supporters", len(s.supporters)),
		zap.Int("aliases", len(s.aliases)),
		zap.Int("tiers", len(s.tiers)),
	)
	return s, nil
}
