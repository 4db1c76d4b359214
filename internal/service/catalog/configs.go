package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// ListConfigs returns every stored configuration ordered by product.
func (s *Service) ListConfigs(ctx context.Context) ([]domain.ProductConfig, error) {
	configs, err := s.configs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	return configs, nil
}

// GetConfig returns the configuration of one product.
func (s *Service) GetConfig(ctx context.Context, raw string) (*domain.ProductConfig, error) {
	name := domain.NormalizeProductName(raw)
	if name.IsEmpty() {
		return nil, domain.NewValidationError("product", "required")
	}

	cfg, err := s.configs.GetForProduct(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get config %s: %w", name, err)
	}
	return cfg, nil
}

// SaveConfig stores the factors of one product, adding the product to the
// catalog when missing.
func (s *Service) SaveConfig(ctx context.Context, in ConfigInput) (*domain.ProductConfig, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.SaveConfigs(ctx, []ConfigInput{in})
	if err != nil {
		return nil, err
	}
	return &saved[0], nil
}

// SaveConfigs stores several configurations in one transaction. Products
// missing from the catalog are added.
func (s *Service) SaveConfigs(ctx context.Context, inputs []ConfigInput) ([]domain.ProductConfig, error) {
	if err := validateConfigBatch(inputs); err != nil {
		return nil, err
	}

	saved := make([]domain.ProductConfig, 0, len(inputs))
	var added int

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, in := range inputs {
			cfg := in.toDomain()

			created, err := s.products.Insert(ctx, cfg.Product)
			if err != nil {
				return fmt.Errorf("insert product %s: %w", cfg.Product, err)
			}
			if created {
				added++
			}

			out, err := s.configs.Upsert(ctx, cfg)
			if err != nil {
				return fmt.Errorf("upsert config %s: %w", cfg.Product, err)
			}
			saved = append(saved, *out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "configs saved",
		slog.Int("configs", len(saved)),
		slog.Int("products_added", added),
	)
	return saved, nil
}

// ListUnconfigured returns the products that have no factor at all.
func (s *Service) ListUnconfigured(ctx context.Context) ([]domain.ProductName, error) {
	names, err := s.configs.ListProductsWithoutConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unconfigured products: %w", err)
	}
	return names, nil
}
