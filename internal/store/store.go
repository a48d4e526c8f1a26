// Package store loads and saves user-maintained merchant mapping overrides
// from YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"upisubs/mandate-scan/internal/logging"
)

// DefaultMerchantsFile is the file name searched for when none is
// configured.
const DefaultMerchantsFile = "merchants.yaml"

// merchantsConfig is the on-disk shape: a `merchants` key holding a map
// from noisy uppercase merchant form to clean display name.
type merchantsConfig struct {
	Merchants map[string]string `yaml:"merchants"`
}

// MerchantStore manages the merchant mapping file.
type MerchantStore struct {
	MerchantsFile string
	logger        logging.Logger
}

// NewMerchantStore creates a store for the given file. An empty filename
// falls back to DefaultMerchantsFile resolved through the search paths.
func NewMerchantStore(merchantsFile string, logger logging.Logger) *MerchantStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &MerchantStore{
		MerchantsFile: merchantsFile,
		logger:        logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path itself, ./config/, and ~/.config/upi-subs/.
func (s *MerchantStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "upi-subs", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadMerchants reads the mapping file. A missing file is not an error and
// yields an empty map, so fresh installs work with the built-ins alone.
func (s *MerchantStore) LoadMerchants() (map[string]string, error) {
	filename := s.MerchantsFile
	if filename == "" {
		filename = DefaultMerchantsFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", filename).Debug("Merchant mapping file not found, using built-ins only")
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error resolving merchants file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read merchants file %s: %w", filePath, err)
	}

	var cfg merchantsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse merchants file %s: %w", filePath, err)
	}
	if cfg.Merchants == nil {
		// Tolerate a bare map without the `merchants` key.
		direct := make(map[string]string)
		if err := yaml.Unmarshal(data, &direct); err != nil {
			return nil, fmt.Errorf("could not parse merchants file %s: %w", filePath, err)
		}
		cfg.Merchants = direct
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(cfg.Merchants)},
	).Debug("Loaded merchant mappings")
	return cfg.Merchants, nil
}

// SaveMerchants writes the mapping table back to the configured file,
// creating parent directories as needed. Keys are sorted by the YAML
// encoder, so saves are diff-friendly.
func (s *MerchantStore) SaveMerchants(mappings map[string]string) error {
	filename := s.MerchantsFile
	if filename == "" {
		filename = DefaultMerchantsFile
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create directory for merchants file: %w", err)
		}
	}

	data, err := yaml.Marshal(merchantsConfig{Merchants: mappings})
	if err != nil {
		return fmt.Errorf("could not marshal merchant mappings: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("could not write merchants file %s: %w", filename, err)
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filename},
		logging.Field{Key: "count", Value: len(mappings)},
	).Debug("Saved merchant mappings")
	return nil
}

// SortedKeys returns the mapping keys in stable order, for logging and
// reporting unknown merchants.
func SortedKeys(mappings map[string]string) []string {
	keys := make([]string, 0, len(mappings))
	for k := range mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
