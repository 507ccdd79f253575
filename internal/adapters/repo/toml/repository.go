// Package toml persists site profiles in a TOML file under the user's
// config directory.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	sitesPathKey    = "sites.path"
	sitesFileMode   = 0o600
	sitesDirMode    = 0o700
	sitesConfigDir  = ".checkin"
	sitesConfigFile = "sites.toml"
	tempFilePattern = ".sites-*.toml.tmp"
)

type Repository struct {
	sitesPath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SiteRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sitesConfigDir, sitesConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sitesConfigDir))
	cfg.SetDefault(sitesPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sitesPath := cfg.GetString(sitesPathKey)
	if sitesPath == "" {
		return nil, errors.New("sites path is empty")
	}
	sitesPath, err = normalizeSitesPath(sitesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sitesPath: sitesPath, mu: lockForPath(sitesPath)}, nil
}

func (r *Repository) Save(ctx context.Context, site domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if site.Name == "" {
		return errors.New("site name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(site)
	updated := false
	for i := range file.Sites {
		if file.Sites[i].Name == encoded.Name {
			file.Sites[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Sites = append(file.Sites, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByName(ctx context.Context, name string) (domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return domain.Site{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Site{}, err
	}
	file.applyDefaults()

	for _, entry := range file.Sites {
		if entry.Name == name {
			return fromSchema(entry), nil
		}
	}

	return domain.Site{}, domain.ErrSiteNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	sites := make([]domain.Site, 0, len(file.Sites))
	for _, entry := range file.Sites {
		sites = append(sites, fromSchema(entry))
	}

	return sites, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sitesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read sites file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sites file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSitesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sites path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sitesPath), sitesDirMode); err != nil {
		return fmt.Errorf("create sites directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sites file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sitesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sites file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp sites file: %w", err)
	}

	if err := tempFile.Chmod(sitesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp sites file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sites file: %w", err)
	}

	if err := os.Rename(tempName, r.sitesPath); err != nil {
		return fmt.Errorf("replace sites file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sitesPath, sitesFileMode); err != nil {
		return fmt.Errorf("chmod sites file: %w", err)
	}

	return nil
}
