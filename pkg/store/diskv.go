package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/session"
)

// keyPrefix namespaces day keys, so timebox-2024-03-01 is stored as
// timebox/2024/03/01 under the base path.
const keyPrefix = "timebox"

// OpenDiskv returns a file-per-day persistence rooted at basePath.
func OpenDiskv(basePath string, log *zap.Logger) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// Decoded days are cached by the session loader; a byte cache
			// here would hide writes from other processes.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log,
	}, nil
}

// Diskv stores each day as one JSON file.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

var _ Persistence = (*Diskv)(nil)

// Load implements session.Persistence.
func (p *Diskv) Load(_ context.Context, date string) (*session.DaySession, error) {
	if _, err := session.ParseDateKey(date); err != nil {
		return nil, err
	}
	key := toKey(date)
	if !p.d.Has(key) {
		return nil, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", date, err)
	}
	d, err := session.Unmarshal(val)
	if err != nil {
		p.log.Warn("skipping malformed day", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	d.Date = date
	return d, nil
}

// Save implements session.Persistence.
func (p *Diskv) Save(_ context.Context, date string, d *session.DaySession) error {
	if _, err := session.ParseDateKey(date); err != nil {
		return err
	}
	data, err := session.Marshal(d)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(date), data); err != nil {
		return fmt.Errorf("store: write %s: %w", date, err)
	}
	return nil
}

// Dates implements Persistence.
func (p *Diskv) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	for key := range p.d.KeysPrefix(keyPrefix+"-", ctx.Done()) {
		date, ok := fromKey(key)
		if !ok {
			p.log.Debug("ignoring foreign key", zap.String("key", key))
			continue
		}
		dates = append(dates, date)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(dates)
	return dates, nil
}

// Close implements Persistence.
func (p *Diskv) Close() error { return nil }

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `timebox-YYYY-MM-DD`
func toKey(date string) string {
	return keyPrefix + "-" + date
}

func fromKey(key string) (string, bool) {
	date, ok := strings.CutPrefix(key, keyPrefix+"-")
	if !ok {
		return "", false
	}
	if _, err := session.ParseDateKey(date); err != nil {
		return "", false
	}
	return date, true
}
