// Package profile reads personal-preference profiles from disk. A profile
// is any JSON object; no schema is enforced beyond that.
package profile

import (
	"os"
	"time"

	"github.com/go-logr/logr"
	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

const (
	cacheExpiration = 5 * time.Minute
	cacheCleanup    = 10 * time.Minute
)

// Store is a read-through cached profile reader.
type Store struct {
	cache *gocache.Cache
	log   logr.Logger
}

// NewStore creates a Store.
func NewStore(log logr.Logger) *Store {
	return &Store{
		cache: gocache.New(cacheExpiration, cacheCleanup),
		log:   log,
	}
}

// Read loads the preferences object at path. Results are cached by path;
// repeated reads within the expiration window do not touch the file.
func (s *Store) Read(path string) (map[string]interface{}, error) {
	if cached, ok := s.cache.Get(path); ok {
		return cached.(map[string]interface{}), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeProfileRead, "cannot read preferences file "+path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, apperrors.New(apperrors.ErrCodeProfileRead, "preferences file is not valid JSON: "+path, nil)
	}

	prefs, ok := gjson.ParseBytes(data).Value().(map[string]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeProfileRead, "preferences file is not a JSON object: "+path, nil)
	}

	s.cache.Set(path, prefs, gocache.DefaultExpiration)
	s.log.V(1).Info("profile loaded", "path", path, "categories", len(prefs))
	return prefs, nil
}
