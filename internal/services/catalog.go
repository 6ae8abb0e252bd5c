package services

import (
	"errors"
	"fmt"

	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/models"
	"github.com/imyashkale/kmsdash/internal/repository"
)

// Keys recognized while walking the nested KMS product database. A mapping
// carrying KmsItems or SkuItems is a container; a mapping carrying both Gvlk
// and DisplayName is a product leaf. Container keys take priority, checked in
// this order.
const (
	keyKmsItems    = "KmsItems"
	keySkuItems    = "SkuItems"
	keyGvlk        = "Gvlk"
	keyDisplayName = "DisplayName"
)

// CatalogService flattens the nested product database into an ordered
// catalog of products with generated activation commands.
type CatalogService struct {
	db repository.ProductDatabase
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db repository.ProductDatabase) *CatalogService {
	return &CatalogService{
		db: db,
	}
}

// Build loads the raw database tree and flattens it against the given server
// configuration. The catalog is rebuilt from scratch on every call so command
// strings always reflect the current server address. A database that cannot
// be loaded degrades to an empty catalog rather than an error.
func (cs *CatalogService) Build(cfg models.ServerConfig) []models.Product {
	root, err := cs.db.Load()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Debug("No product database present, serving empty catalog")
		} else {
			logger.WithField("error", err.Error()).Error("Failed to load product database")
		}
		return []models.Product{}
	}

	b := newCatalogBuilder(cfg)
	b.walk(root)
	return b.products
}

// lookupFunc reads a key from a mapping node regardless of the decoder's
// concrete map type.
type lookupFunc func(key string) (interface{}, bool)

// catalogBuilder accumulates catalog entries in first-insertion order while
// letting a later duplicate display name overwrite the earlier entry in
// place.
type catalogBuilder struct {
	cfg      models.ServerConfig
	products []models.Product
	index    map[string]int
}

func newCatalogBuilder(cfg models.ServerConfig) *catalogBuilder {
	return &catalogBuilder{
		cfg:      cfg,
		products: make([]models.Product, 0),
		index:    make(map[string]int),
	}
}

// walk performs the recursive descent over the untyped tree. Sequences
// recurse element by element, mappings go through visitMapping, and any other
// shape carries no products and is skipped silently.
func (b *catalogBuilder) walk(node interface{}) {
	switch n := node.(type) {
	case []interface{}:
		for _, item := range n {
			b.walk(item)
		}
	case map[string]interface{}:
		b.visitMapping(func(key string) (interface{}, bool) {
			value, ok := n[key]
			return value, ok
		})
	case map[interface{}]interface{}:
		// yaml.v2 decodes mappings with interface{} keys
		b.visitMapping(func(key string) (interface{}, bool) {
			value, ok := n[key]
			return value, ok
		})
	}
}

// visitMapping applies the key priority: a container key consumes the whole
// mapping, so a leaf pair sitting next to one is never inspected.
func (b *catalogBuilder) visitMapping(lookup lookupFunc) {
	if children, ok := lookup(keyKmsItems); ok {
		b.walk(children)
		return
	}
	if children, ok := lookup(keySkuItems); ok {
		b.walk(children)
		return
	}

	gvlk, hasKey := lookup(keyGvlk)
	name, hasName := lookup(keyDisplayName)
	if !hasKey || !hasName {
		return
	}
	b.emit(name, gvlk)
}

// emit records one catalog entry. Leaves whose fields are not strings are
// logged and skipped; an empty activation key means the product has no
// volume license and is skipped silently.
func (b *catalogBuilder) emit(name, gvlk interface{}) {
	displayName, ok := name.(string)
	if !ok {
		logger.WithField("display_name", fmt.Sprintf("%v", name)).Warn("Skipping product with non-string display name")
		return
	}
	key, ok := gvlk.(string)
	if !ok {
		logger.WithField("display_name", displayName).Warn("Skipping product with non-string activation key")
		return
	}
	if key == "" {
		return
	}

	product := models.Product{
		DisplayName: displayName,
		GVLK:        key,
		Commands:    GenerateCommands(key, b.cfg),
	}

	if i, exists := b.index[displayName]; exists {
		// Later leaves win but keep the original catalog position.
		b.products[i] = product
		return
	}
	b.index[displayName] = len(b.products)
	b.products = append(b.products, product)
}
