package cache

import (
	"strings"
	"time"
)

// Policy names accepted by Config.
const (
	PolicyLRU = "lru"
	PolicyTTL = "ttl"
)

// DefaultCapacity is the LRU capacity used by DefaultConfig.
const DefaultCapacity = 128

// Config selects and sizes a strategy.
type Config struct {
	// Policy is "lru" or "ttl".
	Policy string `yaml:"policy"`

	// Capacity bounds an LRU. Ignored for TTL.
	Capacity int `yaml:"capacity"`

	// TTL is the entry lifetime for the ttl policy. Ignored for LRU.
	TTL time.Duration `yaml:"ttl"`
}

// DefaultConfig returns an LRU config with DefaultCapacity.
func DefaultConfig() Config {
	return Config{
		Policy:   PolicyLRU,
		Capacity: DefaultCapacity,
	}
}

func (c Config) policy() string {
	return strings.ToLower(strings.TrimSpace(c.Policy))
}

// Validate checks the fields the selected policy uses.
// Every failure is a *ConfigurationError.
func (c Config) Validate() error {
	switch c.policy() {
	case PolicyLRU:
		if c.Capacity <= 0 {
			return configError("capacity", c.Capacity, ErrInvalidCapacity)
		}
	case PolicyTTL:
		if c.TTL <= 0 {
			return configError("ttl", c.TTL, ErrInvalidTTL)
		}
	default:
		return configError("policy", c.Policy, ErrInvalidPolicy)
	}
	return nil
}

// NewStrategy builds the strategy cfg selects. clock is only used by the ttl
// policy; nil means SystemClock.
func NewStrategy[K comparable, V any](cfg Config, clock Clock, opts ...Option[K, V]) (Strategy[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.policy() == PolicyTTL {
		c, err := NewTTL(cfg.TTL, clock, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := NewLRU(cfg.Capacity, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewManagerFromConfig builds the configured strategy and binds it.
func NewManagerFromConfig[K comparable, V any](cfg Config, clock Clock, opts ...Option[K, V]) (*Manager[K, V], error) {
	s, err := NewStrategy(cfg, clock, opts...)
	if err != nil {
		return nil, err
	}
	return NewManager(s)
}
