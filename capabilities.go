package llmstream

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var providerCapabilitiesYAML []byte

// Capabilities Philosophy:
//
// The registry answers one question before a stream is constructed: does
// this provider support the requested operation at all? Unsupported
// operations are rejected as configuration-level errors, distinct from
// in-stream errors. Provider APIs remain the source of truth for anything
// finer-grained.
//
// The embedded defaults can be overridden by:
//  1. Calling LoadCapabilitiesFromFile() with custom YAML
//  2. Calling RegisterProviderFeatures() programmatically

// ProviderFeatures indicates which operations a provider supports.
type ProviderFeatures struct {
	Streaming       bool `yaml:"streaming"`
	Reasoning       bool `yaml:"reasoning"`
	ImageGeneration bool `yaml:"image_generation"`
}

type providerEntry struct {
	Features ProviderFeatures `yaml:"features"`
}

type capabilitiesFile struct {
	Version     string                   `yaml:"version"`
	LastUpdated string                   `yaml:"last_updated"`
	Providers   map[string]providerEntry `yaml:"providers"`
}

// CapabilityRegistry manages per-provider feature support.
type CapabilityRegistry struct {
	features map[ProviderID]ProviderFeatures
	mu       sync.RWMutex
}

var (
	globalRegistry     *CapabilityRegistry
	globalRegistryOnce sync.Once
)

// GetCapabilityRegistry returns the global capability registry (singleton).
func GetCapabilityRegistry() *CapabilityRegistry {
	globalRegistryOnce.Do(func() {
		globalRegistry = &CapabilityRegistry{
			features: make(map[ProviderID]ProviderFeatures),
		}
		if err := globalRegistry.loadYAML(providerCapabilitiesYAML); err != nil {
			// Don't panic on a bad embedded file; feature checks will
			// report unknown providers instead.
			fmt.Fprintf(os.Stderr, "llmstream: failed to load embedded provider capabilities: %v\n", err)
		}
	})
	return globalRegistry
}

func (r *CapabilityRegistry) loadYAML(data []byte) error {
	var file capabilitiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse provider capabilities: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, entry := range file.Providers {
		r.features[ProviderID(name)] = entry.Features
	}
	return nil
}

// LoadCapabilitiesFromFile replaces or extends the registry from a YAML file.
func (r *CapabilityRegistry) LoadCapabilitiesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read capabilities file: %w", err)
	}
	return r.loadYAML(data)
}

// RegisterProviderFeatures sets the feature flags for a provider.
func (r *CapabilityRegistry) RegisterProviderFeatures(provider ProviderID, features ProviderFeatures) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.features[provider] = features
}

// Features returns the feature flags for a provider.
func (r *CapabilityRegistry) Features(provider ProviderID) (ProviderFeatures, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.features[provider]
	return f, ok
}

// RequireStreaming rejects providers without streaming support. Returns a
// configuration-level ModelError before any stream is constructed.
func RequireStreaming(provider ProviderID) error {
	features, ok := GetCapabilityRegistry().Features(provider)
	if !ok || !features.Streaming {
		return &ModelError{
			Provider: provider.String(),
			Reason:   "provider does not support streaming",
			Err:      ErrUnsupportedFeature,
		}
	}
	return nil
}

// RequireImageGeneration rejects providers without image generation support.
func RequireImageGeneration(provider ProviderID) error {
	features, ok := GetCapabilityRegistry().Features(provider)
	if !ok || !features.ImageGeneration {
		return &ModelError{
			Provider: provider.String(),
			Reason:   "provider does not support image generation",
			Err:      ErrUnsupportedFeature,
		}
	}
	return nil
}
