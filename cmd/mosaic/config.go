package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mosaic/pkg/rng"
)

// Experiment is the YAML description of one batch: which problem, which
// search strategy, and how many runs at which seed.
type Experiment struct {
	Problem    string `yaml:"problem"`   // sphere | rastrigin
	Dimension  int    `yaml:"dimension"`
	Algorithm  string `yaml:"algorithm"` // random-search | mu-plus-lambda
	Population int    `yaml:"population"`
	Iterations int    `yaml:"iterations"`
	Runs       int    `yaml:"runs"`
	Seed       uint64 `yaml:"seed"`
	Backend    string `yaml:"backend"`     // pcg | chacha8
	Parallel   int    `yaml:"parallelism"` // 0 = GOMAXPROCS

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

const (
	algorithmRandomSearch = "random-search"
	algorithmMuPlusLambda = "mu-plus-lambda"
)

// LoadExperiment reads, defaults, and validates an experiment file.
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment: %w", err)
	}
	var e Experiment
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse experiment yaml: %w", err)
	}

	if e.Dimension == 0 {
		e.Dimension = 10
	}
	if e.Algorithm == "" {
		e.Algorithm = algorithmRandomSearch
	}
	if e.Population == 0 {
		e.Population = 30
	}
	if e.Iterations == 0 {
		e.Iterations = 100
	}
	if e.Runs == 0 {
		e.Runs = 1
	}
	if e.Backend == "" {
		e.Backend = rng.BackendPCG
	}

	if e.Problem != "sphere" && e.Problem != "rastrigin" {
		return nil, fmt.Errorf("experiment: unknown problem %q", e.Problem)
	}
	if e.Algorithm != algorithmRandomSearch && e.Algorithm != algorithmMuPlusLambda {
		return nil, fmt.Errorf("experiment: unknown algorithm %q", e.Algorithm)
	}
	if e.Backend != rng.BackendPCG && e.Backend != rng.BackendChaCha8 {
		return nil, fmt.Errorf("experiment: unknown rng backend %q", e.Backend)
	}
	if e.Dimension < 1 || e.Population < 1 || e.Iterations < 1 || e.Runs < 1 {
		return nil, fmt.Errorf("experiment: dimension, population, iterations, and runs must be positive")
	}
	return &e, nil
}
