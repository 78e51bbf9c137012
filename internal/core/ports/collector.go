package ports

import "go.trai.ch/sgen/internal/core/domain"

// Collector gathers generated files after a successful compilation.
//
//go:generate go run go.uber.org/mock/mockgen -source=collector.go -destination=mocks/mock_collector.go -package=mocks
type Collector interface {
	// Collect recursively globs each target's directory against its
	// pattern and returns the sorted union of matches. The result is
	// authoritative regardless of which files the compiler actually
	// touched; pre-existing matching files are adopted.
	Collect(targets []domain.GeneratedTarget) ([]string, error)
}
