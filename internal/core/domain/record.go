package domain

import "time"

// BuildRecord is the persisted result of the last successful
// compilation: the fingerprint of every schema input and the output
// files the collector observed. The record is valid only while every
// input fingerprint still matches and every output still exists.
type BuildRecord struct {
	Inputs    []Fingerprint `json:"inputs,omitzero"`
	Outputs   []string      `json:"outputs,omitzero"`
	Timestamp time.Time     `json:"timestamp,omitzero"`
}

// NewBuildRecord creates a record for a just-completed build.
func NewBuildRecord(inputs []Fingerprint, outputs []string) BuildRecord {
	return BuildRecord{
		Inputs:    inputs,
		Outputs:   outputs,
		Timestamp: time.Now(),
	}
}
