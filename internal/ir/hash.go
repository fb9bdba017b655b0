package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes.
// Version suffix enables future algorithm migration.
const (
	DomainDiagram = "stabdecomp/diagram/v1"
	DomainResult  = "stabdecomp/result/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DiagramHash computes the content hash of a diagram document.
// Two documents describing the same vertices, edges, boundaries and scalar
// in the same order hash equally.
func DiagramHash(d DiagramDoc) (string, error) {
	canonical, err := MarshalCanonical(d.IRValue())
	if err != nil {
		return "", fmt.Errorf("DiagramHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDiagram, canonical), nil
}

// ResultHash computes the hash of a run's deterministic summary. Reruns with
// the same diagram and options produce the same hash.
func ResultHash(r RunRecord) (string, error) {
	canonical, err := MarshalCanonical(r.Summary())
	if err != nil {
		return "", fmt.Errorf("ResultHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}

// MustDiagramHash is like DiagramHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDiagramHash(d DiagramDoc) string {
	h, err := DiagramHash(d)
	if err != nil {
		panic(err)
	}
	return h
}
