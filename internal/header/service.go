// Package header serves block-header style information to keepers. The host
// samples the clock once per call so every module observes the same instant.
package header

import (
	"context"

	coreheader "cosmossdk.io/core/header"
	"github.com/filecoin-project/go-clock"
)

type infoContextKey struct{}

// Service implements the core header.Service over a clock.
type Service struct {
	clock   clock.Clock
	chainID string
}

var _ coreheader.Service = (*Service)(nil)

// NewService returns a header service reading time from clk.
func NewService(clk clock.Clock, chainID string) *Service {
	return &Service{clock: clk, chainID: chainID}
}

// GetHeaderInfo returns the info pinned in ctx, or the clock's current time
// when nothing was pinned.
func (s *Service) GetHeaderInfo(ctx context.Context) coreheader.Info {
	if info, ok := ctx.Value(infoContextKey{}).(coreheader.Info); ok {
		return info
	}
	return coreheader.Info{Time: s.clock.Now(), ChainID: s.chainID}
}

// WithHeaderInfo pins the current time and the given sequence number into ctx.
func (s *Service) WithHeaderInfo(ctx context.Context, height int64) context.Context {
	return context.WithValue(ctx, infoContextKey{}, coreheader.Info{
		Height:  height,
		Time:    s.clock.Now(),
		ChainID: s.chainID,
	})
}
