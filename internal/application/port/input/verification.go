package input

import (
	"context"

	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"
)

type Verifier interface {
	Verify(ctx context.Context, page output.PagePort) (*entity.VerificationResult, error)
}

type VerificationRunner interface {
	Run(ctx context.Context) (*entity.VerificationResult, error)
}
