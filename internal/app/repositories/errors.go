package repositories

import (
	"errors"

	"github.com/edukit/registrar/internal/pkg/apperrors"
	"github.com/edukit/registrar/internal/pkg/dberrors"
	"github.com/edukit/registrar/internal/pkg/logger"
)

// classifyWriteError converts raw driver errors from a transactional write
// path into the repository error taxonomy. Foreign-key violations become
// data-consistency errors carrying consistencyMsg; everything else becomes a
// storage error. The raw cause is logged here and never leaves the
// repository layer.
func classifyWriteError(err error, consistencyMsg, storageMsg string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the call chain.
	if errors.Is(err, apperrors.ErrDataConsistency) || errors.Is(err, apperrors.ErrStorage) {
		return err
	}

	if dberrors.IsForeignKeyViolation(err) {
		return apperrors.NewDataConsistencyError(consistencyMsg)
	}

	logger.Error().Err(err).Msg(storageMsg)
	return apperrors.NewStorageError(storageMsg)
}

// classifyStorageError converts raw driver errors from reads and
// single-statement deletes into storage errors. These paths cannot cause
// consistency violations.
func classifyStorageError(err error, storageMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	logger.Error().Err(err).Msg(storageMsg)
	return apperrors.NewStorageError(storageMsg)
}
